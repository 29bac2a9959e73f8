package gen

// Option configures the pipeline.
type Option func(*Config) error

// WithSchemaPath sets the schema document to load.
func WithSchemaPath(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("SchemaPath", nil, "schema path cannot be empty")
		}
		c.SchemaPath = path
		return nil
	}
}

// WithDatabaseURL selects live database introspection as the schema source.
func WithDatabaseURL(url string) Option {
	return func(c *Config) error {
		if url == "" {
			return NewConfigError("DatabaseURL", nil, "database URL cannot be empty")
		}
		c.DatabaseURL = url
		return nil
	}
}

// WithOut sets the output directory.
func WithOut(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Out", nil, "output directory cannot be empty")
		}
		c.Out = dir
		return nil
	}
}

// WithFormats replaces the set of output formats.
func WithFormats(formats ...string) Option {
	return func(c *Config) error {
		if len(formats) == 0 {
			return NewConfigError("Formats", nil, "at least one format is required")
		}
		c.Formats = formats
		return nil
	}
}

// WithStart sets the entity the traversal expands from.
func WithStart(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Start", nil, "start entity cannot be empty")
		}
		c.Start = name
		return nil
	}
}

// WithMaxDepth bounds the traversal.
func WithMaxDepth(depth int) Option {
	return func(c *Config) error {
		if depth < 0 {
			return NewConfigError("MaxDepth", depth, "depth cannot be negative")
		}
		c.MaxDepth = depth
		return nil
	}
}

// WithCacheDir enables the on-disk schema cache.
func WithCacheDir(dir string) Option {
	return func(c *Config) error {
		c.CacheDir = dir
		return nil
	}
}

// WithTitle sets the diagram title.
func WithTitle(title string) Option {
	return func(c *Config) error {
		c.Title = title
		return nil
	}
}

// WithPackage names the package emitted by the Go renderer.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		c.Package = pkg
		return nil
	}
}

// WithSkipFields omits entity fields from the output.
func WithSkipFields(skip bool) Option {
	return func(c *Config) error {
		c.SkipFields = skip
		return nil
	}
}

// WithWorkers bounds render parallelism.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("Workers", n, "workers cannot be negative")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config. It returns the first error
// encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}
