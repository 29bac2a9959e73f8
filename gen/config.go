package gen

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/erdviz/erdviz/traverse"
)

// DefaultConfigFile is the conventional config file name looked up by the
// CLI in the working directory.
const DefaultConfigFile = ".erdviz.yaml"

// DefaultOut is the output directory used when none is configured.
const DefaultOut = "erd"

// Config holds the full pipeline configuration. Exactly one of SchemaPath
// and DatabaseURL selects the schema source.
type Config struct {
	// SchemaPath points at a schema document on disk.
	SchemaPath string `yaml:"schema"`
	// DatabaseURL selects live introspection instead of a schema file.
	DatabaseURL string `yaml:"url"`
	// Out is the directory output files are written into.
	Out string `yaml:"out"`
	// Formats lists the renderers to run, by registry name.
	Formats []string `yaml:"formats"`
	// Start names the entity the traversal expands from.
	Start string `yaml:"start"`
	// MaxDepth bounds the traversal.
	MaxDepth int `yaml:"depth"`
	// CacheDir enables the on-disk schema cache when non-empty.
	CacheDir string `yaml:"cache"`
	// Title is forwarded to renderers that support one.
	Title string `yaml:"title"`
	// Package names the package for the Go renderer.
	Package string `yaml:"package"`
	// SkipFields omits entity fields from the output.
	SkipFields bool `yaml:"skip_fields"`
	// Workers bounds render parallelism. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

func defaultConfig() *Config {
	return &Config{
		Out:      DefaultOut,
		Formats:  []string{"mermaid"},
		MaxDepth: traverse.DefaultMaxDepth,
	}
}

// NewConfig creates a Config from defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := defaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadConfig reads a YAML config file and layers the given options on top,
// so flags win over file values.
func LoadConfig(path string, opts ...Option) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erdviz: read config %s: %w", path, err)
	}
	c := defaultConfig()
	if err := yaml.Unmarshal(buf, c); err != nil {
		return nil, fmt.Errorf("erdviz: parse config %s: %w", path, err)
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// validate checks the invariants Generate relies on.
func (c *Config) validate() error {
	switch {
	case c.Start == "":
		return NewConfigError("Start", nil, "start entity cannot be empty")
	case c.SchemaPath == "" && c.DatabaseURL == "":
		return NewConfigError("SchemaPath", nil, "a schema file or a database URL is required")
	case c.SchemaPath != "" && c.DatabaseURL != "":
		return NewConfigError("DatabaseURL", c.DatabaseURL, "schema file and database URL are mutually exclusive")
	case c.MaxDepth < 0:
		return NewConfigError("MaxDepth", c.MaxDepth, "depth cannot be negative")
	case len(c.Formats) == 0:
		return NewConfigError("Formats", nil, "at least one format is required")
	}
	return nil
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
