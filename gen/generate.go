package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/erdviz/erdviz/load"
	"github.com/erdviz/erdviz/render"
	"github.com/erdviz/erdviz/schema"
	"github.com/erdviz/erdviz/traverse"
)

// extensions maps registry names onto output file extensions. Formats
// missing here fall back to the format name itself.
var extensions = map[string]string{
	"mermaid": ".mmd",
	"dot":     ".dot",
	"graphql": ".graphql",
	"go":      ".go",
}

// Generate runs the pipeline once: resolve the schema, traverse from the
// start entity, and write one file per format into the output directory.
// Formats render in parallel and each file lands atomically.
func Generate(ctx context.Context, cfg *Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	s, err := cfg.resolveSchema(ctx)
	if err != nil {
		return err
	}
	res, err := traverse.Traverse(s, cfg.Start, traverse.WithMaxDepth(cfg.MaxDepth))
	if err != nil {
		return err
	}
	g := render.NewGraph(res, s)

	// Unknown formats fail before any file is touched.
	renderers := make(map[string]render.Renderer, len(cfg.Formats))
	for _, format := range cfg.Formats {
		r, err := render.Get(format)
		if err != nil {
			return err
		}
		renderers[format] = r
	}
	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return fmt.Errorf("erdviz: create output directory: %w", err)
	}

	opts := render.Options{Title: cfg.Title, Package: cfg.Package, SkipFields: cfg.SkipFields}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.workers())
	for format, r := range renderers {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			var buf bytes.Buffer
			if err := r.Render(&buf, g, opts); err != nil {
				return err
			}
			return writeAtomic(filepath.Join(cfg.Out, cfg.fileName(format)), buf.Bytes())
		})
	}
	return eg.Wait()
}

// resolveSchema picks the schema source: live introspection when a URL is
// set, otherwise the schema file, cache-aware when a cache dir is set.
func (c *Config) resolveSchema(ctx context.Context) (*schema.ParsedSchema, error) {
	if c.DatabaseURL != "" {
		return load.Inspect(ctx, c.DatabaseURL)
	}
	if c.CacheDir != "" {
		cache, err := load.NewFileCache(c.CacheDir)
		if err != nil {
			return nil, err
		}
		return load.LoadOrCached(ctx, c.SchemaPath, cache)
	}
	return load.Load(c.SchemaPath)
}

// fileName derives the output file name for a format, e.g. "user.mmd" for
// a traversal starting at User.
func (c *Config) fileName(format string) string {
	ext, ok := extensions[format]
	if !ok {
		ext = "." + format
	}
	return schema.Snake(c.Start) + ext
}

// writeAtomic writes through a uniquely named temp file in the target
// directory and renames it into place, so readers never observe a partial
// file.
func writeAtomic(path string, data []byte) error {
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("erdviz: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("erdviz: rename %s: %w", path, err)
	}
	return nil
}
