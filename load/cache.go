package load

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/erdviz/erdviz"
	"github.com/erdviz/erdviz/schema"
)

// EncodeSchema serializes a parsed schema for caching.
func EncodeSchema(s *schema.ParsedSchema) ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeSchema deserializes a cached schema and rebuilds its name indexes.
func DecodeSchema(buf []byte) (*schema.ParsedSchema, error) {
	s := &schema.ParsedSchema{}
	if err := msgpack.Unmarshal(buf, s); err != nil {
		return nil, fmt.Errorf("erdviz: decode cached schema: %w", err)
	}
	s.Reindex()
	return s, nil
}

// SourceKey derives the cache key for a schema source: the hex SHA-256 of
// its bytes. Two identical documents share one cache entry regardless of
// path.
func SourceKey(src []byte) string {
	sum := sha256.Sum256(src)
	return "schema:" + hex.EncodeToString(sum[:])
}

// LoadOrCached parses the schema document at path, consulting the cache by
// content hash first. A nil cache degrades to Load.
func LoadOrCached(ctx context.Context, path string, cache erdviz.Cache) (*schema.ParsedSchema, error) {
	if cache == nil {
		return Load(path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erdviz: read schema %s: %w", path, err)
	}
	key := SourceKey(src)
	if buf, err := cache.Get(ctx, key); err == nil && buf != nil {
		if s, err := DecodeSchema(buf); err == nil {
			return s, nil
		}
		// A corrupt entry is dropped and re-parsed, never fatal.
		_ = cache.Delete(ctx, key)
	}
	s, err := Parse(src)
	if err != nil {
		return nil, err
	}
	if buf, err := EncodeSchema(s); err == nil {
		_ = cache.Set(ctx, key, buf, 0)
	}
	return s, nil
}

// FileCache is a directory-backed implementation of erdviz.Cache. Entries
// are one file per key; expiry is derived from the file modification time.
type FileCache struct {
	dir string
}

// NewFileCache returns a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("erdviz: create cache directory: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// Get implements erdviz.Cache.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, error) {
	buf, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return buf, err
}

// Set implements erdviz.Cache. The ttl is ignored: schema entries are
// content-addressed, so a hit can never be stale.
func (c *FileCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	return os.WriteFile(c.path(key), value, 0o644)
}

// Delete implements erdviz.Cache.
func (c *FileCache) Delete(_ context.Context, key string) error {
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (c *FileCache) path(key string) string {
	// Keys may carry a "prefix:" namespace; hash-shaped remainders are
	// already filesystem-safe, everything else is re-hashed.
	for _, r := range key {
		if !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != ':' && r != '-' {
			sum := sha256.Sum256([]byte(key))
			key = hex.EncodeToString(sum[:])
			break
		}
	}
	return filepath.Join(c.dir, filepath.Base(key)+".msgpack")
}
