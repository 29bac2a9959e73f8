package load

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileCache(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(err)

	got, err := c.Get(ctx, "schema:missing")
	require.NoError(err)
	require.Nil(got)

	require.NoError(c.Set(ctx, "schema:abc123", []byte("payload"), 0))
	got, err = c.Get(ctx, "schema:abc123")
	require.NoError(err)
	require.Equal([]byte("payload"), got)

	require.NoError(c.Delete(ctx, "schema:abc123"))
	require.NoError(c.Delete(ctx, "schema:abc123")) // idempotent
	got, err = c.Get(ctx, "schema:abc123")
	require.NoError(err)
	require.Nil(got)
}

func TestFileCacheUnsafeKey(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	require.NoError(err)
	require.NoError(c.Set(ctx, "../escape/attempt", []byte("x"), time.Minute))
	got, err := c.Get(ctx, "../escape/attempt")
	require.NoError(err)
	require.Equal([]byte("x"), got)
}

func TestSchemaRoundTrip(t *testing.T) {
	require := require.New(t)
	s, err := Parse([]byte(blogDMMF))
	require.NoError(err)

	buf, err := EncodeSchema(s)
	require.NoError(err)
	got, err := DecodeSchema(buf)
	require.NoError(err)

	// Declaration order and indexes survive the round trip.
	require.Len(got.Models, len(s.Models))
	for i := range s.Models {
		require.Equal(s.Models[i].Name, got.Models[i].Name)
	}
	require.NotNil(got.Model("Post"))
	require.NotNil(got.View("RoleCount"))
	require.NotNil(got.Enum("Role"))
	require.Equal(s.Model("Post").Relations[0].Cardinality, got.Model("Post").Relations[0].Cardinality)
}

// recordingCache wraps FileCache and counts operations.
type recordingCache struct {
	*FileCache
	mu   sync.Mutex
	gets int
	sets int
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	c.gets++
	c.mu.Unlock()
	return c.FileCache.Get(ctx, key)
}

func (c *recordingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.FileCache.Set(ctx, key, value, ttl)
}

func TestLoadOrCached(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(os.WriteFile(path, []byte(blogDMMF), 0o644))

	fc, err := NewFileCache(t.TempDir())
	require.NoError(err)
	cache := &recordingCache{FileCache: fc}

	s1, err := LoadOrCached(ctx, path, cache)
	require.NoError(err)
	require.Equal(1, cache.sets, "first load populates the cache")

	s2, err := LoadOrCached(ctx, path, cache)
	require.NoError(err)
	require.Equal(1, cache.sets, "second load is served from the cache")
	require.Equal(2, cache.gets)
	require.Equal(s1.Models[0].Name, s2.Models[0].Name)

	// nil cache degrades to a plain load.
	s3, err := LoadOrCached(ctx, path, nil)
	require.NoError(err)
	require.NotNil(s3.Model("User"))
}

func TestSourceKey(t *testing.T) {
	require := require.New(t)
	require.Equal(SourceKey([]byte("a")), SourceKey([]byte("a")))
	require.NotEqual(SourceKey([]byte("a")), SourceKey([]byte("b")))
	require.Contains(SourceKey([]byte("a")), "schema:")
}
