package tagwalk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/tagwalk-client/internal/constants"
	"github.com/spf13/afero"
)

// Static errors for err113 compliance.
var (
	ErrInvalidCacheKey = errors.New("invalid cache key")
)

// FileCache stores one JSON file per entry under Dir, with one sub-directory
// per namespace ("cities.<digest>" lands in Dir/cities/<digest>.json).
type FileCache struct {
	fs  afero.Fs
	dir string
}

// NewFileCache creates a file cache rooted at dir on the OS filesystem.
func NewFileCache(dir string) (*FileCache, error) {
	return NewFileCacheFs(afero.NewOsFs(), dir)
}

// NewFileCacheFs creates a file cache on an arbitrary afero filesystem.
func NewFileCacheFs(fs afero.Fs, dir string) (*FileCache, error) {
	if dir == "" {
		return nil, ErrFileCacheDirRequired
	}

	err := fs.MkdirAll(dir, constants.CacheDirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &FileCache{fs: fs, dir: dir}, nil
}

// Get reads the entry stored under key.
func (c *FileCache) Get(_ context.Context, key string) (*CacheEntry, error) {
	path, err := c.path(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(c.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
	}

	if err != nil {
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(data, &entry)
	if err != nil {
		_ = c.fs.Remove(path)

		return nil, fmt.Errorf("%w: %s: corrupt entry", ErrCacheMiss, key)
	}

	if entry.Expired() {
		_ = c.fs.Remove(path)

		return nil, fmt.Errorf("%w: %s", ErrEntryExpired, key)
	}

	return &entry, nil
}

// Set writes entry under key. The file is written to a temporary name first
// and renamed into place.
func (c *FileCache) Set(_ context.Context, key string, entry *CacheEntry) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	err = c.fs.MkdirAll(filepath.Dir(path), constants.CacheDirPerm)
	if err != nil {
		return fmt.Errorf("creating cache namespace: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	tmp := path + ".tmp"

	err = afero.WriteFile(c.fs, tmp, data, constants.CacheFilePerm)
	if err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	err = c.fs.Rename(tmp, path)
	if err != nil {
		_ = c.fs.Remove(tmp)

		return fmt.Errorf("renaming cache file: %w", err)
	}

	return nil
}

// Delete removes the entry stored under key.
func (c *FileCache) Delete(_ context.Context, key string) error {
	path, err := c.path(key)
	if err != nil {
		return err
	}

	err = c.fs.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing cache file: %w", err)
	}

	return nil
}

// Clear removes every namespace under the cache directory.
func (c *FileCache) Clear(_ context.Context) error {
	err := c.fs.RemoveAll(c.dir)
	if err != nil {
		return fmt.Errorf("clearing cache directory: %w", err)
	}

	err = c.fs.MkdirAll(c.dir, constants.CacheDirPerm)
	if err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	return nil
}

// Has reports whether a live entry exists for key.
func (c *FileCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

func (c *FileCache) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidCacheKey, key)
	}

	namespace, name, found := strings.Cut(key, ".")
	if !found || namespace == "" || name == "" {
		return filepath.Join(c.dir, constants.DefaultCacheNamespace, key+".json"), nil
	}

	return filepath.Join(c.dir, namespace, name+".json"), nil
}
