package asset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/wricardo/swap-puzzle/game/engine"
)

// Catalog keeps the decodable images of one directory
type Catalog struct {
	dir    string
	logger *zap.Logger

	mu     sync.RWMutex
	images map[string]Image
}

// NewCatalog scans dir. Files that fail to decode are skipped with a warning.
func NewCatalog(dir string, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{
		dir:    dir,
		logger: logger,
		images: make(map[string]Image),
	}
	if err := c.Refresh(); err != nil {
		return nil, err
	}
	return c, nil
}

// Dir returns the scanned directory
func (c *Catalog) Dir() string {
	return c.dir
}

// Refresh rescans the directory
func (c *Catalog) Refresh() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("failed to read asset directory: %w", err)
	}

	images := make(map[string]Image, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !Supported(entry.Name()) || validName(entry.Name()) != nil {
			continue
		}
		img, err := Load(filepath.Join(c.dir, entry.Name()))
		if err != nil {
			c.logger.Warn("skipping asset", zap.String("name", entry.Name()), zap.Error(err))
			continue
		}
		images[img.Name] = img
	}

	c.mu.Lock()
	c.images = images
	c.mu.Unlock()

	c.logger.Debug("asset catalog refreshed", zap.String("dir", c.dir), zap.Int("images", len(images)))
	return nil
}

// List returns the images sorted by name
func (c *Catalog) List() []Image {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Image, 0, len(c.images))
	for _, img := range c.images {
		out = append(out, img)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of images
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Get returns the image with the given file name
func (c *Catalog) Get(name string) (Image, error) {
	if err := validName(name); err != nil {
		return Image{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	img, ok := c.images[name]
	if !ok {
		return Image{}, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	return img, nil
}

// Pick returns a random image
func (c *Catalog) Pick(rng engine.RandomSource) (Image, error) {
	images := c.List()
	if len(images) == 0 {
		return Image{}, ErrNoAssets
	}
	if rng == nil {
		rng = engine.DefaultRandom()
	}
	return images[rng.IntN(len(images))], nil
}

// Open opens the image file for reading. The caller closes it.
func (c *Catalog) Open(name string) (*os.File, error) {
	img, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(img.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", name, err)
	}
	return f, nil
}

// Watch refreshes the catalog whenever an image file in the directory
// changes. It blocks until ctx is done.
func (c *Catalog) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", c.dir, err)
	}
	c.logger.Info("watching assets", zap.String("dir", c.dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			c.logger.Debug("asset changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			if err := c.Refresh(); err != nil {
				c.logger.Error("asset refresh failed", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Error("asset watcher error", zap.Error(err))
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !Supported(event.Name) || strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
