package asset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoAssets      = errors.New("no assets available")
	ErrInvalidName   = errors.New("invalid asset name")
)

// Image describes a decodable picture. Only the header is read, the pixels
// are decoded by whichever host draws them.
type Image struct {
	Name   string `json:"name"`
	Path   string `json:"-"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// Load reads the dimensions of the image at path
func Load(path string) (Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Image{}, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
		}
		return Image{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return Image{}, fmt.Errorf("%s: %w", path, err)
	}
	img.Name = filepath.Base(path)
	img.Path = path
	if info, err := f.Stat(); err == nil {
		img.Size = info.Size()
	}
	return img, nil
}

// Decode reads the image header from r
func Decode(r io.Reader) (Image, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return Image{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Supported reports whether name has an extension the registered decoders handle
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp":
		return true
	}
	return false
}

// validName rejects anything that could leave the asset directory
func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
