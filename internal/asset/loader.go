package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp"
)

type Kind string

const (
	KindPlaceholder Kind = "placeholder"
	KindTexture     Kind = "texture"
	KindEnvironment Kind = "environment"
)

// Resource is a loaded asset as the client needs to know it: where to fetch
// it and what it looks like. Data is kept for formats the server does not
// decode.
type Resource struct {
	Kind   Kind   `json:"kind"`
	Path   string `json:"path,omitempty"`
	Format string `json:"format,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Color  string `json:"color,omitempty"`
	Size   int    `json:"size"`
	Data   []byte `json:"-"`
}

// Placeholder is a flat colour stand-in for a missing texture
func Placeholder(c colorful.Color) Resource {
	return Resource{Kind: KindPlaceholder, Color: c.Clamped().Hex()}
}

// Loader reads assets from a file system rooted at the asset directory
type Loader struct {
	fsys fs.FS
}

func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Texture reads an image and decodes its header for dimensions
func (l *Loader) Texture(ctx context.Context, name string) (Resource, error) {
	raw, err := l.read(ctx, name)
	if err != nil {
		return Resource{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return Resource{}, fmt.Errorf("failed to decode texture %s: %w", name, err)
	}

	return Resource{
		Kind:   KindTexture,
		Path:   name,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Size:   len(raw),
	}, nil
}

// Environment reads the environment map. Radiance HDR has no decoder here, so
// it is kept as raw bytes after a signature check.
func (l *Loader) Environment(ctx context.Context, name string) (Resource, error) {
	raw, err := l.read(ctx, name)
	if err != nil {
		return Resource{}, err
	}

	format := strings.TrimPrefix(path.Ext(name), ".")
	if format == "hdr" && !bytes.HasPrefix(raw, []byte("#?")) {
		return Resource{}, fmt.Errorf("environment map %s is not a radiance file", name)
	}

	return Resource{
		Kind:   KindEnvironment,
		Path:   name,
		Format: format,
		Size:   len(raw),
		Data:   raw,
	}, nil
}

func (l *Loader) read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return raw, nil
}
