package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sdex/configviewer/internal/settings"
)

// Files reads the stores at their on-device paths, optionally below Root.
type Files struct {
	Root string
}

func (f *Files) Name() string {
	return NameFiles
}

// Locate returns the local path of the store.
func (f *Files) Locate(kind settings.Kind) string {
	if f.Root == "" {
		return settings.PathFor(kind)
	}
	return filepath.Join(f.Root, filepath.FromSlash(settings.PathFor(kind)))
}

func (f *Files) Fetch(ctx context.Context, kind settings.Kind) ([]byte, error) {
	return readLocal(ctx, f.Locate(kind))
}

// Dir reads settings_<kind>.xml files from a flat directory.
type Dir struct {
	Path string
}

func (d *Dir) Name() string {
	return NameDir
}

func (d *Dir) Locate(kind settings.Kind) string {
	return filepath.Join(d.Path, kind.FileName())
}

func (d *Dir) Fetch(ctx context.Context, kind settings.Kind) ([]byte, error) {
	return readLocal(ctx, d.Locate(kind))
}

func readLocal(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	return data, nil
}
