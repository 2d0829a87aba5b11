package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// DirSource reads the prep tool's output directory. Objects live flat under
// the base path, so diskv's default transform maps a name straight to a file.
type DirSource struct {
	d        *diskv.Diskv
	basePath string
}

// NewDirSource opens the directory at basePath.
func NewDirSource(basePath string) (*DirSource, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", basePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store: %s is not a directory", basePath)
	}
	return &DirSource{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

// Read implements Source.
func (s *DirSource) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validName(name); err != nil {
		return nil, err
	}
	val, err := s.d.Read(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, s.basePath, name)
		}
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	return val, nil
}

func (s *DirSource) String() string {
	return s.basePath
}
