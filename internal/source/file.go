package source

import (
	"context"
	"fmt"
	"os"

	"prototypecore/pkg/prototype"
)

// File reads sections from a single definition document on disk.
type File struct {
	Path string
}

// ReadSections opens Path and decodes its sections.
func (f File) ReadSections(ctx context.Context) ([]prototype.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open definitions: %w", err)
	}
	defer func() { _ = fh.Close() }()
	sections, err := DecodeSections(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return sections, nil
}
