package blob

import (
	"context"
	"fmt"
)

// Options selects and configures a backend for Open.
type Options struct {
	Driver Driver
	// FSRoot is the directory root when Driver is fs (default ./prototypes).
	FSRoot string
	S3     S3Config
}

// Open constructs the Store named by opts.Driver. An empty driver selects
// the filesystem backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return NewFilesystem(opts.FSRoot)
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
