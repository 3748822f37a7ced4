// Package blob exposes the document stores that hold prototype definition
// files. Callers depend on Store; the backends live under internal/infra/blob.
package blob

import "prototypecore/internal/blob/core"

type (
	// Store is the document store interface.
	Store = core.Store
	// Object describes a stored document.
	Object = core.Object
	// Driver identifies a backend.
	Driver = core.Driver
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	ErrNotFound   = core.ErrNotFound
	ErrInvalidKey = core.ErrInvalidKey
)
