package blob

import (
	fsstore "prototypecore/internal/infra/blob/fs"
)

// NewFilesystem returns a Store reading plain files below root.
func NewFilesystem(root string) (Store, error) {
	s, err := fsstore.New(root)
	if err != nil {
		return nil, err
	}
	return s, nil
}
