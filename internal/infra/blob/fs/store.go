package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"prototypecore/internal/blob/core"
)

const tempPrefix = ".tmp-"

// Store implements core.Store over plain files below a root directory, so
// designers can edit prototype documents in place. Keys are slash-separated
// paths relative to the root.
type Store struct {
	root string
}

// New returns a store rooted at root. The directory is not created; reads
// against a missing root fail, while Put creates directories as needed.
func New(root string) (*Store, error) {
	if root == "" {
		root = "./prototypes"
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) Driver() core.Driver { return core.DriverFilesystem }

// sanitizeKey rejects keys that are empty, absolute, or escape the root.
func sanitizeKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: empty key", core.ErrInvalidKey)
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("%w: absolute key %q", core.ErrInvalidKey, key)
	}
	clean := filepath.ToSlash(filepath.Clean(key))
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: key %q escapes root", core.ErrInvalidKey, key)
	}
	return clean, nil
}

func (s *Store) pathFor(key string) (string, error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(k)), nil
}

func (s *Store) Put(_ context.Context, key string, r io.Reader) (core.Object, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return core.Object{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return core.Object{}, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPrefix+"*")
	if err != nil {
		return core.Object{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmp, h), r); err != nil {
		_ = tmp.Close()
		return core.Object{}, err
	}
	if err := tmp.Close(); err != nil {
		return core.Object{}, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return core.Object{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return core.Object{}, err
	}
	obj := s.object(key, info)
	obj.ETag = hex.EncodeToString(h.Sum(nil))
	return obj, nil
}

func (s *Store) Get(_ context.Context, key string) (core.Object, io.ReadCloser, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return core.Object{}, nil, err
	}
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.Object{}, nil, fmt.Errorf("blob %s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return core.Object{}, nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return core.Object{}, nil, err
	}
	if info.IsDir() {
		_ = file.Close()
		return core.Object{}, nil, fmt.Errorf("blob %s is a directory: %w", key, core.ErrNotFound)
	}
	return s.object(key, info), file, nil
}

func (s *Store) Delete(_ context.Context, key string) (bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return false, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List walks the root and returns regular files whose key has prefix.
func (s *Store) List(_ context.Context, prefix string) ([]core.Object, error) {
	var objs []core.Object
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() || strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		objs = append(objs, s.object(key, info))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(objs, func(i, j int) bool { return objs[i].Key < objs[j].Key })
	return objs, nil
}

func (s *Store) object(key string, info fs.FileInfo) core.Object {
	return core.Object{Key: key, Size: info.Size(), LastModified: info.ModTime().UTC()}
}
