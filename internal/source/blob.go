package source

import (
	"context"
	"fmt"
	"strings"

	"prototypecore/internal/blob"
	"prototypecore/pkg/prototype"
)

// BlobSource reads definition documents from a blob.Store. When Keys is set
// exactly those documents are read in the given order; otherwise every key
// under Prefix ending in .yaml or .yml is read in ascending key order.
type BlobSource struct {
	Store  blob.Store
	Prefix string
	Keys   []string
}

// NewPrefixSource reads every definition document under prefix.
func NewPrefixSource(store blob.Store, prefix string) *BlobSource {
	return &BlobSource{Store: store, Prefix: prefix}
}

// NewKeySource reads the named documents in order.
func NewKeySource(store blob.Store, keys ...string) *BlobSource {
	return &BlobSource{Store: store, Keys: keys}
}

// IsDefinitionKey reports whether key names a YAML definition document.
func IsDefinitionKey(key string) bool {
	return strings.HasSuffix(key, ".yaml") || strings.HasSuffix(key, ".yml")
}

// ReadSections returns the concatenated sections of all selected documents.
func (s *BlobSource) ReadSections(ctx context.Context) ([]prototype.Section, error) {
	if s == nil || s.Store == nil {
		return nil, fmt.Errorf("blob source: no store configured")
	}
	keys, err := s.keys(ctx)
	if err != nil {
		return nil, err
	}
	var sections []prototype.Section
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := s.readDocument(ctx, key)
		if err != nil {
			return nil, err
		}
		sections = append(sections, got...)
	}
	return sections, nil
}

func (s *BlobSource) keys(ctx context.Context) ([]string, error) {
	if len(s.Keys) > 0 {
		return s.Keys, nil
	}
	objs, err := s.Store.List(ctx, s.Prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s documents under %q: %w", s.Store.Driver(), s.Prefix, err)
	}
	keys := make([]string, 0, len(objs))
	for _, obj := range objs {
		if IsDefinitionKey(obj.Key) {
			keys = append(keys, obj.Key)
		}
	}
	return keys, nil
}

func (s *BlobSource) readDocument(ctx context.Context, key string) ([]prototype.Section, error) {
	_, rc, err := s.Store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	sections, err := DecodeSections(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return sections, nil
}
