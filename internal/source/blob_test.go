package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prototypecore/internal/blob"
)

func TestBlobSourceReadsDefinitionsInKeyOrder(t *testing.T) {
	store := blob.NewMockS3ForTests(map[string]string{
		"protos/b.yml":    "B: {k: b}\n",
		"protos/a.yaml":   "A: {k: a}\nA2: {}\n",
		"protos/notes.md": "# ignored",
		"other/c.yaml":    "C: {}\n",
	})
	sections, err := NewPrefixSource(store, "protos/").ReadSections(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var headers []string
	for _, s := range sections {
		headers = append(headers, s.Header)
	}
	if strings.Join(headers, ",") != "A,A2,B" {
		t.Fatalf("unexpected headers %v", headers)
	}
}

func TestBlobSourceExplicitKeys(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemory()
	if _, err := store.Put(ctx, "z.yaml", strings.NewReader("Z: {}\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Put(ctx, "a.yaml", strings.NewReader("A: {}\n")); err != nil {
		t.Fatal(err)
	}
	sections, err := NewKeySource(store, "z.yaml", "a.yaml").ReadSections(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(sections) != 2 || sections[0].Header != "Z" || sections[1].Header != "A" {
		t.Fatalf("expected key order Z,A got %+v", sections)
	}
}

func TestBlobSourceFailures(t *testing.T) {
	ctx := context.Background()
	if _, err := NewKeySource(blob.NewMemory(), "missing.yaml").ReadSections(ctx); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	bad := blob.NewMockS3ForTests(map[string]string{"bad.yaml": "- not a mapping\n"})
	if _, err := NewPrefixSource(bad, "").ReadSections(ctx); err == nil {
		t.Fatalf("expected decode error")
	}
	fsStore, err := blob.NewFilesystem(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewPrefixSource(fsStore, "").ReadSections(ctx); err == nil {
		t.Fatalf("expected list error for missing root")
	}
	var nilSource *BlobSource
	if _, err := nilSource.ReadSections(ctx); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.yaml")
	if err := os.WriteFile(path, []byte("Base: {hp: \"10\"}\n\"Orc: Base\": {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	sections, err := File{Path: path}.ReadSections(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(sections) != 2 || sections[1].Header != "Orc: Base" {
		t.Fatalf("unexpected sections %+v", sections)
	}
	if _, err := (File{Path: path + ".missing"}).ReadSections(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
