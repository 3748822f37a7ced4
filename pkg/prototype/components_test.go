package prototype

import (
	"reflect"
	"testing"
)

func TestComponentsOverwriteKeepsPosition(t *testing.T) {
	c := NewComponents(Pair{"x", "1"}, Pair{"y", "2"})
	c.Set("x", "9")
	c.Set("z", "3")
	want := []Pair{{"x", "9"}, {"y", "2"}, {"z", "3"}}
	if got := c.Pairs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("pairs = %v, want %v", got, want)
	}
}

func TestComponentsNilReadsEmpty(t *testing.T) {
	var c *Components
	if c.Len() != 0 || c.Keys() != nil || c.Pairs() != nil {
		t.Fatalf("expected empty reads on nil components")
	}
	if _, ok := c.Get("x"); ok {
		t.Fatalf("expected missing key on nil components")
	}
	if m := c.Map(); len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
	if clone := c.Clone(); clone == nil || clone.Len() != 0 {
		t.Fatalf("expected empty clone")
	}
}

func TestComponentsZeroValueUsable(t *testing.T) {
	var c Components
	c.Set("k", "v")
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("get = %q %v", v, ok)
	}
}

func TestComponentsCloneIsIndependent(t *testing.T) {
	c := NewComponents(Pair{"a", "1"})
	clone := c.Clone()
	clone.Set("a", "2")
	clone.Set("b", "3")
	if v, _ := c.Get("a"); v != "1" {
		t.Fatalf("original mutated: a=%q", v)
	}
	if c.Len() != 1 {
		t.Fatalf("original grew to %d keys", c.Len())
	}
}

func TestComponentsMerge(t *testing.T) {
	dst := NewComponents(Pair{"a", "1"}, Pair{"b", "2"})
	dst.Merge(NewComponents(Pair{"c", "3"}, Pair{"a", "4"}))
	dst.Merge(nil)
	want := map[string]string{"a": "4", "b": "2", "c": "3"}
	if got := dst.Map(); !reflect.DeepEqual(got, want) {
		t.Fatalf("merged = %v, want %v", got, want)
	}
	if keys := dst.Keys(); !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Fatalf("keys = %v", keys)
	}
}
