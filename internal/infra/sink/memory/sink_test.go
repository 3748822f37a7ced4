package memory

import (
	"context"
	"reflect"
	"testing"

	"prototypecore/pkg/prototype"
)

func TestSinkRecordsInOrderAndOverwrites(t *testing.T) {
	ctx := context.Background()
	s := New()
	for _, kv := range [][3]string{{"B", "x", "1"}, {"A", "y", "2"}, {"A", "z", "3"}, {"A", "y", "4"}} {
		if err := s.SetComponent(ctx, kv[0], kv[1], kv[2]); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("unexpected names %v", got)
	}
	a, ok := s.Prototype("A")
	if !ok {
		t.Fatalf("expected A")
	}
	want := []prototype.Pair{{Key: "y", Value: "4"}, {Key: "z", Value: "3"}}
	if !reflect.DeepEqual(a.Pairs(), want) {
		t.Fatalf("expected %v, got %v", want, a.Pairs())
	}
	if s.Writes() != 4 {
		t.Fatalf("expected 4 writes, got %d", s.Writes())
	}
	a.Set("mutated", "1")
	if again, _ := s.Prototype("A"); again.Len() != 2 {
		t.Fatalf("expected Prototype to return a copy")
	}
	if _, ok := s.Prototype("missing"); ok {
		t.Fatalf("expected missing prototype")
	}
}

func TestSinkHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New().SetComponent(ctx, "A", "k", "v"); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
