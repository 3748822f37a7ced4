package prototype

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type recordingSink struct {
	calls []string
	fail  string
}

func (s *recordingSink) SetComponent(_ context.Context, entity, key, value string) error {
	if key == s.fail {
		return errors.New("boom")
	}
	s.calls = append(s.calls, entity+"."+key+"="+value)
	return nil
}

func TestEmitWritesPairsInOrder(t *testing.T) {
	sink := &recordingSink{}
	c := NewComponents(Pair{"Sprite", "goblin.png"}, Pair{"Health", "40"})
	if err := Emit(context.Background(), sink, "Goblin", c); err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := []string{"Goblin.Sprite=goblin.png", "Goblin.Health=40"}
	if !reflect.DeepEqual(sink.calls, want) {
		t.Fatalf("calls = %v, want %v", sink.calls, want)
	}
}

func TestEmitStopsOnSinkError(t *testing.T) {
	sink := &recordingSink{fail: "b"}
	c := NewComponents(Pair{"a", "1"}, Pair{"b", "2"}, Pair{"c", "3"})
	err := Emit(context.Background(), sink, "E", c)
	if err == nil || !strings.Contains(err.Error(), "E.b") {
		t.Fatalf("expected wrapped sink error naming E.b, got %v", err)
	}
	if len(sink.calls) != 1 {
		t.Fatalf("expected emission to stop after failure, got %v", sink.calls)
	}
}

func TestEmitAllHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls int
	sink := SinkFunc(func(context.Context, string, string, string) error {
		calls++
		return nil
	})
	err := EmitAll(ctx, sink, []Resolved{{Name: "A", Components: NewComponents(Pair{"k", "v"})}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no sink calls after cancellation")
	}
}

func TestEmitAllEndToEnd(t *testing.T) {
	table := BuildTable([]Section{
		section("Monster", "Health", "100", "Sprite", "monster.png"),
		section("Goblin: Monster", "Sprite", "goblin.png"),
	}, nil)
	sink := &recordingSink{}
	if err := EmitAll(context.Background(), sink, ResolveAll(table, nil)); err != nil {
		t.Fatalf("emit all: %v", err)
	}
	want := []string{
		"Goblin.Health=100",
		"Goblin.Sprite=goblin.png",
		"Monster.Health=100",
		"Monster.Sprite=monster.png",
	}
	if !reflect.DeepEqual(sink.calls, want) {
		t.Fatalf("calls = %v, want %v", sink.calls, want)
	}
}
