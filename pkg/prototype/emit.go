package prototype

import (
	"context"
	"fmt"
)

// Sink materializes resolved prototypes. SetComponent must behave as an
// idempotent upsert of key on entity.
type Sink interface {
	SetComponent(ctx context.Context, entity, key, value string) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, entity, key, value string) error

// SetComponent calls f.
func (f SinkFunc) SetComponent(ctx context.Context, entity, key, value string) error {
	return f(ctx, entity, key, value)
}

// Emit writes every pair of components to sink in iteration order. It stops
// at the first sink error.
func Emit(ctx context.Context, sink Sink, entity string, components *Components) error {
	for _, p := range components.Pairs() {
		if err := sink.SetComponent(ctx, entity, p.Key, p.Value); err != nil {
			return fmt.Errorf("emit %s.%s: %w", entity, p.Key, err)
		}
	}
	return nil
}

// EmitAll emits each resolved prototype in order.
func EmitAll(ctx context.Context, sink Sink, resolved []Resolved) error {
	for _, r := range resolved {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := Emit(ctx, sink, r.Name, r.Components); err != nil {
			return err
		}
	}
	return nil
}
