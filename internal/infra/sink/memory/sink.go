// Package memory implements an in-process prototype registry sink.
package memory

import (
	"context"
	"sort"
	"sync"

	"prototypecore/pkg/prototype"
)

// Sink keeps materialized prototypes in memory.
type Sink struct {
	mu         sync.RWMutex
	prototypes map[string]*prototype.Components
	writes     int
}

// New returns an empty sink.
func New() *Sink { return &Sink{prototypes: make(map[string]*prototype.Components)} }

// SetComponent records key=value on entity, replacing any previous value.
func (s *Sink) SetComponent(ctx context.Context, entity, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	comps, ok := s.prototypes[entity]
	if !ok {
		comps = prototype.NewComponents()
		s.prototypes[entity] = comps
	}
	comps.Set(key, value)
	s.writes++
	return nil
}

// Prototype returns a copy of the components recorded for name.
func (s *Sink) Prototype(name string) (*prototype.Components, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comps, ok := s.prototypes[name]
	if !ok {
		return nil, false
	}
	return comps.Clone(), true
}

// Names returns every entity with at least one component, sorted.
func (s *Sink) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.prototypes))
	for name := range s.prototypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Writes returns the number of SetComponent calls accepted.
func (s *Sink) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Close is a no-op.
func (s *Sink) Close() error { return nil }
