// Package redis stores resolved prototypes in Redis: a hash per entity, a
// list recording component order, and a set of entity names.
package redis

import (
	"context"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"prototypecore/pkg/prototype"
)

const (
	// NamesKey is the set holding every stored entity name.
	NamesKey  = "prototypes"
	keyPrefix = "prototype:"
)

// setComponent writes the field, appends it to the order list when new and
// registers the entity, atomically.
var setComponent = redis.NewScript(`
local added = redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
if added == 1 then
	redis.call('RPUSH', KEYS[2], ARGV[1])
end
redis.call('SADD', KEYS[3], ARGV[3])
return added
`)

// Options configures the client created by Open.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Sink writes prototypes through a go-redis client.
type Sink struct {
	client *redis.Client
}

// Open creates a client and verifies the server is reachable.
func Open(ctx context.Context, opts Options) (*Sink, error) {
	addr := opts.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: opts.Password, DB: opts.DB})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &Sink{client: client}, nil
}

// New wraps an existing client.
func New(client *redis.Client) *Sink { return &Sink{client: client} }

// HashKey returns the hash key holding entity's components.
func HashKey(entity string) string { return keyPrefix + entity }

func orderKey(entity string) string { return keyPrefix + entity + ":order" }

// SetComponent upserts one component.
func (s *Sink) SetComponent(ctx context.Context, entity, key, value string) error {
	keys := []string{HashKey(entity), orderKey(entity), NamesKey}
	if err := setComponent.Run(ctx, s.client, keys, key, value, entity).Err(); err != nil {
		return fmt.Errorf("hset %s.%s: %w", entity, key, err)
	}
	return nil
}

// Prototype returns the stored components of name in insertion order.
func (s *Sink) Prototype(ctx context.Context, name string) (*prototype.Components, bool, error) {
	pipe := s.client.Pipeline()
	order := pipe.LRange(ctx, orderKey(name), 0, -1)
	fields := pipe.HGetAll(ctx, HashKey(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	values := fields.Val()
	comps := prototype.NewComponents()
	for _, key := range order.Val() {
		if v, ok := values[key]; ok {
			comps.Set(key, v)
		}
	}
	return comps, comps.Len() > 0, nil
}

// Names returns every stored entity, sorted.
func (s *Sink) Names(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, NamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("smembers %s: %w", NamesKey, err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the underlying client.
func (s *Sink) Close() error { return s.client.Close() }
