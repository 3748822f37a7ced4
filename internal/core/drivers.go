package core

import (
	"context"
	"fmt"

	"prototypecore/internal/blob"
	"prototypecore/internal/config"
	"prototypecore/internal/infra/sink/memory"
	"prototypecore/internal/infra/sink/postgres"
	"prototypecore/internal/infra/sink/redis"
	"prototypecore/internal/infra/sink/sqlite"
	"prototypecore/internal/source"
	"prototypecore/pkg/prototype"
)

// SinkDriver names a sink backend.
type SinkDriver string

const (
	SinkMemory   SinkDriver = "memory"
	SinkSQLite   SinkDriver = "sqlite"
	SinkPostgres SinkDriver = "postgres"
	SinkRedis    SinkDriver = "redis"
)

// ClosableSink is a sink holding resources released by Close.
type ClosableSink interface {
	prototype.Sink
	Close() error
}

// OpenSource returns a blob-backed source over the configured document store.
func OpenSource(ctx context.Context, cfg config.Config) (*source.BlobSource, error) {
	store, err := blob.Open(ctx, blob.Options{
		Driver: blob.Driver(cfg.SourceDriver),
		FSRoot: cfg.SourceFSRoot,
		S3: blob.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	return source.NewPrefixSource(store, cfg.SourcePrefix), nil
}

// OpenSink selects the sink named by cfg.SinkDriver (default memory).
func OpenSink(ctx context.Context, cfg config.Config) (ClosableSink, error) {
	driver := SinkDriver(cfg.SinkDriver)
	if driver == "" {
		driver = SinkMemory
	}
	var (
		sink ClosableSink
		err  error
	)
	switch driver {
	case SinkMemory:
		return memory.New(), nil
	case SinkSQLite:
		sink, err = sqlite.Open(ctx, cfg.SQLitePath)
	case SinkPostgres:
		sink, err = postgres.Open(ctx, cfg.PostgresDSN)
	case SinkRedis:
		sink, err = redis.Open(ctx, redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	default:
		return nil, fmt.Errorf("unknown sink driver %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s sink: %w", driver, err)
	}
	return sink, nil
}
