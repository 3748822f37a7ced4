package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.SourceDriver != "fs" || cfg.SinkDriver != "memory" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SourceFSRoot != "./prototypes" || cfg.SQLitePath != "prototypes.db" || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected backend defaults %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PROTOCORE_SOURCE_DRIVER", "s3")
	t.Setenv("PROTOCORE_SOURCE_PREFIX", "units/")
	t.Setenv("PROTOCORE_S3_BUCKET", "protos")
	t.Setenv("PROTOCORE_S3_PATH_STYLE", "true")
	t.Setenv("PROTOCORE_SINK_DRIVER", "redis")
	t.Setenv("PROTOCORE_REDIS_DB", "3")
	t.Setenv("PROTOCORE_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.SourceDriver != "s3" || cfg.SourcePrefix != "units/" || cfg.S3Bucket != "protos" || !cfg.S3PathStyle {
		t.Fatalf("unexpected source config %+v", cfg)
	}
	if cfg.SinkDriver != "redis" || cfg.RedisDB != 3 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected sink config %+v", cfg)
	}
	if cfg.SourceFSRoot != "./prototypes" {
		t.Fatalf("expected untouched default root, got %q", cfg.SourceFSRoot)
	}
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("PROTOCORE_REDIS_DB", "three")
	if _, err := FromEnv(); err == nil {
		t.Fatalf("expected parse error")
	}
}
