// Package config loads prototype loader settings from the environment.
package config

import (
	jlconfig "github.com/JeremyLoy/config"
)

// Config holds every setting the loader and its drivers read. Field tags
// name the environment variable exactly.
type Config struct {
	SourceDriver string `config:"PROTOCORE_SOURCE_DRIVER"`
	SourceFSRoot string `config:"PROTOCORE_SOURCE_FS_ROOT"`
	SourcePrefix string `config:"PROTOCORE_SOURCE_PREFIX"`

	S3Bucket    string `config:"PROTOCORE_S3_BUCKET"`
	S3Region    string `config:"PROTOCORE_S3_REGION"`
	S3Endpoint  string `config:"PROTOCORE_S3_ENDPOINT"`
	S3PathStyle bool   `config:"PROTOCORE_S3_PATH_STYLE"`

	SinkDriver    string `config:"PROTOCORE_SINK_DRIVER"`
	SQLitePath    string `config:"PROTOCORE_SQLITE_PATH"`
	PostgresDSN   string `config:"PROTOCORE_POSTGRES_DSN"`
	RedisAddr     string `config:"PROTOCORE_REDIS_ADDR"`
	RedisPassword string `config:"PROTOCORE_REDIS_PASSWORD"`
	RedisDB       int    `config:"PROTOCORE_REDIS_DB"`

	LogLevel string `config:"PROTOCORE_LOG_LEVEL"`
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		SourceDriver: "fs",
		SourceFSRoot: "./prototypes",
		SinkDriver:   "memory",
		SQLitePath:   "prototypes.db",
		RedisAddr:    "localhost:6379",
		LogLevel:     "info",
	}
}

// FromEnv overlays environment variables onto Default.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
