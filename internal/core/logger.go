package core

import "github.com/rs/zerolog"

// Logger is the structured logging surface used by the loader. Arguments are
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger adapts a zerolog.Logger to Logger.
func NewZerologLogger(log zerolog.Logger) Logger {
	return zerologLogger{log: log}
}

func (z zerologLogger) Debug(msg string, args ...any) { z.log.Debug().Fields(args).Msg(msg) }
func (z zerologLogger) Info(msg string, args ...any)  { z.log.Info().Fields(args).Msg(msg) }
func (z zerologLogger) Warn(msg string, args ...any)  { z.log.Warn().Fields(args).Msg(msg) }
func (z zerologLogger) Error(msg string, args ...any) { z.log.Error().Fields(args).Msg(msg) }
