package logger

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var globalLogger zerolog.Logger

var once sync.Once

// InitLogging configures the global zerolog logger. Log lines go to stdout
// and, when a path is given, to an append-only log file.
func InitLogging(logFilePath string) {
	once.Do(func() {
		var writers []io.Writer
		writers = append(writers, os.Stdout)

		if logFilePath != "" {
			file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
			if err != nil {
				// The logger is not usable yet, so report to stderr only.
				os.Stderr.WriteString("Failed to open log file: " + err.Error() + "\n")
			} else {
				writers = append(writers, file)
			}
		}

		multi := zerolog.MultiLevelWriter(writers...)
		logger := zerolog.New(multi).With().Timestamp().Logger()
		globalLogger = logger.Level(zerolog.InfoLevel)
		log.Logger = globalLogger
	})
}

// WithFields returns a context carrying the logger enriched with the fields.
// Every render run attaches its run id and mode this way.
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	l := globalLogger.With().Fields(fields).Logger()
	return l.WithContext(ctx)
}

// fromContext extracts the logger from the context, falling back to the
// global logger.
func fromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		return &globalLogger
	}
	return l
}

// Debug logs a debug level message.
func Debug(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Debug().Msgf(msg, args...)
}

// Info logs an info level message.
func Info(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Info().Msgf(msg, args...)
}

// Warn logs a warning level message.
func Warn(ctx context.Context, msg string, args ...interface{}) {
	fromContext(ctx).Warn().Msgf(msg, args...)
}

// Error logs an error level message. When the first argument is an error it
// is attached as a structured field.
func Error(ctx context.Context, msg string, args ...interface{}) {
	l := fromContext(ctx)
	if len(args) > 0 {
		if err, ok := args[0].(error); ok {
			l.Error().Err(err).Msg(msg)
			return
		}
		l.Error().Msgf(msg, args...)
		return
	}
	l.Error().Msg(msg)
}
