package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

var (
	logger     = zerolog.New(os.Stdout).With().Timestamp().Logger()
	loggerOnce sync.Once
)

// Config holds configuration for the logger
type Config struct {
	Level      string
	Console    bool
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init initializes the global logger. Only the first call has an effect.
func Init(cfg Config) {
	loggerOnce.Do(func() {
		var writers []io.Writer

		if cfg.Console {
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
		}

		if cfg.FilePath != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.FilePath,
				MaxSize:    orDefault(cfg.MaxSizeMB, 10), // megabytes
				MaxBackups: orDefault(cfg.MaxBackups, 5),
				MaxAge:     orDefault(cfg.MaxAgeDays, 30), // days
				Compress:   true,
			})
		}

		if len(writers) == 0 {
			writers = append(writers, os.Stdout)
		}

		logger = zerolog.New(io.MultiWriter(writers...)).
			With().Timestamp().Logger().
			Level(ParseLevel(cfg.Level))
	})
}

// SetOutput replaces the global logger's writer. Used by tests.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// Info logs an info message
func Info(msg string, fields ...interface{}) {
	logWithFields(logger.Info(), msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...interface{}) {
	logWithFields(logger.Warn(), msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...interface{}) {
	logWithFields(logger.Error(), msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...interface{}) {
	logWithFields(logger.Debug(), msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...interface{}) {
	logWithFields(logger.Fatal(), msg, fields...)
}

// logWithFields adds key/value pairs to the event. A single map argument is
// added as-is.
func logWithFields(event *zerolog.Event, msg string, fields ...interface{}) {
	if len(fields) == 1 {
		if m, ok := fields[0].(map[string]interface{}); ok {
			event.Fields(m).Msg(msg)
			return
		}
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		if err, isErr := fields[i+1].(error); isErr {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	event.Msg(msg)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
