// Package log provides a structured leveled logger for the whole project,
// backed by zerolog. It must be initialized once with Init before use;
// packages then call the leveled helpers (Infof, Debugw, Warnw...).
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Available log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	logTestWriterName = "testwriter"
)

var (
	log zerolog.Logger
	// logTestWriter can be set before Init(level, logTestWriterName, nil)
	// to capture output in tests and benchmarks.
	logTestWriter io.Writer = io.Discard
	// panicOnInvalidChars enables panicking when a log message contains
	// invalid UTF-8 characters, to catch raw byte slices being logged as
	// strings. Only meant for testing.
	panicOnInvalidChars = os.Getenv("LOG_PANIC_ON_INVALIDCHARS") == "true"

	level string
)

// invalidCharChecker panics if a formatted argument contains invalid UTF-8,
// since that usually means raw bytes were logged as a string.
type invalidCharChecker struct{}

func (invalidCharChecker) Write(p []byte) (int, error) {
	if strings.ContainsRune(string(p), '�') {
		panic(fmt.Sprintf("log line with invalid chars: %q", string(p)))
	}
	return len(p), nil
}

// Init initializes the logger with the given level and output. The output
// can be "stdout", "stderr" or a file path. If errorOutput is not nil,
// error-level lines are duplicated to it.
func Init(logLevel, output string, errorOutput io.Writer) {
	var out io.Writer
	switch output {
	case "stdout":
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}
	case "stderr":
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339Nano}
	case logTestWriterName:
		out = logTestWriter
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			panic(fmt.Sprintf("cannot open log output %q: %v", output, err))
		}
		out = f
	}
	if errorOutput != nil {
		out = zerolog.MultiLevelWriter(out, errorLevelWriter{errorOutput})
	}
	if panicOnInvalidChars {
		out = zerolog.MultiLevelWriter(out, invalidCharChecker{})
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log = zerolog.New(out).With().Timestamp().Logger()
	level = logLevel
	switch logLevel {
	case LogLevelDebug:
		log = log.Level(zerolog.DebugLevel)
	case LogLevelInfo:
		log = log.Level(zerolog.InfoLevel)
	case LogLevelWarn:
		log = log.Level(zerolog.WarnLevel)
	case LogLevelError:
		log = log.Level(zerolog.ErrorLevel)
	default:
		panic(fmt.Sprintf("invalid log level: %q", logLevel))
	}
	log.Debug().Msgf("logger construction succeeded at level %s with output %s", logLevel, output)
}

// errorLevelWriter forwards only error-or-worse lines to its writer.
type errorLevelWriter struct{ w io.Writer }

func (w errorLevelWriter) Write(p []byte) (int, error) { return len(p), nil }

func (w errorLevelWriter) WriteLevel(l zerolog.Level, p []byte) (int, error) {
	if l < zerolog.ErrorLevel {
		return len(p), nil
	}
	return w.w.Write(p)
}

// Level returns the current log level.
func Level() string {
	return level
}

// Logger returns the underlying zerolog logger.
func Logger() *zerolog.Logger {
	return &log
}

func formatArgs(args ...any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}

// withFields adds the alternating key/value pairs to the event.
func withFields(ev *zerolog.Event, keysAndValues ...any) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		ev = ev.Interface(key, keysAndValues[i+1])
	}
	return ev
}

// Debug logs a debug message formed by the concatenation of the arguments.
func Debug(args ...any) { log.Debug().Msg(formatArgs(args...)) }

// Info logs an info message formed by the concatenation of the arguments.
func Info(args ...any) { log.Info().Msg(formatArgs(args...)) }

// Warn logs a warning message formed by the concatenation of the arguments.
func Warn(args ...any) { log.Warn().Msg(formatArgs(args...)) }

// Error logs an error message formed by the concatenation of the arguments.
func Error(args ...any) { log.Error().Msg(formatArgs(args...)) }

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) { log.Debug().Msgf(format, args...) }

// Infof logs a formatted info message.
func Infof(format string, args ...any) { log.Info().Msgf(format, args...) }

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) { log.Warn().Msgf(format, args...) }

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) { log.Error().Msgf(format, args...) }

// Fatalf logs a formatted error message and exits the process.
func Fatalf(format string, args ...any) {
	log.Fatal().Msgf(format, args...)
}

// Fatal logs an error message and exits the process.
func Fatal(args ...any) {
	log.Fatal().Msg(formatArgs(args...))
}

// Debugw logs a debug message with alternating key/value fields.
func Debugw(msg string, keysAndValues ...any) {
	withFields(log.Debug(), keysAndValues...).Msg(msg)
}

// Infow logs an info message with alternating key/value fields.
func Infow(msg string, keysAndValues ...any) {
	withFields(log.Info(), keysAndValues...).Msg(msg)
}

// Warnw logs a warning message with alternating key/value fields.
func Warnw(msg string, keysAndValues ...any) {
	withFields(log.Warn(), keysAndValues...).Msg(msg)
}

// Errorw logs an error with an additional message.
func Errorw(err error, msg string) {
	log.Error().Err(err).Msg(msg)
}
