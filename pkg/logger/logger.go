// Package logger holds the process-wide zerolog instance. Call Init once in
// main, then Get from anywhere that cannot receive the logger by injection.
package logger

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu       sync.Mutex
	instance zerolog.Logger
	ready    bool
)

// Init builds the singleton. level is one of trace, debug, info, warn, error;
// anything else falls back to info. pretty switches from JSON to the console
// writer for local development. Repeated calls reconfigure the instance,
// which tests rely on.
func Init(level string, pretty bool) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := zerolog.New(os.Stdout)
	if pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	instance = out.Level(parseLevel(level)).With().Timestamp().Caller().Logger()
	ready = true
	return instance
}

// Get returns the singleton, initialising a default info-level JSON logger if
// Init has not run yet. That keeps early startup failures loggable.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		instance = zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
		ready = true
	}
	return instance
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
