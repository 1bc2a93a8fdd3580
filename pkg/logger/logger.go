// Package logger wraps zerolog behind a process-wide singleton.
//
// Call Init once from main, then use Get (or For, to tag a component)
// everywhere else.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures the logger on first initialisation.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn or error.
	// Unknown or empty values fall back to info.
	Level string
	// Pretty switches to coloured console output for local development.
	// Leave false in production so logs stay machine-parseable JSON.
	Pretty bool
	// Output receives the log stream. Defaults to os.Stdout.
	Output io.Writer
}

var (
	root  zerolog.Logger
	once  sync.Once
	ready bool
)

// Init builds the singleton logger. Subsequent calls are no-ops and return
// the logger created by the first call.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl := levelFromString(opts.Level)
		zerolog.SetGlobalLevel(lvl)

		root = zerolog.New(out).
			Level(lvl).
			With().
			Timestamp().
			Caller().
			Logger()

		ready = true
	})
	return root
}

// Get returns the singleton logger. Panics when Init has not run.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get called before Init")
	}
	return root
}

// For returns a child logger tagged with the given component name.
func For(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

// Reset clears the singleton so the next Init rebuilds it. Tests only.
func Reset() {
	once = sync.Once{}
	root = zerolog.Logger{}
	ready = false
}

func levelFromString(s string) zerolog.Level {
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
