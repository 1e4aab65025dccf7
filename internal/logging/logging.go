// Package logging builds the zerolog loggers used by the commands.
package logging

import (
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger on w. Unknown levels fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	var lvl, err = zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Logger()
}

func NewStderr(level string) zerolog.Logger {
	return New(os.Stderr, level)
}

// Startup logs the build and runtime information of a command.
func Startup(logger zerolog.Logger, name, version, buildDate, gitRevision string) {
	logger.Info().
		Str("name", name).
		Str("version", version).
		Str("build-date", buildDate).
		Str("git-revision", gitRevision).
		Str("runtime", runtime.Version()).
		Str("goarch", runtime.GOARCH).
		Str("goos", runtime.GOOS).
		Int("num-cpu", runtime.NumCPU()).
		Msg("starting")
}
