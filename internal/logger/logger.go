// Package logger builds the zerolog loggers used across nexus.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Output formats accepted by New.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel keeps routine progress messages out of command output.
const DefaultLevel = zerolog.WarnLevel

// New returns a logger writing to w at the given level. FormatAuto picks the
// console writer when w is a terminal and JSON otherwise.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := DefaultLevel

	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}

		lvl = parsed
	}

	var out io.Writer

	switch strings.ToLower(format) {
	case "", FormatAuto:
		out = w
		if isTerminal(w) {
			out = consoleWriter(w)
		}
	case FormatConsole:
		out = consoleWriter(w)
	case FormatJSON:
		out = w
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q (expected auto, console or json)", format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Install makes l the global logger behind github.com/rs/zerolog/log.
func Install(l zerolog.Logger) {
	log.Logger = l
}

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
