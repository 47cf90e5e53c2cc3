package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the log level and output format.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // console or json
}

// New builds the process logger. Console output is human readable; json emits
// one object per line for log shippers.
func New(cfg Config, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}
	if out == nil {
		out = os.Stderr
	}

	switch cfg.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", cfg.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
