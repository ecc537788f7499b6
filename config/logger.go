package config

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog logger writing to out, human readable when Pretty is set.
func NewLogger(c LogConfig, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}

	if c.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
		zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
			// Pad to 24 characters for alignment
			return fmt.Sprintf("%-24s", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Caller().Logger(), nil
}
