// Package logging builds the zap logger shared by the CLI and the servers.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// ErrInvalidLevel is returned for an unknown level name.
var ErrInvalidLevel = errors.New("invalid log level")

// ErrInvalidFormat is returned for an unknown format name.
var ErrInvalidFormat = errors.New("invalid log format")

// Options selects level, encoding and destination.
type Options struct {
	Level  string    // debug, info, warn, error (default: info)
	Format string    // json or console (default: console)
	Output io.Writer // required
}

// New returns a logger writing to opts.Output. JSON uses the production
// encoder, console the development encoder without stack traces on warn.
func New(opts Options) (*zap.Logger, error) {
	if opts.Output == nil {
		return nil, errors.New("logging: nil output")
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var enc zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case FormatJSON:
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	case "", FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidFormat, opts.Format, FormatJSON, FormatConsole)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(opts.Output)), level)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return l, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}
