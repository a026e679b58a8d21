package md2docx

import (
	"time"

	"go.uber.org/zap"
)

// Styling fallback reasons passed to Recorder.StylingFallback.
const (
	FallbackRegistryUnavailable = "registry_unavailable"
	FallbackStyleError          = "style_error"
)

// Recorder receives conversion telemetry. internal/metrics provides a
// Prometheus implementation; the default discards everything.
type Recorder interface {
	// ConversionDone records one Convert call. outcome is "success" or
	// "failed"; callers with their own validation add "invalid_params".
	ConversionDone(outcome string, elapsed time.Duration)
	// StylingFallback records a conversion whose styling degraded.
	StylingFallback(reason string)
}

type nopRecorder struct{}

func (nopRecorder) ConversionDone(string, time.Duration) {}
func (nopRecorder) StylingFallback(string)               {}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	assetPath string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2docx: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath loads profiles and reference styles from a directory,
// falling back to the embedded ones. Ignored when WithAssetLoader is set.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets the telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Converter) {
		if r != nil {
			c.recorder = r
		}
	}
}
