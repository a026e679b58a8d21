package main

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/logging"
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// loadSettings resolves configuration below the command-line layer:
// env vars > config file > defaults. The config file comes from configFlag,
// else MD2DOCX_CONFIG. Callers merge their flags and then call Validate.
func loadSettings(configFlag string, e *Environment) (*config.Config, error) {
	vars, err := readEnviron(e)
	if err != nil {
		return nil, err
	}
	envCfg, err := loadEnvConfig(vars)
	if err != nil {
		return nil, err
	}
	warnUnknownEnvVars(e.Stderr, vars)

	name := configFlag
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeLogFlags applies --log-level/--log-format, then -v and -q.
func mergeLogFlags(cfg *config.Config, lf logFlags, common commonFlags) {
	if lf.level != "" {
		cfg.Log.Level = lf.level
	}
	if lf.format != "" {
		cfg.Log.Format = lf.format
	}
	if common.verbose {
		cfg.Log.Level = "debug"
	}
	if common.quiet {
		cfg.Log.Level = "error"
	}
}

// newLogger builds the CLI logger on w.
func newLogger(cfg config.LogConfig, w io.Writer) (*zap.Logger, error) {
	return logging.New(logging.Options{Level: cfg.Level, Format: cfg.Format, Output: w})
}

// converterOptions turns configuration into library options. A custom
// profile directory is checked up front so a typo fails before any work.
func converterOptions(cfg *config.Config, logger *zap.Logger, rec md2docx.Recorder) ([]md2docx.Option, error) {
	opts := []md2docx.Option{md2docx.WithLogger(logger)}

	timeout, err := cfg.Convert.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, md2docx.WithTimeout(timeout))
	}

	if cfg.Assets.BasePath != "" {
		if _, err := md2docx.NewAssetLoader(cfg.Assets.BasePath); err != nil {
			return nil, err
		}
		opts = append(opts, md2docx.WithAssetPath(cfg.Assets.BasePath))
	}

	if rec != nil {
		opts = append(opts, md2docx.WithRecorder(rec))
	}
	return opts, nil
}
