package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/alnah/go-md2docx/internal/config"
)

// envPrefix namespaces every variable read by the CLI.
const envPrefix = "MD2DOCX_"

// ErrInvalidEnv is returned when an MD2DOCX_* value cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string `env:"CONFIG"`     // config file name or path
	Profile    string `env:"PROFILE"`    // style profile name, slug or alias
	StylesDir  string `env:"STYLES_DIR"` // custom profile directory
	InputDir   string `env:"INPUT_DIR"`
	OutputDir  string `env:"OUTPUT_DIR"`
	Timeout    string `env:"TIMEOUT"` // Go duration, validated with the config
	Workers    int    `env:"WORKERS"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	Transport    string `env:"TRANSPORT"`
	HTTPAddr     string `env:"HTTP_ADDR"`
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES"`
}

// envOptions reads vars with the MD2DOCX_ prefix.
func envOptions(vars map[string]string) env.Options {
	return env.Options{Prefix: envPrefix, Environment: vars}
}

// readEnviron merges the dotenv file under the process environment.
// Process variables win. A missing dotenv file is not an error.
func readEnviron(e *Environment) (map[string]string, error) {
	vars := map[string]string{}
	if e.Environ != nil {
		for _, kv := range e.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
				vars[k] = v
			}
		}
	}
	if e.DotEnv == "" {
		return vars, nil
	}

	dot, err := godotenv.Read(e.DotEnv)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return vars, nil
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidEnv, e.DotEnv, err)
	}
	for k, v := range dot {
		if _, set := vars[k]; !set {
			vars[k] = v
		}
	}
	return vars, nil
}

// loadEnvConfig parses the MD2DOCX_* variables from vars.
func loadEnvConfig(vars map[string]string) (*envConfig, error) {
	cfg := &envConfig{}
	if err := env.ParseWithOptions(cfg, envOptions(vars)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEnv, err)
	}
	return cfg, nil
}

// knownEnvVars lists the variables envConfig reads.
func knownEnvVars() map[string]bool {
	params, err := env.GetFieldParamsWithOptions(&envConfig{}, envOptions(nil))
	if err != nil {
		return nil
	}
	known := make(map[string]bool, len(params))
	for _, p := range params {
		known[p.Key] = true
	}
	return known
}

// warnUnknownEnvVars logs warnings for unrecognized MD2DOCX_* variables.
// Helps catch typos like MD2DOCX_PROFLE.
func warnUnknownEnvVars(w io.Writer, vars map[string]string) {
	known := knownEnvVars()
	var unknown []string
	for name := range vars {
		if strings.HasPrefix(name, envPrefix) && !known[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	setString := func(dst *string, v string) {
		if v != "" && *dst == "" {
			*dst = v
		}
	}

	setString(&cfg.Style.Profile, e.Profile)
	setString(&cfg.Assets.BasePath, e.StylesDir)
	setString(&cfg.Input.DefaultDir, e.InputDir)
	setString(&cfg.Output.DefaultDir, e.OutputDir)
	setString(&cfg.Convert.Timeout, e.Timeout)
	setString(&cfg.Server.Addr, e.HTTPAddr)

	if e.Workers != 0 && cfg.Convert.Workers == 0 {
		cfg.Convert.Workers = e.Workers
	}
	if e.MaxBodyBytes != 0 && cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = e.MaxBodyBytes
	}

	// Level, format and transport have non-empty defaults; the environment
	// replaces them unless the config file changed them.
	defaults := config.DefaultConfig()
	replaceDefault := func(dst *string, def, v string) {
		if v != "" && (*dst == "" || *dst == def) {
			*dst = v
		}
	}
	replaceDefault(&cfg.Log.Level, defaults.Log.Level, e.LogLevel)
	replaceDefault(&cfg.Log.Format, defaults.Log.Format, e.LogFormat)
	replaceDefault(&cfg.Server.Transport, defaults.Server.Transport, e.Transport)
}
