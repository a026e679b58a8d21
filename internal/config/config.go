package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/logging"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits for multi-tenant safety.
const (
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxProfileLength     = 100  // "学术论文", "technical-doc"
	MaxFontLength        = 100  // "方正小标宋简体", "Microsoft YaHei UI"
	MaxAddrLength        = 255  // "host:port"
	MaxDurationLength    = 20   // "30s", "1m30s"
	MaxFontSize          = 1638 // Largest size Word accepts, in points
	MaxOrientationLength = 10   // "portrait", "landscape"
)

// Transports accepted by server.transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// appDirName is the directory under os.UserConfigDir() searched for configs.
const appDirName = "go-md2docx"

// Config holds all configuration for document generation and serving.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Style   StyleConfig   `yaml:"style"`
	Page    PageConfig    `yaml:"page"`
	Assets  AssetsConfig  `yaml:"assets"`
	Convert ConvertConfig `yaml:"convert"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// StyleConfig selects the profile and the font overrides applied on top.
type StyleConfig struct {
	Profile string     `yaml:"profile"` // Name, slug or alias (empty = 学术论文)
	H1      FontConfig `yaml:"h1"`
	H2      FontConfig `yaml:"h2"`
	H3      FontConfig `yaml:"h3"`
	H4      FontConfig `yaml:"h4"`
	H5      FontConfig `yaml:"h5"`
	Body    FontConfig `yaml:"body"`
}

// FontConfig overrides one font. Zero values mean "keep the profile's".
type FontConfig struct {
	Font string  `yaml:"font"`
	Size float64 `yaml:"size"` // points
}

// PageConfig overrides the page box, in millimetres.
type PageConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MarginTop    float64 `yaml:"marginTop"`
	MarginBottom float64 `yaml:"marginBottom"`
	MarginLeft   float64 `yaml:"marginLeft"`
	MarginRight  float64 `yaml:"marginRight"`
	Orientation  string  `yaml:"orientation"` // "portrait", "landscape"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// ConvertConfig tunes the conversion engine.
type ConvertConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, e.g. "30s" (empty = 30s)
	Workers int    `yaml:"workers"` // 0 = derived from GOMAXPROCS
}

// ServerConfig defines the serve command.
type ServerConfig struct {
	Transport    string `yaml:"transport"`    // "stdio" (default) or "http"
	Addr         string `yaml:"addr"`         // HTTP listen address
	MaxBodyBytes int64  `yaml:"maxBodyBytes"` // HTTP request body limit
}

// LogConfig defines logger options.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., API adapters, library users).
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	// Style
	if err := validateFieldLength("style.profile", c.Style.Profile, MaxProfileLength); err != nil {
		return err
	}
	for i, f := range c.Style.fonts() {
		name := fontFieldName(i)
		if err := validateFieldLength(name+".font", f.Font, MaxFontLength); err != nil {
			return err
		}
		if f.Size < 0 || f.Size > MaxFontSize {
			return fmt.Errorf("%w: %s.size must be between 0 and %d, got %g", ErrInvalidValue, name, MaxFontSize, f.Size)
		}
	}

	// Page
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if p := c.Page.Override(); p != nil {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: page: %w", ErrInvalidValue, err)
		}
	}

	// Convert
	if err := validateFieldLength("convert.timeout", c.Convert.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if c.Convert.Timeout != "" {
		if _, err := c.Convert.TimeoutDuration(); err != nil {
			return err
		}
	}
	if c.Convert.Workers < 0 {
		return fmt.Errorf("%w: convert.workers must be >= 0, got %d", ErrInvalidValue, c.Convert.Workers)
	}

	// Server
	switch strings.ToLower(c.Server.Transport) {
	case "", TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("%w: server.transport %q (must be %s or %s)", ErrInvalidValue, c.Server.Transport, TransportStdio, TransportHTTP)
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.maxBodyBytes must be >= 0, got %d", ErrInvalidValue, c.Server.MaxBodyBytes)
	}

	// Log
	if c.Log.Level != "" {
		if _, err := logging.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level: %v", ErrInvalidValue, err)
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("%w: log.format %q (must be %s or %s)", ErrInvalidValue, c.Log.Format, logging.FormatJSON, logging.FormatConsole)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// fonts returns h1..h5 then body.
func (s StyleConfig) fonts() [md2docx.HeadingLevels + 1]FontConfig {
	return [...]FontConfig{s.H1, s.H2, s.H3, s.H4, s.H5, s.Body}
}

func fontFieldName(i int) string {
	if i == md2docx.HeadingLevels {
		return "style.body"
	}
	return fmt.Sprintf("style.h%d", i+1)
}

// Overrides converts the configured fonts into library overrides.
// A zero size means no size override.
func (s StyleConfig) Overrides() md2docx.Overrides {
	var o md2docx.Overrides
	fonts := s.fonts()
	for i := 0; i < md2docx.HeadingLevels; i++ {
		o.Headings[i] = fonts[i].override()
	}
	o.Body = fonts[md2docx.HeadingLevels].override()
	return o
}

func (f FontConfig) override() md2docx.FontOverride {
	o := md2docx.FontOverride{Family: strings.TrimSpace(f.Font)}
	if f.Size > 0 {
		size := f.Size
		o.Size = &size
	}
	return o
}

// Override returns the configured page box, or nil when nothing is set.
func (p PageConfig) Override() *md2docx.PageOverride {
	o := &md2docx.PageOverride{Orientation: strings.ToLower(strings.TrimSpace(p.Orientation))}
	set := func(dst **float64, v float64) {
		if v != 0 {
			*dst = &v
		}
	}
	set(&o.Width, p.Width)
	set(&o.Height, p.Height)
	set(&o.MarginTop, p.MarginTop)
	set(&o.MarginBottom, p.MarginBottom)
	set(&o.MarginLeft, p.MarginLeft)
	set(&o.MarginRight, p.MarginRight)
	if o.IsEmpty() {
		return nil
	}
	return o
}

// TimeoutDuration parses convert.timeout. Empty yields 0 (library default).
func (c ConvertConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: convert.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: convert.timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// DefaultConfig returns a neutral configuration: default profile, no
// overrides, stdio transport.
func DefaultConfig() *Config {
	return &Config{
		Input:   InputConfig{DefaultDir: ""},
		Output:  OutputConfig{DefaultDir: ""},
		Style:   StyleConfig{Profile: ""},
		Assets:  AssetsConfig{BasePath: ""},
		Convert: ConvertConfig{Timeout: "", Workers: 0},
		Server:  ServerConfig{Transport: TransportStdio},
		Log:     LogConfig{Level: "info", Format: logging.FormatConsole},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <UserConfigDir>/go-md2docx/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// UserDir returns the per-user directory searched for named configs, or ""
// when the platform has none.
func UserDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName)
}
