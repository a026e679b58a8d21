package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
)

// doctorSample exercises headings, body text and a table.
const doctorSample = "# 标题\n\n正文 **bold** text.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	Styles     stylesInfo     `json:"styles"`
	Conversion conversionInfo `json:"conversion"`
	Env        envInfo        `json:"environment"`
	System     systemInfo     `json:"system"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// stylesInfo holds style registry results.
type stylesInfo struct {
	Source            string   `json:"source"` // "embedded" or the custom directory
	Loaded            bool     `json:"loaded"`
	Profiles          []string `json:"profiles,omitempty"`
	DefaultProfile    string   `json:"default_profile"`
	ConfiguredProfile string   `json:"configured_profile,omitempty"`
	ConfiguredFound   bool     `json:"configured_found"`
	ReferenceStyles   bool     `json:"reference_styles"`
}

// conversionInfo holds the sample conversion results.
type conversionInfo struct {
	OK       bool   `json:"ok"`
	Styled   bool   `json:"styled"`
	Bytes    int    `json:"bytes"`
	Duration string `json:"duration,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	GoMaxProcs    int    `json:"gomaxprocs"`
	Workers       int    `json:"workers"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable   bool   `json:"temp_writable"`
	OutputDir      string `json:"output_dir,omitempty"`
	OutputWritable bool   `json:"output_writable"`
}

func (r *doctorResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad usage.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	cfg, err := loadSettings(flags.common.config, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	if flags.stylesDir != "" {
		cfg.Assets.BasePath = flags.stylesDir
	}

	vars, err := readEnviron(env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	result := runDoctor(ctx, cfg, vars)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config, vars map[string]string) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			GoMaxProcs: runtime.GOMAXPROCS(0),
			Workers:    md2docx.ResolvePoolSize(cfg.Convert.Workers),
		},
	}

	if err := cfg.Validate(); err != nil {
		result.errorf("Invalid configuration: %v", err)
	}

	conv := checkStyles(result, cfg)
	if conv != nil {
		checkConversion(ctx, result, conv)
	}
	checkEnvironment(result, vars)
	checkSystem(result, cfg.Output.DefaultDir)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkStyles loads the style registry and returns a converter on success.
func checkStyles(result *doctorResult, cfg *config.Config) *md2docx.Converter {
	result.Styles.Source = "embedded"
	result.Styles.DefaultProfile = md2docx.DefaultProfile
	result.Styles.ConfiguredProfile = cfg.Style.Profile

	var opts []md2docx.Option
	if cfg.Assets.BasePath != "" {
		result.Styles.Source = cfg.Assets.BasePath
		opts = append(opts, md2docx.WithAssetPath(cfg.Assets.BasePath))
	}
	opts = append(opts, md2docx.WithLogger(zap.NewNop()))

	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		result.errorf("Cannot load styles from %s: %v", result.Styles.Source, err)
		return nil
	}

	if loader, err := md2docx.NewAssetLoader(cfg.Assets.BasePath); err == nil {
		if _, err := loader.LoadReferenceStyles(); err != nil {
			result.warnf("Reference styles unavailable, go-docx defaults will be used: %v", err)
		} else {
			result.Styles.ReferenceStyles = true
		}
	}

	profiles, err := conv.Profiles()
	if err != nil {
		result.warnf("Style registry unavailable, built-in defaults will be used: %v", err)
		return conv
	}
	result.Styles.Loaded = true

	defaultFound := false
	for _, p := range profiles {
		result.Styles.Profiles = append(result.Styles.Profiles, p.Name)
		if p.Name == md2docx.DefaultProfile {
			defaultFound = true
		}
		if cfg.Style.Profile != "" && matchesProfile(p, cfg.Style.Profile) {
			result.Styles.ConfiguredFound = true
		}
	}
	if !defaultFound {
		result.warnf("Default profile %s is missing", md2docx.DefaultProfile)
	}
	if cfg.Style.Profile != "" && !result.Styles.ConfiguredFound {
		result.warnf("Configured profile %q not found, built-in defaults will be used%s",
			cfg.Style.Profile, hints.ForProfileNotFound(result.Styles.Profiles))
	}
	return conv
}

func matchesProfile(p md2docx.ProfileInfo, ref string) bool {
	if p.Name == ref || p.Slug == ref {
		return true
	}
	for _, a := range p.Aliases {
		if a == ref {
			return true
		}
	}
	return false
}

// checkConversion converts a small sample end to end.
func checkConversion(ctx context.Context, result *doctorResult, conv *md2docx.Converter) {
	start := time.Now()
	res, err := conv.Convert(ctx, md2docx.Input{Markdown: doctorSample, Filename: "doctor"})
	if err != nil {
		result.errorf("Sample conversion failed: %v", err)
		return
	}
	result.Conversion = conversionInfo{
		OK:       true,
		Styled:   res.Styled,
		Bytes:    len(res.DOCX),
		Duration: time.Since(start).Round(time.Millisecond).String(),
	}
	if !res.Styled {
		result.warnf("Sample document is unstyled: %v", res.StyleErr)
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, vars map[string]string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(vars)

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if vars[v] != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(vars map[string]string) (bool, string) {
	// Explicit override (highest priority)
	if vars[envPrefix+"CONTAINER"] == "1" {
		return true, envPrefix + "CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := vars["container"]; v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if vars["KUBERNETES_SERVICE_HOST"] != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory and the configured output
// directory accept writes.
func checkSystem(result *doctorResult, outputDir string) {
	tmpDir := os.TempDir()
	if fileutil.DirWritable(tmpDir) {
		result.System.TempWritable = true
	} else {
		result.errorf("Temp directory not writable: %s", tmpDir)
	}

	if outputDir == "" {
		return
	}
	result.System.OutputDir = outputDir
	if fileutil.DirWritable(outputDir) {
		result.System.OutputWritable = true
	} else {
		result.warnf("Output directory not writable: %s", outputDir)
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2docx doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Styles")
	if r.Styles.Loaded {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Styles.Source)
		fmt.Fprintf(w, "  [OK] Profiles: %d loaded\n", len(r.Styles.Profiles))
		if r.Styles.ConfiguredProfile != "" && r.Styles.ConfiguredFound {
			fmt.Fprintf(w, "  [OK] Configured profile: %s\n", r.Styles.ConfiguredProfile)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] Not loaded from %s\n", r.Styles.Source)
	}
	if r.Styles.ReferenceStyles {
		fmt.Fprintln(w, "  [OK] Reference styles: loaded")
	} else {
		fmt.Fprintln(w, "  [WARN] Reference styles: go-docx defaults")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Conversion")
	if r.Conversion.OK {
		fmt.Fprintf(w, "  [OK] Sample converted: %d bytes in %s\n", r.Conversion.Bytes, r.Conversion.Duration)
		if r.Conversion.Styled {
			fmt.Fprintln(w, "  [OK] Styling: applied")
		} else {
			fmt.Fprintln(w, "  [WARN] Styling: not applied")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Sample conversion failed")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] Workers: %d (GOMAXPROCS %d)\n", r.Env.Workers, r.Env.GoMaxProcs)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.OutputDir != "" {
		if r.System.OutputWritable {
			fmt.Fprintf(w, "  [OK] Output directory: %s\n", r.System.OutputDir)
		} else {
			fmt.Fprintf(w, "  [WARN] Output directory: %s not writable\n", r.System.OutputDir)
		}
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
