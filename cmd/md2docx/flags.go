package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2docx"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// logFlags selects the logger.
type logFlags struct {
	level  string
	format string
}

// fontFlag is one font family/size pair.
type fontFlag struct {
	font string
	size float64
}

// styleFlags holds profile selection and font overrides.
type styleFlags struct {
	profile   string
	stylesDir string
	headings  [md2docx.HeadingLevels]fontFlag
	body      fontFlag
}

// pageFlags holds page layout overrides, in millimetres.
type pageFlags struct {
	width        float64
	height       float64
	marginTop    float64
	marginBottom float64
	marginLeft   float64
	marginRight  float64
	orientation  string
}

// outputFlags holds output mode flags for debugging.
type outputFlags struct {
	html    bool // Write the intermediate HTML next to the document
	summary bool // Print the JSON summary of each document
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	log        logFlags
	output     string
	workers    int
	timeout    string
	style      styleFlags
	page       pageFlags
	outputMode outputFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common       commonFlags
	log          logFlags
	transport    string
	addr         string
	maxBodyBytes int64
	workers      int
	timeout      string
	stylesDir    string
}

// profilesFlags holds flags for the profiles command.
type profilesFlags struct {
	common    commonFlags
	stylesDir string
	json      bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common    commonFlags
	stylesDir string
	json      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addLogFlags adds logger flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: console, json")
}

// addStyleFlags adds profile and font override flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVarP(&f.profile, "profile", "p", "", "style profile name, slug or alias (default "+md2docx.DefaultProfile+")")
	fs.StringVar(&f.stylesDir, "styles-dir", "", "directory with custom style profiles")
	for i := range f.headings {
		level := i + 1
		fs.StringVar(&f.headings[i].font, fmt.Sprintf("h%d-font", level), "", fmt.Sprintf("heading %d font family", level))
		fs.Float64Var(&f.headings[i].size, fmt.Sprintf("h%d-size", level), 0, fmt.Sprintf("heading %d size in points", level))
	}
	fs.StringVar(&f.body.font, "body-font", "", "body font family")
	fs.Float64Var(&f.body.size, "body-size", 0, "body size in points")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.Float64Var(&f.width, "page-width", 0, "page width in mm")
	fs.Float64Var(&f.height, "page-height", 0, "page height in mm")
	fs.Float64Var(&f.marginTop, "margin-top", 0, "top margin in mm")
	fs.Float64Var(&f.marginBottom, "margin-bottom", 0, "bottom margin in mm")
	fs.Float64Var(&f.marginLeft, "margin-left", 0, "left margin in mm")
	fs.Float64Var(&f.marginRight, "margin-right", 0, "right margin in mm")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write intermediate HTML alongside the document")
	fs.BoolVar(&f.summary, "summary", false, "print the JSON summary of each document")
}

// newConvertFlagSet registers every convert flag on a new FlagSet.
// Shared by parseConvertFlags and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file conversion timeout (e.g., 30s, 2m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addLogFlags(fs, &f.log)
	addStyleFlags(fs, &f.style)
	addPageFlags(fs, &f.page)
	addOutputFlags(fs, &f.outputMode)

	return fs
}

// newServeFlagSet registers every serve flag on a new FlagSet.
func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)

	fs.StringVar(&f.transport, "transport", "", "transport: stdio (MCP) or http")
	fs.StringVar(&f.addr, "addr", "", "HTTP listen address (default 127.0.0.1:8080)")
	fs.Int64Var(&f.maxBodyBytes, "max-body-bytes", 0, "HTTP request body limit in bytes")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent conversions (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-call conversion timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.stylesDir, "styles-dir", "", "directory with custom style profiles")

	addCommonFlags(fs, &f.common)
	addLogFlags(fs, &f.log)

	return fs
}

// newProfilesFlagSet registers every profiles flag on a new FlagSet.
func newProfilesFlagSet(f *profilesFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("profiles", flag.ContinueOnError)
	fs.StringVar(&f.stylesDir, "styles-dir", "", "directory with custom style profiles")
	fs.BoolVar(&f.json, "json", false, "print profiles as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

// newDoctorFlagSet registers every doctor flag on a new FlagSet.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.StringVar(&f.stylesDir, "styles-dir", "", "directory with custom style profiles")
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

// parseFlagSet parses args and wraps parse errors in ErrUsage. Help
// requests print usage to w and return flag.ErrHelp.
func parseFlagSet(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) ([]string, error) {
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	rest, err := parseFlagSet(newConvertFlagSet(f), args, w, printConvertUsage)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	rest, err := parseFlagSet(newServeFlagSet(f), args, w, printServeUsage)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, rest)
	}
	return f, nil
}

// parseProfilesFlags parses profiles command flags.
func parseProfilesFlags(args []string, w io.Writer) (*profilesFlags, error) {
	f := &profilesFlags{}
	rest, err := parseFlagSet(newProfilesFlagSet(f), args, w, printProfilesUsage)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: profiles takes no arguments, got %q", ErrUsage, rest)
	}
	return f, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	rest, err := parseFlagSet(newDoctorFlagSet(f), args, w, printDoctorUsage)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: doctor takes no arguments, got %q", ErrUsage, rest)
	}
	return f, nil
}
