package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/tool"
)

// runConvert handles the convert command.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: convert takes one input, got %d", ErrUsage, len(positional))
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts, err := converterOptions(cfg, logger, nil)
	if err != nil {
		return err
	}

	params := &conversionParams{
		profile:    cfg.Style.Profile,
		overrides:  cfg.Style.Overrides(),
		page:       cfg.Page.Override(),
		htmlOutput: flags.outputMode.html,
		summary:    flags.outputMode.summary,
		logger:     logger,
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	if inputPath == stdinPath {
		return convertStdin(ctx, flags.output, opts, params, flags.common.quiet, env)
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	size := md2docx.ResolvePoolSize(cfg.Convert.Workers)
	if size > len(files) {
		size = len(files)
	}
	pool := md2docx.NewConverterPool(size, opts...)
	defer func() { _ = pool.Close() }()

	logger.Debug("converting",
		zap.String("input", inputPath),
		zap.Int("files", len(files)),
		zap.Int("workers", pool.Size()),
	)

	results := convertBatch(ctx, pool, pool.Size(), files, params)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failedCount, len(results))
	}

	return nil
}

// convertStdin converts markdown read from stdin. The document goes to
// output, or to stdout when output is empty or "-".
func convertStdin(ctx context.Context, output string, opts []md2docx.Option, params *conversionParams, quiet bool, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %w", ErrReadMarkdown, err)
	}

	toStdout := output == "" || output == stdinPath
	docPath := output
	if toStdout {
		docPath = md2docx.DefaultFilename
	} else if !isDocxPath(output) {
		docPath = filepath.Join(output, md2docx.DefaultFilename)
	}

	// Relative image paths resolve against the working directory.
	sourceDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	conv, err := md2docx.NewConverter(opts...)
	if err != nil {
		return err
	}

	in := params.input(string(content), docPath, sourceDir)
	res, err := conv.Convert(ctx, in)
	if err != nil {
		return err
	}
	if warning := styleWarning(res); warning != "" && !quiet {
		fmt.Fprintf(env.Stderr, "WARNING %s: %s\n", stdinPath, warning)
	}

	if toStdout {
		if _, err := env.Stdout.Write(res.DOCX); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteDOCX, err)
		}
		if params.summary {
			return printSummary(env.Stderr, tool.SummaryFor(in, res))
		}
		return nil
	}

	if err := writeOutputs(docPath, res, params.htmlOutput); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", docPath)
	}
	if params.summary {
		return printSummary(env.Stdout, tool.SummaryFor(in, res))
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.style.profile != "" {
		cfg.Style.Profile = flags.style.profile
	}
	if flags.style.stylesDir != "" {
		cfg.Assets.BasePath = flags.style.stylesDir
	}

	fonts := []*config.FontConfig{&cfg.Style.H1, &cfg.Style.H2, &cfg.Style.H3, &cfg.Style.H4, &cfg.Style.H5}
	for i, f := range flags.style.headings {
		mergeFont(fonts[i], f)
	}
	mergeFont(&cfg.Style.Body, flags.style.body)

	mergePage(&cfg.Page, flags.page)

	if flags.workers > 0 {
		cfg.Convert.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Convert.Timeout = flags.timeout
	}

	mergeLogFlags(cfg, flags.log, flags.common)
}

func mergeFont(dst *config.FontConfig, f fontFlag) {
	if f.font != "" {
		dst.Font = f.font
	}
	if f.size != 0 {
		dst.Size = f.size
	}
}

func mergePage(dst *config.PageConfig, p pageFlags) {
	set := func(field *float64, v float64) {
		if v != 0 {
			*field = v
		}
	}
	set(&dst.Width, p.width)
	set(&dst.Height, p.height)
	set(&dst.MarginTop, p.marginTop)
	set(&dst.MarginBottom, p.marginBottom)
	set(&dst.MarginLeft, p.marginLeft)
	set(&dst.MarginRight, p.marginRight)
	if p.orientation != "" {
		dst.Orientation = p.orientation
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
