package md2docx

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/htmldocx"
	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/styler"
	"github.com/alnah/go-md2docx/internal/styles"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader            = (*publicToInternalAdapter)(nil)
	_ AssetLoader                   = (*assetLoaderAdapter)(nil)
	_ Recorder                      = nopRecorder{}
)

// Converter orchestrates the markdown-to-DOCX conversion pipeline.
// Create with NewConverter and call Convert. A Converter holds no per-call
// state and is safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	logger            *zap.Logger
	recorder          Recorder

	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	builder       *htmldocx.Builder

	// registry is nil when loading failed; registryErr says why.
	registry    *styles.Registry
	registryErr error
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithAssetPath, WithLogger).
//
// A style registry that fails to load is not an error: conversions then use
// the hardcoded fallback table and RegistryErr reports the cause.
// Returns ErrInvalidAssetPath if WithAssetPath names an unusable directory.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout},
		assetLoader:   assets.NewEmbeddedLoader(),
		logger:        zap.NewNop(),
		recorder:      nopRecorder{},
		preprocessor:  &pipeline.CommonMarkPreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	c.registry, c.registryErr = styles.LoadRegistry(c.assetLoader)
	if c.registryErr != nil {
		c.registry = nil
		c.logger.Warn("style registry unavailable, using fallback styles", zap.Error(c.registryErr))
	}

	builderOpts := []htmldocx.Option{htmldocx.WithLogger(c.logger)}
	if ref, err := c.assetLoader.LoadReferenceStyles(); err == nil {
		builderOpts = append(builderOpts, htmldocx.WithReferenceStyles(ref))
	} else {
		c.logger.Warn("reference styles unavailable, using go-docx defaults", zap.Error(err))
	}
	c.builder = htmldocx.NewBuilder(builderOpts...)

	return c, nil
}

// RegistryErr returns why the style registry could not be loaded, or nil.
func (c *Converter) RegistryErr() error {
	return c.registryErr
}

// Profiles lists the loaded style profiles sorted by slug.
// Returns ErrRegistryUnavailable if the registry failed to load.
func (c *Converter) Profiles() ([]ProfileInfo, error) {
	if c.registry == nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, c.registryErr)
	}
	templates := c.registry.Templates()
	out := make([]ProfileInfo, 0, len(templates))
	for _, t := range templates {
		out = append(out, ProfileInfo{
			Name:        t.Name,
			Slug:        t.Slug,
			Aliases:     append([]string(nil), t.Aliases...),
			Description: t.Description,
		})
	}
	return out, nil
}

// Convert runs the full pipeline and returns the styled document.
// The context is used for cancellation; the converter timeout applies on top.
// Styling failures do not fail the call: see ConvertResult.Styled.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("internal error: %v", r)
		}
		outcome := "success"
		if err != nil {
			outcome = "failed"
		}
		c.recorder.ConversionDone(outcome, time.Since(start))
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to HTML
	htmlContent, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrHTMLConversion, err)
	}

	// Complete the ==text== feature started in preprocessing.
	htmlContent = pipeline.ConvertMarkPlaceholders(htmlContent)

	// Rewrite relative paths to absolute file:// URLs (if source directory provided)
	if input.SourceDir != "" {
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	base, err := c.builder.Build(ctx, htmlContent, htmldocx.Metadata{
		Title:    NormalizeFilename(input.Filename),
		ImageDir: input.SourceDir,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrDOCXGeneration, err)
	}

	res := &ConvertResult{DOCX: base, HTML: htmlContent}
	c.style(res, input)
	return res, nil
}

// style applies the profile to res.DOCX in place. On failure res keeps the
// base document and records why.
func (c *Converter) style(res *ConvertResult, input Input) {
	req := c.styleRequest(input)
	profile := req.Profile

	if c.registry == nil {
		c.recorder.StylingFallback(FallbackRegistryUnavailable)
	}

	out, rep, err := styler.Apply(res.DOCX, req)
	if err != nil {
		res.StyleErr = err
		c.recorder.StylingFallback(FallbackStyleError)
		c.logger.Warn("styling failed, returning unstyled document",
			zap.String("profile", profile), zap.Error(err))
		return
	}

	if c.registry != nil && !rep.TemplateFound {
		c.logger.Info("style profile not found, using defaults", zap.String("profile", profile))
	}
	c.logger.Debug("document styled",
		zap.String("profile", profile),
		zap.Bool("fallback", rep.Fallback),
		zap.Int("paragraphs", rep.Paragraphs),
		zap.Int("runs", rep.Runs))

	res.DOCX = out
	res.Styled = true
	res.Fallback = rep.Fallback
	res.TemplateFound = rep.TemplateFound
}

func (c *Converter) styleRequest(input Input) styler.Request {
	profile := input.Profile
	if profile == "" {
		profile = DefaultProfile
	}
	return styler.Request{
		Registry:  c.registry,
		Profile:   profile,
		Overrides: input.Overrides.internal(),
		Page:      input.Page.internal(),
	}
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// Tool and CLI callers validate earlier; both paths converge here.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	if input.Page.IsEmpty() {
		return nil
	}
	// The override must also leave room on the page it is merged with.
	if _, _, err := styler.ResolvePage(c.styleRequest(input)); err != nil {
		return err
	}
	return nil
}
