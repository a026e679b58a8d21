package tool

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/metrics"
)

// Name is the tool name exposed by the servers.
const Name = "markdown_to_docx"

// Description is the tool description exposed by the servers.
const Description = "Convert Markdown to a Word (.docx) document with Chinese typography " +
	"profiles (学术论文, 公文, 商务报告, 技术文档) and optional per-heading font and size overrides."

// SuccessMessage is the summary message of a successful call.
const SuccessMessage = "Markdown converted to Word with Chinese typography"

// Converter runs one conversion. *md2docx.Converter and
// *md2docx.ConverterPool satisfy it.
type Converter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.ConvertResult, error)
}

// Service is a Converter that can also list style profiles. The servers
// take a *md2docx.ConverterPool through it.
type Service interface {
	Converter
	Profiles(ctx context.Context) ([]md2docx.ProfileInfo, error)
}

// Tool answers tool calls.
type Tool struct {
	conv     Converter
	logger   *zap.Logger
	recorder md2docx.Recorder
}

// Option configures a Tool.
type Option func(*Tool)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tool) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithRecorder counts rejected calls. Conversions are counted by the
// converter itself.
func WithRecorder(r md2docx.Recorder) Option {
	return func(t *Tool) {
		if r != nil {
			t.recorder = r
		}
	}
}

// New creates a Tool over conv.
func New(conv Converter, opts ...Option) *Tool {
	t := &Tool{conv: conv, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Invoke runs one call. The answer is either [blob, json] or [text].
func (t *Tool) Invoke(ctx context.Context, args map[string]any) []Message {
	params, err := ExtractParams(args)
	if err != nil {
		if t.recorder != nil {
			t.recorder.ConversionDone(metrics.OutcomeInvalidParams, 0)
		}
		t.logger.Info("tool call rejected", zap.Error(err))
		return []Message{TextMessage(err.Error())}
	}

	res, err := t.conv.Convert(ctx, params.Input())
	if err != nil {
		t.logger.Warn("conversion failed", zap.String("filename", params.Filename), zap.Error(err))
		return []Message{TextMessage(fmt.Sprintf("Conversion failed: %v", err))}
	}

	t.logger.Info("document converted",
		zap.String("filename", params.Filename),
		zap.String("profile", params.Profile),
		zap.Int("bytes", len(res.DOCX)),
		zap.Bool("styled", res.Styled))

	return []Message{
		{
			Kind:     KindBlob,
			Data:     res.DOCX,
			MIMEType: md2docx.MIMEType,
			Filename: params.Filename,
		},
		{
			Kind:    KindJSON,
			Summary: summarize(params, res),
		},
	}
}

func summarize(p Params, res *md2docx.ConvertResult) *Summary {
	s := &Summary{
		Filename:     p.Filename,
		SizeBytes:    len(res.DOCX),
		StyleProfile: p.Profile,
		Overrides:    p.Overrides,
		Styled:       res.Styled,
		Message:      SuccessMessage,
	}
	if p.Page != nil {
		s.Page = &PageSummary{
			WidthMM:        p.Page.Width,
			HeightMM:       p.Page.Height,
			MarginTopMM:    p.Page.MarginTop,
			MarginBottomMM: p.Page.MarginBottom,
			MarginLeftMM:   p.Page.MarginLeft,
			MarginRightMM:  p.Page.MarginRight,
			Orientation:    p.Page.Orientation,
		}
	}
	return s
}

// SummaryFor describes a conversion made outside a tool call, such as a
// CLI batch, in the same shape as the tool's JSON message.
func SummaryFor(in md2docx.Input, res *md2docx.ConvertResult) *Summary {
	p := Params{
		Filename:  md2docx.NormalizeFilename(in.Filename),
		Profile:   in.Profile,
		Overrides: requestedFrom(in.Overrides),
		Page:      in.Page,
	}
	if p.Profile == "" {
		p.Profile = md2docx.DefaultProfile
	}
	if p.Page != nil && p.Page.IsEmpty() {
		p.Page = nil
	}
	return summarize(p, res)
}
