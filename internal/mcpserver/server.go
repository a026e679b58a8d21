package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/tool"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "md2docx"
	// ProfilesToolName lists the available style profiles.
	ProfilesToolName = "list_style_profiles"
)

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	svc       tool.Service
	tool      *tool.Tool
	logger    *zap.Logger
}

// Option configures a Server.
type Option func(*options)

type options struct {
	version  string
	logger   *zap.Logger
	recorder md2docx.Recorder
}

// WithVersion sets the version reported to clients.
func WithVersion(v string) Option {
	return func(o *options) {
		if v != "" {
			o.version = v
		}
	}
}

// WithLogger sets the logger. In stdio mode it must not write to stdout.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder counts rejected tool calls.
func WithRecorder(r md2docx.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// New creates a server with both tools registered.
func New(svc tool.Service, opts ...Option) *Server {
	o := options{version: "dev", logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	toolOpts := []tool.Option{tool.WithLogger(o.logger)}
	if o.recorder != nil {
		toolOpts = append(toolOpts, tool.WithRecorder(o.recorder))
	}

	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{Name: serverName, Version: o.version}, nil),
		svc:       svc,
		tool:      tool.New(svc, toolOpts...),
		logger:    o.logger,
	}

	s.mcpServer.AddTool(&mcp.Tool{
		Name:        tool.Name,
		Description: tool.Description,
		InputSchema: convertInputSchema(),
	}, s.handleConvert)
	s.mcpServer.AddTool(&mcp.Tool{
		Name:        ProfilesToolName,
		Description: "List the available style profiles with their slugs and aliases.",
		InputSchema: emptyInputSchema(),
	}, s.handleProfiles)

	return s
}

// Serve runs the server on stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Run serves one session over t. Cancelling ctx is a clean shutdown.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.logger.Info("mcp server started", zap.String("tools", tool.Name+","+ProfilesToolName))
	err := s.mcpServer.Run(ctx, t)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) handleConvert(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw json.RawMessage
	if req != nil && req.Params != nil {
		raw = req.Params.Arguments
	}
	args, err := decodeArguments(raw)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return toResult(s.tool.Invoke(ctx, args))
}

func (s *Server) handleProfiles(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profiles, err := s.svc.Profiles(ctx)
	if err != nil {
		s.logger.Warn("profile listing failed", zap.Error(err))
		return errorResult(fmt.Sprintf("Listing profiles failed: %v", err)), nil
	}
	return jsonResult(map[string]any{"profiles": profiles})
}

// decodeArguments keeps numbers as json.Number so "14" and 14 coerce alike.
func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return args, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// toResult maps tool messages onto MCP content. A text-only answer is an
// error result.
func toResult(msgs []tool.Message) (*mcp.CallToolResult, error) {
	if tool.IsError(msgs) {
		return errorResult(msgs[0].Text), nil
	}

	res := &mcp.CallToolResult{}
	for _, m := range msgs {
		switch m.Kind {
		case tool.KindBlob:
			res.Content = append(res.Content, &mcp.EmbeddedResource{
				Resource: &mcp.ResourceContents{
					URI:      fileURI(m.Filename),
					MIMEType: m.MIMEType,
					Blob:     m.Data,
				},
			})
		case tool.KindJSON:
			data, err := json.Marshal(m.Summary)
			if err != nil {
				return nil, fmt.Errorf("encoding summary: %w", err)
			}
			res.Content = append(res.Content, &mcp.TextContent{Text: string(data)})
			res.StructuredContent = m.Summary
		case tool.KindText:
			res.Content = append(res.Content, &mcp.TextContent{Text: m.Text})
		}
	}
	return res, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: v,
	}, nil
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// fileURI builds file:///<filename>, escaping non-ASCII names.
func fileURI(filename string) string {
	u := url.URL{Scheme: "file", Path: "/" + filename}
	return u.String()
}
