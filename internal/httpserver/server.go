// Package httpserver exposes the markdown_to_docx tool over HTTP with gin.
//
// Routes:
//
//	POST /v1/tools/markdown_to_docx  tool messages as JSON (200, or 422 on a text answer)
//	POST /v1/convert                 the document itself, summary in X-Conversion-Summary
//	GET  /v1/profiles                available style profiles
//	GET  /healthz                    liveness
//	GET  /metrics                    prometheus exposition
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx/internal/metrics"
	"github.com/alnah/go-md2docx/internal/tool"
)

// Defaults.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultMaxBodyBytes = 10 << 20

	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	engine       *gin.Engine
	svc          tool.Service
	tool         *tool.Tool
	logger       *zap.Logger
	metrics      *metrics.Metrics
	gatherer     prometheus.Gatherer
	addr         string
	maxBodyBytes int64
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithMaxBodyBytes limits request bodies. Values <= 0 keep the default.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger for access logs and handler errors.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics counts requests on m and serves g on /metrics.
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		if g != nil {
			s.gatherer = g
		}
	}
}

// New builds the router over svc.
func New(svc tool.Service, opts ...Option) *Server {
	s := &Server{
		svc:          svc,
		logger:       zap.NewNop(),
		gatherer:     prometheus.DefaultGatherer,
		addr:         DefaultAddr,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	toolOpts := []tool.Option{tool.WithLogger(s.logger)}
	if s.metrics != nil {
		toolOpts = append(toolOpts, tool.WithRecorder(s.metrics))
	}
	s.tool = tool.New(svc, toolOpts...)

	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), s.countRequests(), recovery(s.logger))

	v1 := r.Group("/v1")
	{
		v1.POST("/tools/"+tool.Name, s.handleTool)
		v1.POST("/convert", s.handleConvert)
		v1.GET("/profiles", s.handleProfiles)
	}
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	s.engine = r
	return s
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ListenAndServe serves until ctx ends, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
