package main

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/httpserver"
	"github.com/alnah/go-md2docx/internal/mcpserver"
	"github.com/alnah/go-md2docx/internal/metrics"
)

// runServe handles the serve command. Logs always go to stderr: in stdio
// mode stdout carries the protocol.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadSettings(flags.common.config, env)
	if err != nil {
		return err
	}
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts, err := converterOptions(cfg, logger, m)
	if err != nil {
		return err
	}
	pool := md2docx.NewConverterPool(md2docx.ResolvePoolSize(cfg.Convert.Workers), opts...)
	defer func() { _ = pool.Close() }()

	transport := strings.ToLower(cfg.Server.Transport)
	logger.Info("starting server",
		zap.String("transport", transport),
		zap.String("version", Version),
		zap.Int("workers", pool.Size()),
	)

	switch transport {
	case config.TransportHTTP:
		gin.SetMode(gin.ReleaseMode)
		srv := httpserver.New(pool,
			httpserver.WithAddr(cfg.Server.Addr),
			httpserver.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
			httpserver.WithLogger(logger),
			httpserver.WithMetrics(m, reg),
		)
		return srv.ListenAndServe(ctx)
	default:
		srv := mcpserver.New(pool,
			mcpserver.WithVersion(Version),
			mcpserver.WithLogger(logger),
			mcpserver.WithRecorder(m),
		)
		return srv.Serve(ctx)
	}
}

// mergeServeFlags merges serve flags into config. CLI values override config values.
func mergeServeFlags(flags *serveFlags, cfg *config.Config) {
	if flags.transport != "" {
		cfg.Server.Transport = flags.transport
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.maxBodyBytes != 0 {
		cfg.Server.MaxBodyBytes = flags.maxBodyBytes
	}
	if flags.workers > 0 {
		cfg.Convert.Workers = flags.workers
	}
	if flags.timeout != "" {
		cfg.Convert.Timeout = flags.timeout
	}
	if flags.stylesDir != "" {
		cfg.Assets.BasePath = flags.stylesDir
	}
	mergeLogFlags(cfg, flags.log, flags.common)
}
