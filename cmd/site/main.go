package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	sitecontent "github.com/plettj/lichess.ai/content"
	"github.com/plettj/lichess.ai/internal/config"
	"github.com/plettj/lichess.ai/internal/content"
	"github.com/plettj/lichess.ai/internal/handlers"
	"github.com/plettj/lichess.ai/internal/httpserver"
	"github.com/plettj/lichess.ai/internal/observability"
	"github.com/plettj/lichess.ai/internal/view"
	"github.com/plettj/lichess.ai/public"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	var (
		addr     string
		tmplPath string
	)
	flag.StringVar(&addr, "addr", cfg.Server.Addr(), "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", cfg.TemplatesDir, "templates directory (embedded templates when empty)")
	flag.Parse()

	baseLogger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()
	logger := baseLogger.Named("site")

	site, err := content.Load(sitecontent.FS())
	if err != nil {
		var invalid *content.ValidationError
		if errors.As(err, &invalid) {
			logger.Fatal("invalid site content", zap.String("file", invalid.File), zap.Strings("fields", invalid.Fields()))
		}
		logger.Fatal("failed to load site content", zap.Error(err))
	}

	var templates fs.FS = view.TemplatesFS()
	if tmplPath != "" {
		templates = os.DirFS(tmplPath)
	}
	renderer, err := view.NewRenderer(templates, cfg.Dev)
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	static, err := public.StaticFS()
	if err != nil {
		logger.Fatal("failed to open static assets", zap.Error(err))
	}

	server := httpserver.New(httpserver.Config{
		Address:           addr,
		Logger:            baseLogger.Named("http"),
		Pages:             handlers.NewPages(renderer, site, cfg.Site.BaseURL),
		Static:            static,
		RequestTimeout:    cfg.Server.RequestTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverLogger := logger.With(zap.String("addr", server.Addr), zap.Bool("dev", cfg.Dev))
	go func() {
		serverLogger.Info("lichess.ai listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
