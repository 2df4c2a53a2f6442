// Package main 改写服务 HTTP 入口
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resume-ai-api/internal/application/usage"
	"resume-ai-api/internal/config"
	einoobs "resume-ai-api/internal/observability/eino"
	"resume-ai-api/internal/wire"
	"resume-ai-api/pkg/logger"
	"resume-ai-api/pkg/tracer"
)

// Version 版本信息，构建时注入
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	configDir string
	useMock   bool
)

var rootCmd = &cobra.Command{
	Use:           "resume-api",
	Short:         "Resume AI HTTP service",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

func init() {
	rootCmd.Flags().StringVar(&configDir, "config-dir", config.DefaultDir, "配置文件目录")
	rootCmd.Flags().BoolVar(&useMock, "mock", false, "使用本地 mock 驱动，不调用外部模型")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "resume-api: %v\n", err)
		os.Exit(1)
	}
}

func serve(_ *cobra.Command, _ []string) error {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	cfg, err := config.LoadFrom(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if useMock {
		cfg.UseMockDriver()
	}

	logger.InitWithWriter(
		logger.OutputWriter(cfg.Observability.Logging.Output),
		cfg.Observability.Logging.Level,
		cfg.Observability.Logging.Format,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return run(ctx, cfg, useMock)
}

func run(ctx context.Context, cfg *config.Config, mock bool) error {
	log := logger.FromContext(ctx)
	log.Info("starting resume-api",
		"version", Version,
		"build_time", BuildTime,
		"env", cfg.App.Env,
		"mock", mock,
	)

	// 初始化追踪
	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Endpoint:       cfg.Observability.Tracing.Endpoint,
		SampleRate:     cfg.Observability.Tracing.SampleRate,
		Enabled:        cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			log.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 初始化 Eino 全局 callbacks（指标/追踪/用量）
	einoobs.Init(usage.NewRecorder())

	app, cleanupApp, err := wire.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer cleanupApp()

	addr := fmt.Sprintf("%s:%d", cfg.Server.HTTP.Host, cfg.Server.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.Engine(),
		ReadTimeout:  cfg.Server.HTTP.ReadTimeout,
		WriteTimeout: cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:  cfg.Server.HTTP.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		timeout := cfg.Server.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server exited")
	return nil
}
