package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ogurasousui/shift-scheduler/internal/adapters/grpc/handler"
	"github.com/ogurasousui/shift-scheduler/internal/bootstrap"
	"github.com/ogurasousui/shift-scheduler/internal/platform/config"
	"github.com/ogurasousui/shift-scheduler/internal/platform/logging"
	"github.com/ogurasousui/shift-scheduler/internal/platform/server"
	"github.com/ogurasousui/shift-scheduler/internal/platform/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.EffectivePath(*configPath)); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("storage close failed", zap.Error(err))
		}
	}()

	scheduling := handler.NewSchedulingGrpcHandler(app.Employees, app.Shifts, app.Assignments)
	grpcServer := server.New(cfg.Server.ListenAddr, scheduling, logger.Named("grpc"))

	if err := grpcServer.Run(ctx); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
