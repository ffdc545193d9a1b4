package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/codex-grpc-employee-comp/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/compensation"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/core/reporting"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/platform/config"
	pg "github.com/ogurasousui/codex-grpc-employee-comp/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/platform/logger"
	"github.com/ogurasousui/codex-grpc-employee-comp/internal/platform/server"
	"github.com/rs/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := config.LoadDotEnv(); err != nil {
		bootLog.Fatal().Err(err).Msg("failed to load .env")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLog.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load config")
	}

	log, err := logger.New(cfg.Log, os.Stdout)
	if err != nil {
		bootLog.Fatal().Err(err).Msg("failed to build logger")
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database pool")
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	compensationRepo := postgres.NewCompensationRepository(dbPool)

	employeeSvc := employee.NewService(employeeRepo, txManager, &log)
	reportingSvc := reporting.NewService(employeeSvc, txManager, &log)
	compensationSvc := compensation.NewService(compensationRepo, employeeSvc, nil, txManager, &log)

	grpcHandler := handler.NewEmployeeGrpcHandler(employeeSvc, reportingSvc, compensationSvc)
	grpcServer := server.New(cfg.Server.ListenAddr, grpcHandler, &log)

	if err := grpcServer.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}
