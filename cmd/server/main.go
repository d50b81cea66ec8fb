package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/employee-records/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-records/internal/adapters/rest"
	"github.com/ogurasousui/employee-records/internal/adapters/salarysource/dir"
	"github.com/ogurasousui/employee-records/internal/adapters/salarysource/s3"
	"github.com/ogurasousui/employee-records/internal/core/employee"
	"github.com/ogurasousui/employee-records/internal/platform/config"
	pg "github.com/ogurasousui/employee-records/internal/platform/db/postgres"
	"github.com/ogurasousui/employee-records/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env はローカル開発向けの補助。存在しなくてもよい。
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database pool")
	}
	defer dbPool.Close()

	samples, err := newSampleReader(ctx, cfg.Salary)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize salary source reader")
	}

	employeeRepo := postgres.NewEmployeeRepository(dbPool, log)
	employeeSvc := employee.NewService(employeeRepo, samples, cfg.Salary.Sources, log)
	router := rest.NewRouter(employeeSvc, log)
	httpServer := server.New(cfg.Server.ListenAddr, router, log)

	log.Info().Str("addr", cfg.Server.ListenAddr).Msg("HTTP server listening")

	if err := httpServer.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func newSampleReader(ctx context.Context, cfg config.SalaryConfig) (employee.SampleReader, error) {
	switch cfg.Provider {
	case config.ProviderDir:
		return dir.NewReader(cfg.Dir), nil
	case config.ProviderS3:
		return s3.NewReader(ctx, cfg.Bucket, cfg.Prefix, cfg.Region)
	default:
		return nil, fmt.Errorf("unsupported salary provider %q", cfg.Provider)
	}
}
