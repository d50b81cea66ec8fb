package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"

	"github.com/ogurasousui/employee-records/internal/adapters/lambdaproxy"
	"github.com/ogurasousui/employee-records/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-records/internal/adapters/rest"
	"github.com/ogurasousui/employee-records/internal/adapters/salarysource/dir"
	"github.com/ogurasousui/employee-records/internal/adapters/salarysource/s3"
	"github.com/ogurasousui/employee-records/internal/core/employee"
	"github.com/ogurasousui/employee-records/internal/platform/config"
	pg "github.com/ogurasousui/employee-records/internal/platform/db/postgres"
)

func main() {
	ctx := context.Background()

	log := zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config from environment")
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
	handler := lambdaproxy.New(router)

	lambda.Start(handler.Handle)
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
