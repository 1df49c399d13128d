package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/hr/internal/hr/config"
	"github.com/gartstein/hr/internal/hr/controller"
	"github.com/gartstein/hr/internal/hr/db"
	"github.com/gartstein/hr/internal/hr/db/memory"
	"github.com/gartstein/hr/internal/hr/events"
	"github.com/gartstein/hr/internal/hr/handlers"
	"github.com/gartstein/hr/internal/hr/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// store is the method set both storage backends provide.
type store interface {
	controller.EmployeeRepository
	controller.CompanyRepository
	Close() error
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := initLogger(cfg)
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	repo, err := initStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("failed to close storage", zap.Error(err))
		}
	}()

	var producer controller.EventProducer = events.NopProducer{}
	if cfg.KafkaEnabled {
		kafkaProducer, err := initProducer(cfg, logger)
		if err != nil {
			logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
		}
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	employeeSvc := controller.NewEmployeeService(repo, producer, logger)
	companySvc := controller.NewCompanyService(repo, producer, logger)

	interceptor := middleware.NewInterceptor(logger)
	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger, grpc.UnaryInterceptor(interceptor.Unary()))
	if err := server.RegisterHTTPHandlers(
		handlers.NewEmployeeHandler(employeeSvc, logger),
		handlers.NewCompanyHandler(companySvc, logger),
	); err != nil {
		logger.Fatal("Failed to register HTTP handlers", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start servers", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger, or a development one
// when LOG_DEVELOPMENT is set.
func initLogger(cfg *config.Config) *zap.Logger {
	if cfg.LogDevelopment {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

// initStore opens the configured backend, retrying database connections
// with exponential backoff while the database comes up.
func initStore(cfg *config.Config, logger *zap.Logger) (store, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Info("Using in-memory storage")
		return memory.NewStore(), nil
	}

	dbConf := &db.Config{
		Driver:     cfg.Storage,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		DBName:     cfg.DBName,
		SSLMode:    cfg.DBSSLMode,
		SQLitePath: cfg.SQLitePath,
	}

	var repo *db.Repository
	err := backoff.RetryNotify(func() error {
		var err error
		repo, err = db.NewRepository(dbConf, logger)
		return err
	}, backoff.NewExponentialBackOff(), func(err error, next time.Duration) {
		logger.Warn("Database not ready, retrying", zap.Error(err), zap.Duration("retry_in", next))
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func initProducer(cfg *config.Config, logger *zap.Logger) (*events.Producer, error) {
	var producer *events.Producer
	err := backoff.Retry(func() error {
		var err error
		producer, err = events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 10))
	return producer, err
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down servers.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	server.Stop()
	logger.Info("Servers stopped properly")
}
