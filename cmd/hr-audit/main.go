// hr-audit consumes HR change events from Kafka and writes them to the
// structured log, giving an audit trail of every employee and company change.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/hr/internal/hr/config"
	"github.com/gartstein/hr/internal/hr/events"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !cfg.KafkaEnabled {
		log.Fatal("Kafka is disabled; nothing to audit")
	}

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, cfg.Topic, logger)
	defer consumer.Close()

	audit := logger.Named("audit")
	consumer.RegisterHandler(func(_ context.Context, event events.Event) error {
		audit.Info("HR record changed",
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key),
			zap.Any("employee", event.Employee),
			zap.Any("company", event.Company),
		)
		return nil
	})

	logger.Info("Audit consumer started",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.Topic),
		zap.String("group", cfg.ConsumerGroup),
	)
	consumer.Run(ctx)
	logger.Info("Audit consumer stopped")
}
