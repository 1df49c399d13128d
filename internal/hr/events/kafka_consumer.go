package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Consumer struct {
	reader  KafkaReader
	logger  *zap.Logger
	handler func(context.Context, Event) error
	// retry builds the policy for re-running a failed handler. Nil means
	// a single attempt.
	retry func() backoff.BackOff
}

// NewConsumer reads HR events from topic as part of a consumer group.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			Dialer:  kafka.DefaultDialer,
		}),
		logger: logger.Named("kafka_consumer"),
		retry: func() backoff.BackOff {
			return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
		},
	}
}

// Run fetches, handles and commits messages until ctx is cancelled.
// Messages that fail to parse are committed and skipped. A failing handler
// is retried; once retries run out the message is logged and not
// committed, but the next commit moves the group offset past it, so it is
// not redelivered.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("Failed to fetch message", zap.Error(err))
			continue
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("Failed to parse event",
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			c.commit(ctx, msg, "")
			continue
		}

		if c.handler != nil {
			if err := c.handle(ctx, event); err != nil {
				c.logger.Error("Failed to handle event",
					zap.Error(err),
					zap.String("event_type", string(event.Type)),
				)
				continue
			}
		}

		c.commit(ctx, msg, event.Type)
	}
}

func (c *Consumer) handle(ctx context.Context, event Event) error {
	if c.retry == nil {
		return c.handler(ctx, event)
	}
	return backoff.RetryNotify(func() error {
		return c.handler(ctx, event)
	}, backoff.WithContext(c.retry(), ctx), func(err error, next time.Duration) {
		c.logger.Warn("Event handler failed, retrying",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.Duration("retry_in", next),
		)
	})
}

// Start runs the consumer in a background goroutine.
func (c *Consumer) Start(ctx context.Context) {
	go c.Run(ctx)
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message, eventType EventType) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message",
			zap.Error(err),
			zap.String("event_type", string(eventType)),
		)
	}
}

func (c *Consumer) RegisterHandler(fn func(context.Context, Event) error) {
	c.handler = fn
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
