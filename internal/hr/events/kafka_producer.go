package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

const queueSize = 1000

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
	done      chan struct{}
}

// NewProducer ensures the topic exists and starts the background send loop.
func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}

	p := newProducer(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{},
		Topic:    topic,
	}, logger)

	go p.eventLoop()
	return p, nil
}

func newProducer(writer KafkaWriter, logger *zap.Logger) *Producer {
	return &Producer{
		writer:    writer,
		events:    make(chan Event, queueSize),
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Produce queues the event without blocking. Events are dropped when the
// queue is full.
func (p *Producer) Produce(event Event) {
	select {
	case p.events <- event:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key),
		)
	}
}

func (p *Producer) eventLoop() {
	defer close(p.done)
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			p.drain()
			return
		}
	}
}

// drain flushes events queued before Close was called.
func (p *Producer) drain() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		default:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("key", event.Key),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
			zap.String("key", event.Key),
		)
	}
}

func (p *Producer) Close() {
	close(p.closeChan)
	<-p.done
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}

// NopProducer discards events. It is used when Kafka is disabled.
type NopProducer struct{}

func (NopProducer) Produce(Event) {}
