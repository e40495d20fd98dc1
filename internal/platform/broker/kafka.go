package broker

import (
	"context"
	"fmt"
	"time"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

type Config struct {
	Brokers  []string
	Topic    string
	GroupID  string
	ClientID string
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (*kafka.Message, error)
	Close() error
}

type MessageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaConsumer reads from one topic as part of a consumer group. Trace context
// carried in message headers is picked up by the otel reader.
type KafkaConsumer struct {
	reader MessageReader
}

func NewConsumer(cfg *Config) (*KafkaConsumer, error) {
	base := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})

	reader, err := otelkafka.NewReader(base)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka reader: %w", err)
	}
	return &KafkaConsumer{reader: reader}, nil
}

func (c *KafkaConsumer) ReadMessage(ctx context.Context) (*kafka.Message, error) {
	return c.reader.ReadMessage(ctx)
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

type KafkaProducer struct {
	writer MessageWriter
}

func NewProducer(cfg *Config, tp trace.TracerProvider) (*KafkaProducer, error) {
	base := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	writer, err := otelkafka.NewWriter(base,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes([]attribute.KeyValue{
			semconv.MessagingDestinationNameKey.String(cfg.Topic),
			attribute.String("messaging.kafka.client_id", cfg.ClientID),
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka writer: %w", err)
	}
	return &KafkaProducer{writer: writer}, nil
}

func (p *KafkaProducer) WriteMessage(ctx context.Context, msg kafka.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.writer.WriteMessage(ctx, msg)
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
