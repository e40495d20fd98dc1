package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/alert/dto"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/broker"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer broker.MessageWriter
}

func NewKafkaPublisher(writer broker.MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish keys messages by material so one material's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event *dto.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode alert event: %w", err)
	}
	return p.writer.WriteMessage(ctx, kafka.Message{
		Key:   []byte(event.MaterialID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event.Event)},
		},
	})
}
