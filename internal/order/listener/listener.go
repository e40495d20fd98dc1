package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/lifecycle"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/model"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/broker"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderDeleted       = "OrderDeleted"
)

type OrderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID        string            `json:"id"`
	OldStatus model.OrderStatus `json:"old_status,omitempty"`
	NewStatus model.OrderStatus `json:"new_status,omitempty"`
}

// OrderListener feeds order events from Kafka into the lifecycle hooks.
type OrderListener struct {
	consumer broker.MessageReader
	hooks    lifecycle.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewOrderListener(consumer broker.MessageReader, hooks lifecycle.UseCase, log logger.ZapLogger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		hooks:    hooks,
		logger:   log,
		backoff:  time.Second,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("Starting order event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(l.backoff)
				continue
			}
			if err := l.Handle(ctx, *msg); err != nil {
				l.logger.Error("Failed to handle order event",
					zap.ByteString("key", msg.Key),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			}
		}
	}
}

// Handle processes one message. Unknown event types are skipped.
func (l *OrderListener) Handle(ctx context.Context, msg kafka.Message) error {
	carrier := propagation.MapCarrier{}
	for _, h := range msg.Headers {
		carrier[h.Key] = string(h.Value)
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	var event OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to decode order event: %w", err)
	}
	orderID := event.Payload.ID

	switch event.EventType {
	case EventOrderCreated:
		res, err := l.hooks.OnOrderCreated(ctx, orderID)
		if err != nil {
			return err
		}
		if !res.CanFulfill {
			l.logger.Warn(res.Warning, zap.String("order_id", orderID), zap.Int("shortages", len(res.Shortages)))
		}
	case EventOrderStatusChanged:
		if _, err := l.hooks.OnOrderStatusChanged(ctx, orderID, event.Payload.OldStatus, event.Payload.NewStatus); err != nil {
			return err
		}
	case EventOrderDeleted:
		if _, err := l.hooks.OnOrderDeleted(ctx, orderID); err != nil {
			return err
		}
	default:
		l.logger.Debug("Ignoring order event", zap.String("event_type", event.EventType))
	}
	return nil
}
