// Package kafka publishes order status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

var _ ports.EventPublisher = (*OrderPublisher)(nil)

const eventNameHeader = "event-name"

// OrderStatusChangedMessage is the JSON payload of one event. Messages are keyed
// by order id so a consumer sees the changes of one order in order.
type OrderStatusChangedMessage struct {
	EventID       string    `json:"event_id"`
	OrderID       string    `json:"order_id"`
	OrdererID     string    `json:"orderer_id"`
	TransporterID *string   `json:"transporter_id,omitempty"`
	VehicleID     *string   `json:"vehicle_id,omitempty"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to"`
	Price         float64   `json:"price"`
	ProposedPrice *float64  `json:"proposed_price,omitempty"`
	Currency      string    `json:"currency"`
	Note          string    `json:"note,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewProducerConfig returns the sarama settings a SyncProducer needs.
func NewProducerConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	return cfg
}

// NewSyncProducer connects to the brokers.
func NewSyncProducer(brokers []string, clientID string) (sarama.SyncProducer, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig(clientID))
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

// OrderPublisher implements ports.EventPublisher on top of a sarama.SyncProducer.
type OrderPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewOrderPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *OrderPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With(zap.String("component", "order_publisher"), zap.String("topic", topic)),
	}
}

// Publish sends the events as one batch. The context is only checked before
// sending; sarama has no per-call cancellation.
func (p *OrderPublisher) Publish(ctx context.Context, events ...order.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(newOrderStatusChangedMessage(event))
		if err != nil {
			return fmt.Errorf("encode event %s: %w", event.EventID, err)
		}
		messages = append(messages, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.OrderID.String()),
			Value: sarama.ByteEncoder(payload),
			Headers: []sarama.RecordHeader{
				{Key: []byte(eventNameHeader), Value: []byte(event.EventName())},
			},
			Timestamp: event.OccurredAt,
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("publish %d order events: %w", len(messages), err)
	}

	p.logger.Debug("order events published", zap.Int("count", len(messages)))
	return nil
}

// Close releases the underlying producer.
func (p *OrderPublisher) Close() error {
	return p.producer.Close()
}

func newOrderStatusChangedMessage(e order.StatusChanged) OrderStatusChangedMessage {
	msg := OrderStatusChangedMessage{
		EventID:       e.EventID.String(),
		OrderID:       e.OrderID.String(),
		OrdererID:     e.OrdererID.String(),
		To:            e.To.String(),
		Price:         e.Price,
		ProposedPrice: e.ProposedPrice,
		Currency:      e.Currency.String(),
		Note:          e.Note,
		OccurredAt:    e.OccurredAt,
	}
	if e.From != order.Unknown {
		msg.From = e.From.String()
	}
	if e.TransporterID != nil {
		id := e.TransporterID.String()
		msg.TransporterID = &id
	}
	if e.VehicleID != nil {
		id := e.VehicleID.String()
		msg.VehicleID = &id
	}
	return msg
}
