// Package kafka publishes escalation events for downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"support-desk-go/internal/config"
	"support-desk-go/pkg/log"
)

// EscalationEvent is the wire form of an escalation published to the alert
// topic.
type EscalationEvent struct {
	CustomerID string    `json:"customer_id"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity"`
	Timestamp  time.Time `json:"timestamp"`
}

var producer *kafka.Writer

// InitProducer initializes the Kafka producer for the alert topic.
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka producer initialized successfully")
}

// ProduceEscalationEvent publishes one escalation event, keyed by customer so
// per-customer ordering is preserved.
func ProduceEscalationEvent(ctx context.Context, event EscalationEvent) error {
	if producer == nil {
		return errors.New("kafka producer not initialized")
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return producer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(event.CustomerID),
			Value: eventBytes,
		},
	)
}
