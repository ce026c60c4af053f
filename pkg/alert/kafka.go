package alert

import (
	"context"
	"time"

	"support-desk-go/pkg/kafka"
)

// KafkaSink publishes escalation events to the alert topic for downstream
// consumers (ticketing, analytics).
type KafkaSink struct{}

// NewKafkaSink creates a Kafka-backed alert sink. The shared producer must
// be initialized first.
func NewKafkaSink() *KafkaSink {
	return &KafkaSink{}
}

func (s *KafkaSink) Notify(ctx context.Context, customerID, message, severity string) error {
	return kafka.ProduceEscalationEvent(ctx, kafka.EscalationEvent{
		CustomerID: customerID,
		Message:    message,
		Severity:   severity,
		Timestamp:  time.Now().UTC(),
	})
}
