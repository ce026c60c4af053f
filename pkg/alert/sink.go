// Package alert delivers escalation alerts to the human support channel.
// Delivery is best-effort: callers log failures and carry on with the reply.
package alert

import (
	"context"
	"errors"
)

// Sink delivers one escalation alert.
type Sink interface {
	Notify(ctx context.Context, customerID, message, severity string) error
}

// MultiSink fans an alert out to every configured sink. Each sink is tried
// even when an earlier one fails; the combined error is returned.
type MultiSink []Sink

func (m MultiSink) Notify(ctx context.Context, customerID, message, severity string) error {
	var errs []error
	for _, s := range m {
		if err := s.Notify(ctx, customerID, message, severity); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
