package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"support-desk-go/internal/model"
)

func TestBillingHandleItemizedSummary(t *testing.T) {
	billingRepo := &fakeBillingRepo{items: []model.BillingItem{
		{OrderID: "ORD-1001", ProductName: "Pro Plan", Amount: 29.99, Status: "PAID", Type: model.BillingTypeOrder},
		{OrderID: "SUB-7", ProductName: "Storage Subscription", Amount: 9.99, Status: "ACTIVE",
			Type: model.BillingTypeSubscription, NextBillingDate: "2026-10-01", PaymentMethod: "visa"},
	}}
	accountRepo := &fakeAccountRepo{email: "alex@example.com"}
	sender := &fakeEmailSender{}
	svc := NewBillingService(billingRepo, accountRepo, sender)

	reply := svc.Handle(context.Background(), "cust-1", "show me my billing")

	assert.Contains(t, reply, "ORD-1001")
	assert.Contains(t, reply, "Pro Plan")
	assert.Contains(t, reply, "$29.99")
	assert.Contains(t, reply, "Next Billing: 2026-10-01")
	assert.Contains(t, reply, "Payment Method: visa")

	assert.Equal(t, 1, sender.sent)
	assert.Equal(t, "alex@example.com", sender.to)
	assert.Equal(t, "Your Billing Details", sender.subject)
	assert.Contains(t, sender.body, "ORD-1001")
}

func TestBillingHandleNoRecords(t *testing.T) {
	svc := NewBillingService(&fakeBillingRepo{}, &fakeAccountRepo{}, &fakeEmailSender{})

	reply := svc.Handle(context.Background(), "cust-1", "show me my billing")
	assert.Equal(t, billingNoRecordsResponse, reply)
}

func TestBillingHandleRepositoryFailure(t *testing.T) {
	svc := NewBillingService(&fakeBillingRepo{err: errors.New("db down")}, &fakeAccountRepo{}, &fakeEmailSender{})

	reply := svc.Handle(context.Background(), "cust-1", "show me my billing")
	assert.Equal(t, billingUnavailableResponse, reply)
}

func TestBillingHandleEmailFailureIsSilent(t *testing.T) {
	billingRepo := &fakeBillingRepo{items: []model.BillingItem{
		{OrderID: "ORD-1001", ProductName: "Pro Plan", Amount: 29.99, Status: "PAID", Type: model.BillingTypeOrder},
	}}
	sender := &fakeEmailSender{err: errors.New("smtp down")}
	svc := NewBillingService(billingRepo, &fakeAccountRepo{email: "alex@example.com"}, sender)

	reply := svc.Handle(context.Background(), "cust-1", "show me my billing")

	// The chat reply is unaffected by email delivery problems.
	assert.Contains(t, reply, "ORD-1001")
	assert.Equal(t, 1, sender.sent)
}
