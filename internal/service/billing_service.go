package service

import (
	"context"
	"fmt"
	"strings"

	"support-desk-go/internal/model"
	"support-desk-go/internal/repository"
	"support-desk-go/pkg/email"
	"support-desk-go/pkg/log"
)

const billingNoRecordsResponse = "No billing records found for your account."

const billingUnavailableResponse = "Sorry, I'm having trouble accessing your billing records right now. " +
	"Please try again in a few minutes."

// billingService answers viewing/informational billing queries. The summary
// is also emailed to the customer, best effort.
type billingService struct {
	billingRepo repository.BillingRepository
	accountRepo repository.AccountRepository
	emailSender email.Sender
}

// NewBillingService creates the billing agent handler.
func NewBillingService(billingRepo repository.BillingRepository, accountRepo repository.AccountRepository, emailSender email.Sender) AgentHandler {
	return &billingService{
		billingRepo: billingRepo,
		accountRepo: accountRepo,
		emailSender: emailSender,
	}
}

// Handle returns an itemized billing summary and mails a copy. Email
// delivery failure is logged, never surfaced to the chat.
func (s *billingService) Handle(ctx context.Context, customerID, message string) string {
	items, err := s.billingRepo.FindByCustomerID(customerID)
	if err != nil {
		log.Errorf("failed to fetch billing records: customer=%s err=%v", customerID, err)
		return billingUnavailableResponse
	}
	if len(items) == 0 {
		return billingNoRecordsResponse
	}

	s.emailSummary(customerID, items)

	var lines []string
	lines = append(lines, "Your Billing Details (also sent to your email):\n")
	for _, item := range items {
		lines = append(lines, fmt.Sprintf(
			"- Order ID: %s\n  Product: %s\n  Amount: $%.2f\n  Status: %s",
			item.OrderID, item.ProductName, item.Amount, item.Status,
		))
		if item.Type == model.BillingTypeSubscription && item.NextBillingDate != "" {
			lines = append(lines, fmt.Sprintf("  Next Billing: %s", item.NextBillingDate))
		}
		if item.PaymentMethod != "" {
			lines = append(lines, fmt.Sprintf("  Payment Method: %s", item.PaymentMethod))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// emailSummary looks up the customer's address and sends the billing email.
func (s *billingService) emailSummary(customerID string, items []model.BillingItem) {
	to, err := s.accountRepo.GetEmail(customerID)
	if err != nil {
		log.Warnf("failed to look up customer email: customer=%s err=%v", customerID, err)
		return
	}
	if err := s.emailSender.Send(to, "Your Billing Details", formatBillingEmail(items)); err != nil {
		log.Warnf("failed to send billing email: customer=%s err=%v", customerID, err)
	}
}

// formatBillingEmail renders the plain-text email body.
func formatBillingEmail(items []model.BillingItem) string {
	var b strings.Builder
	b.WriteString("Hello,\n\nHere are your billing details:\n\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf(
			"Order ID: %s\nProduct: %s\nAmount: $%.2f\nStatus: %s\n-----------------------------\n",
			item.OrderID, item.ProductName, item.Amount, item.Status,
		))
	}
	b.WriteString("\nThank you for choosing us.")
	return b.String()
}
