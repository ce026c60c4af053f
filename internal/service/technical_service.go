package service

import (
	"context"
	"fmt"
	"strings"

	"support-desk-go/internal/model"
	"support-desk-go/internal/repository"
	"support-desk-go/pkg/log"
)

// issueTypeRules classify a ticket by the first matching keyword group.
// Order matters: earlier groups win.
var issueTypeRules = []struct {
	issueType string
	keywords  []string
}{
	{"login_error", []string{"login", "sign in", "password", "credentials"}},
	{"upload_error", []string{"upload", "file", "attachment"}},
	{"performance", []string{"slow", "lag", "performance", "freeze"}},
	{"api_error", []string{"api", "timeout", "request", "endpoint"}},
	{"sync_error", []string{"sync", "synchronization"}},
	{"display_error", []string{"ui", "display", "screen", "layout"}},
	{"notification_error", []string{"notification", "email", "alert"}},
	{"integration_error", []string{"integration", "slack", "webhook"}},
	{"storage_error", []string{"storage", "file access", "disk"}},
	{"search_error", []string{"search", "find", "results"}},
	{"billing_action", []string{"cancel", "cancellation", "refund", "dispute", "subscription"}},
}

const technicalGeneralQuestionResponse = "This looks like a general question.\n\n" +
	"Please ask how-to or informational questions normally, and I'll help you right away."

const technicalCancellationResponse = "Your subscription cancellation request has been received and logged.\n\n" +
	"Issue Type: Subscription Cancellation\n" +
	"Status: Processing\n\n" +
	"Our billing team will process your cancellation request and contact you shortly " +
	"to confirm the cancellation and discuss any final steps."

const technicalRefundResponse = "Your refund request has been received and logged.\n\n" +
	"Issue Type: Refund Request\n" +
	"Status: Under Review\n\n" +
	"Our billing team will review your refund request and contact you within 2-3 business days " +
	"with an update on the status of your refund."

const technicalLoginErrorResponse = "I understand you're having trouble logging in. I've logged this issue for our technical team.\n\n" +
	"Issue Type: Login/Authentication Error\n" +
	"Status: Open - Under Investigation\n\n" +
	"Quick troubleshooting steps:\n" +
	"- Make sure you're using the correct email and password\n" +
	"- Try clearing your browser cache and cookies\n" +
	"- Check if Caps Lock is enabled\n" +
	"- Try using a different browser or incognito mode\n\n" +
	"Our technical team is investigating this issue and will contact you shortly with a resolution. " +
	"If this is urgent, please reply and I'll escalate it immediately."

// technicalService logs technical issues and billing action requests as
// tickets and replies with the ticket status.
type technicalService struct {
	issueRepo repository.TechnicalIssueRepository
}

// NewTechnicalService creates the technical agent handler.
func NewTechnicalService(issueRepo repository.TechnicalIssueRepository) AgentHandler {
	return &technicalService{issueRepo: issueRepo}
}

// Handle processes billing actions first, then applies the failure-intent
// guardrail, then opens a ticket for the classified issue type.
func (s *technicalService) Handle(ctx context.Context, customerID, message string) string {
	lower := strings.ToLower(message)

	if containsAny(lower, billingActionPhrases) {
		issueType := classifyIssueType(lower)
		if strings.Contains(lower, "cancel") || strings.Contains(lower, "subscription") {
			issueType = "billing_action"
		}
		s.createIssue(customerID, issueType, message)

		if strings.Contains(lower, "cancel") && strings.Contains(lower, "subscription") {
			return technicalCancellationResponse
		}
		if strings.Contains(lower, "refund") {
			return technicalRefundResponse
		}
		return fmt.Sprintf("Your billing request has been received and logged.\n\n"+
			"Issue Type: %s\nStatus: Processing\n\n"+
			"Our billing team will review your request and contact you shortly.", issueType)
	}

	// Guardrail: informational questions belong to the FAQ agent, not a
	// ticket queue.
	if !containsAny(lower, failurePhrases) {
		return technicalGeneralQuestionResponse
	}

	issueType := classifyIssueType(lower)
	s.createIssue(customerID, issueType, message)

	if issueType == "login_error" {
		return technicalLoginErrorResponse
	}
	return fmt.Sprintf("Your technical issue has been logged successfully.\n\n"+
		"Issue Type: %s\nStatus: Open - Under Investigation\n\n"+
		"Our technical team will investigate and update you soon. "+
		"If this is urgent, please reply and I'll escalate it immediately.", issueTypeTitle(issueType))
}

// createIssue persists the ticket. Persistence failure is logged but the
// reply still goes out.
func (s *technicalService) createIssue(customerID, issueType, description string) {
	issue := &model.TechnicalIssue{
		CustomerID:  customerID,
		IssueType:   issueType,
		Description: description,
		Status:      "open",
	}
	if err := s.issueRepo.Create(issue); err != nil {
		log.Errorf("failed to create technical issue: customer=%s type=%s err=%v", customerID, issueType, err)
	}
}

// classifyIssueType returns the first matching issue type for the message.
func classifyIssueType(lowerMessage string) string {
	for _, rule := range issueTypeRules {
		if containsAny(lowerMessage, rule.keywords) {
			return rule.issueType
		}
	}
	return "general_technical_issue"
}

// issueTypeTitle renders "login_error" as "Login Error" for replies.
func issueTypeTitle(issueType string) string {
	words := strings.Split(issueType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
