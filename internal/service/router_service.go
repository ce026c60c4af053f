package service

import (
	"context"
	"regexp"
	"strings"

	"support-desk-go/internal/model"
	"support-desk-go/pkg/llm"
	"support-desk-go/pkg/log"
	"support-desk-go/pkg/retry"
)

const routerSystemPrompt = `You are a customer support routing classifier.
Pick exactly one agent for the user's latest message:

FAQ_AGENT - greetings, personal statements, how-to and informational
questions.
TECHNICAL_AGENT - broken or failing functionality, errors, and direct billing
action requests (cancel subscription, refund, dispute). Instructional
questions like "how do I cancel" stay with FAQ_AGENT.
ACCOUNT_AGENT - account field updates where the new value is supplied, such
as a phone number or date of birth.
BILLING_AGENT - viewing or informational billing queries: invoices, charges,
payment history, subscription details.

Respond with only the agent name.`

var (
	phoneTokenRe = regexp.MustCompile(`\+?\d{8,15}`)
	dateTokenRe  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
)

// updateKeywords signal an intent to change stored account data.
var updateKeywords = []string{"update", "change", "modify", "new", "set"}

// billingActionPhrases are requests that need processing, not information.
var billingActionPhrases = []string{
	"cancel subscription", "cancel my", "want to cancel", "need to cancel",
	"cancellation", "refund", "dispute",
	"stop subscription", "end subscription", "terminate subscription",
}

// failurePhrases signal broken or failing functionality.
var failurePhrases = []string{
	"cannot", "can't", "cant", "unable", "not able",
	"failed", "failing", "error", "issue", "problem",
	"broken", "not working", "does not work", "is not working",
}

var billingKeywords = []string{
	"billing", "invoice", "bill", "charge", "payment", "subscription", "receipt",
}

var viewingKeywords = []string{
	"show", "view", "see", "check", "what", "display", "list", "send",
}

// Resolution is the tagged outcome of a routing attempt. Degraded marks
// decisions made by the keyword fallback instead of the classifier; the
// distinction is logged but not exposed beyond the final label.
type Resolution struct {
	Agent    model.Agent
	Degraded bool
	Reason   string
}

// RouterService maps a message to one of the four agent identities. Every
// path terminates in a label; classifier failures degrade to keyword rules
// and are never surfaced.
type RouterService interface {
	Route(ctx context.Context, customerID, message string, history []model.ChatMessage) Resolution
}

type routerService struct {
	llmClient   llm.Client
	retryPolicy retry.Policy
}

// NewRouterService creates a new RouterService instance.
func NewRouterService(llmClient llm.Client, retryPolicy retry.Policy) RouterService {
	return &routerService{
		llmClient:   llmClient,
		retryPolicy: retryPolicy,
	}
}

// Route evaluates the precedence chain: hard override, then classifier, then
// deterministic keyword fallback.
func (s *routerService) Route(ctx context.Context, customerID, message string, history []model.ChatMessage) Resolution {
	// Structured account updates must never be misrouted by a probabilistic
	// classifier, so the override is checked before anything else.
	if hasPhoneToken(message) && hasUpdateIntent(message) {
		return Resolution{Agent: model.AgentAccount, Reason: "hard override: phone update"}
	}

	messages := composeClassifierMessages(routerSystemPrompt, history, message)

	temperature := 0.0
	maxTokens := 16
	gen := &llm.GenerationParams{Temperature: &temperature, MaxTokens: &maxTokens}

	var response string
	err := s.retryPolicy.Do(ctx, func(ctx context.Context) error {
		out, callErr := s.llmClient.ChatCompletion(ctx, messages, gen)
		if callErr != nil {
			return callErr
		}
		response = out
		return nil
	})
	if err != nil {
		log.Warnf("routing classifier unavailable, using keyword fallback: customer=%s err=%v", customerID, err)
		return Resolution{Agent: fallbackRoute(message), Degraded: true, Reason: "classifier unavailable"}
	}

	if agent, ok := parseAgentLabel(response); ok {
		return Resolution{Agent: agent}
	}

	log.Warnf("routing classifier response unparseable, using keyword fallback: customer=%s response=%q", customerID, truncate(response, 120))
	return Resolution{Agent: fallbackRoute(message), Degraded: true, Reason: "unparseable classifier response"}
}

// parseAgentLabel matches the classifier output against the four canonical
// labels, case-insensitively, tolerating surrounding text and partial label
// forms.
func parseAgentLabel(response string) (model.Agent, bool) {
	upper := strings.ToUpper(response)
	switch {
	case strings.Contains(upper, "ACCOUNT"):
		return model.AgentAccount, true
	case strings.Contains(upper, "BILLING"):
		return model.AgentBilling, true
	case strings.Contains(upper, "TECHNICAL"):
		return model.AgentTechnical, true
	case strings.Contains(upper, "FAQ"):
		return model.AgentFAQ, true
	}
	return "", false
}

// fallbackRoute applies the ordered keyword rule set. Billing actions and
// failures go to the technical agent, which owns issue creation for both.
func fallbackRoute(message string) model.Agent {
	lower := strings.ToLower(message)

	if containsAny(lower, billingActionPhrases) {
		return model.AgentTechnical
	}
	if containsAny(lower, failurePhrases) {
		return model.AgentTechnical
	}
	if (hasPhoneToken(message) || dateTokenRe.MatchString(message)) && hasUpdateIntent(message) {
		return model.AgentAccount
	}
	if containsAny(lower, billingKeywords) && containsAny(lower, viewingKeywords) {
		return model.AgentBilling
	}
	return model.AgentFAQ
}

func hasPhoneToken(message string) bool {
	return phoneTokenRe.MatchString(message)
}

func hasUpdateIntent(message string) bool {
	return containsAny(strings.ToLower(message), updateKeywords)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// truncate shortens a string for log output.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
