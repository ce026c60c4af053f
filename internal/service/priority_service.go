// Package service contains the routing core and the agent handler logic.
package service

import (
	"context"
	"strings"

	"support-desk-go/internal/model"
	"support-desk-go/pkg/llm"
	"support-desk-go/pkg/log"
	"support-desk-go/pkg/retry"
)

const prioritySystemPrompt = `You are a customer support triage classifier.
Classify the severity of the user's latest message as HIGH or LOW.

HIGH: service outages, broken or failing functionality, data loss, security
concerns, failing payments, anything that blocks the customer right now.
LOW: greetings, general questions, how-to requests, account detail updates,
routine billing queries.

Respond with exactly one word: HIGH or LOW.`

// urgentKeywords is the deterministic severity fallback used when the
// classifier is unavailable.
var urgentKeywords = []string{
	"outage", "down", "not working", "broken", "failed", "failure",
	"data loss", "lost my data", "compromised", "hacked",
	"payment not working", "payment failed", "can't pay", "cannot pay",
}

// PriorityService annotates incoming messages with an urgency label. The
// label is informational: it is logged and returned to the caller but does
// not gate routing or escalation.
type PriorityService interface {
	Classify(ctx context.Context, customerID, message string, history []model.ChatMessage) model.Priority
}

type priorityService struct {
	llmClient   llm.Client
	retryPolicy retry.Policy
}

// NewPriorityService creates a new PriorityService instance.
func NewPriorityService(llmClient llm.Client, retryPolicy retry.Policy) PriorityService {
	return &priorityService{
		llmClient:   llmClient,
		retryPolicy: retryPolicy,
	}
}

// Classify asks the external classifier for a severity label and falls back
// to keyword rules once the retry budget is exhausted. It never fails: an
// unparseable response is LOW, favoring under- over over-escalation.
func (s *priorityService) Classify(ctx context.Context, customerID, message string, history []model.ChatMessage) model.Priority {
	messages := composeClassifierMessages(prioritySystemPrompt, history, message)

	temperature := 0.0
	maxTokens := 8
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
		log.Warnf("priority classifier unavailable, using keyword fallback: customer=%s err=%v", customerID, err)
		return fallbackPriority(message)
	}

	return parsePriority(response)
}

// parsePriority maps the classifier's free-form response to a label. HIGH is
// checked first so "HIGH (not LOW)" style responses resolve to HIGH.
func parsePriority(response string) model.Priority {
	upper := strings.ToUpper(response)
	if strings.Contains(upper, "HIGH") {
		return model.PriorityHigh
	}
	return model.PriorityLow
}

// fallbackPriority applies the keyword severity rules.
func fallbackPriority(message string) model.Priority {
	lower := strings.ToLower(message)
	for _, keyword := range urgentKeywords {
		if strings.Contains(lower, keyword) {
			return model.PriorityHigh
		}
	}
	return model.PriorityLow
}

// composeClassifierMessages builds the role-tagged request: system rubric,
// prior history, then the current user message.
func composeClassifierMessages(systemPrompt string, history []model.ChatMessage, userInput string) []llm.Message {
	msgs := make([]llm.Message, 0, len(history)+2)
	msgs = append(msgs, llm.Message{Role: "system", Content: systemPrompt})
	for _, m := range history {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: "user", Content: userInput})
	return msgs
}
