// Package model contains the application's data model definitions.
package model

import "time"

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn of a conversation. Immutable once appended.
type ChatMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Priority is the urgency annotation attached to an incoming message.
type Priority string

const (
	PriorityHigh Priority = "HIGH"
	PriorityLow  Priority = "LOW"
)

// Agent identifies the handler a message is routed to. The values are the
// wire labels the classifier is asked to emit.
type Agent string

const (
	AgentFAQ       Agent = "FAQ_AGENT"
	AgentAccount   Agent = "ACCOUNT_AGENT"
	AgentBilling   Agent = "BILLING_AGENT"
	AgentTechnical Agent = "TECHNICAL_AGENT"
)

// RoutingDecision is the per-message outcome of the routing pipeline.
// It lives only for the duration of the turn.
type RoutingDecision struct {
	Priority  Priority `json:"priority"`
	Escalated bool     `json:"escalated"`
	Agent     Agent    `json:"agent,omitempty"`
}
