package service

import (
	"context"
	"strings"
	"time"

	"support-desk-go/internal/model"
	"support-desk-go/internal/repository"
	"support-desk-go/internal/store"
	"support-desk-go/pkg/alert"
	"support-desk-go/pkg/log"
)

// criticalSecurityKeywords force immediate escalation regardless of priority
// or turn count.
var criticalSecurityKeywords = []string{
	"hacked", "breach", "unauthorized access", "security breach",
	"data breach", "compromised", "stolen", "fraud",
}

const escalationResponse = "Your issue could not be resolved automatically.\n" +
	"It has been escalated to our Support Team.\n" +
	"They will contact you shortly."

// AgentHandler generates the reply for one routed message. Handlers own
// their side effects and always return text, never an error.
type AgentHandler interface {
	Handle(ctx context.Context, customerID, message string) string
}

// ChatService drives one conversation turn end to end: ingress append,
// priority annotation, escalation decision, agent dispatch and session
// bookkeeping.
type ChatService interface {
	HandleMessage(ctx context.Context, customerID, message string) (string, *model.RoutingDecision)
}

type chatService struct {
	sessions    *store.SessionStore
	priority    PriorityService
	router      RouterService
	handlers    map[model.Agent]AgentHandler
	alertSink   alert.Sink
	transcripts repository.TranscriptRepository
	turnLimit   int
}

// NewChatService creates a new ChatService instance. turnLimit is the number
// of user turns after which a conversation escalates to a human.
func NewChatService(
	sessions *store.SessionStore,
	priority PriorityService,
	router RouterService,
	handlers map[model.Agent]AgentHandler,
	alertSink alert.Sink,
	transcripts repository.TranscriptRepository,
	turnLimit int,
) ChatService {
	return &chatService{
		sessions:    sessions,
		priority:    priority,
		router:      router,
		handlers:    handlers,
		alertSink:   alertSink,
		transcripts: transcripts,
		turnLimit:   turnLimit,
	}
}

// HandleMessage processes one incoming message and returns the reply plus
// the routing decision for this turn. Classifier failures never surface:
// the worst case is a degraded deterministic decision.
func (s *chatService) HandleMessage(ctx context.Context, customerID, message string) (string, *model.RoutingDecision) {
	// Snapshot the history before the ingress append so the classifier
	// context does not contain the current message twice.
	history := s.sessions.History(customerID)
	s.sessions.Append(customerID, model.RoleUser, message)

	decision := &model.RoutingDecision{
		Priority: s.priority.Classify(ctx, customerID, message, history),
	}

	turns := s.sessions.TurnCount(customerID)

	var reply string
	if s.shouldEscalate(message, turns) {
		decision.Escalated = true
		reply = s.escalate(ctx, customerID, message)
	} else {
		resolution := s.router.Route(ctx, customerID, message, history)
		if resolution.Degraded {
			log.Warnf("routing degraded: customer=%s reason=%s", customerID, resolution.Reason)
		}
		decision.Agent = resolution.Agent
		reply = s.dispatch(ctx, resolution.Agent, customerID, message)
	}

	s.sessions.Append(customerID, model.RoleAssistant, reply)
	s.archiveTranscript(customerID, message, reply)

	log.Infow("turn completed",
		"customerId", customerID,
		"message", truncate(message, 200),
		"priority", decision.Priority,
		"agent", decision.Agent,
		"escalated", decision.Escalated,
		"userTurns", turns,
	)
	return reply, decision
}

// shouldEscalate applies the escalation rules: critical security issues
// escalate immediately; otherwise the conversation escalates once the agent
// layer has had turnLimit chances to resolve it.
func (s *chatService) shouldEscalate(message string, userTurns int) bool {
	lower := strings.ToLower(message)
	for _, keyword := range criticalSecurityKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return userTurns > s.turnLimit
}

// escalate notifies the human support channel and returns the canned
// acknowledgment. Alert delivery failure is logged, never propagated: an
// unresolved issue must not block the chat response.
func (s *chatService) escalate(ctx context.Context, customerID, message string) string {
	if err := s.alertSink.Notify(ctx, customerID, message, string(model.PriorityHigh)); err != nil {
		log.Errorf("failed to deliver escalation alert: customer=%s message=%q err=%v",
			customerID, truncate(message, 200), err)
	}
	return escalationResponse
}

// dispatch hands the message to the selected agent. An unknown label falls
// through to the FAQ agent.
func (s *chatService) dispatch(ctx context.Context, agent model.Agent, customerID, message string) string {
	handler, ok := s.handlers[agent]
	if !ok {
		handler = s.handlers[model.AgentFAQ]
	}
	return handler.Handle(ctx, customerID, message)
}

// archiveTranscript mirrors the turn into Redis. Uses a background context
// because the archive should succeed even when the request is cancelled;
// failures are logged only.
func (s *chatService) archiveTranscript(customerID, question, answer string) {
	if s.transcripts == nil {
		return
	}
	now := time.Now()
	err := s.transcripts.AppendTurns(context.Background(), customerID,
		model.ChatMessage{Role: model.RoleUser, Content: question, Timestamp: now},
		model.ChatMessage{Role: model.RoleAssistant, Content: answer, Timestamp: now},
	)
	if err != nil {
		log.Errorf("failed to archive transcript: customer=%s err=%v", customerID, err)
	}
}
