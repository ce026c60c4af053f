package service

import (
	"context"
	"time"

	"support-desk-go/internal/model"
	"support-desk-go/pkg/llm"
	"support-desk-go/pkg/retry"
)

// fastRetry keeps classifier retries from slowing the tests down.
var fastRetry = retry.Policy{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}

// fakeLLMClient returns a canned response or error and records the request.
type fakeLLMClient struct {
	response string
	err      error
	calls    int
	lastMsgs []llm.Message
}

func (f *fakeLLMClient) ChatCompletion(ctx context.Context, messages []llm.Message, gen *llm.GenerationParams) (string, error) {
	f.calls++
	f.lastMsgs = messages
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeAccountRepo records updates and serves a fixed account.
type fakeAccountRepo struct {
	account *model.Account
	email   string
	err     error

	updatedPhone string
	updatedDOB   string
}

func (f *fakeAccountRepo) FindByCustomerID(customerID string) (*model.Account, error) {
	return f.account, f.err
}

func (f *fakeAccountRepo) UpdatePhone(customerID, phone string) error {
	if f.err != nil {
		return f.err
	}
	f.updatedPhone = phone
	return nil
}

func (f *fakeAccountRepo) UpdateDOB(customerID, dob string) error {
	if f.err != nil {
		return f.err
	}
	f.updatedDOB = dob
	return nil
}

func (f *fakeAccountRepo) GetEmail(customerID string) (string, error) {
	return f.email, f.err
}

type fakeBillingRepo struct {
	items []model.BillingItem
	err   error
}

func (f *fakeBillingRepo) FindByCustomerID(customerID string) ([]model.BillingItem, error) {
	return f.items, f.err
}

type fakeFAQRepo struct {
	faq *model.FAQ
	err error
}

func (f *fakeFAQRepo) FindAllActive() ([]model.FAQ, error) {
	if f.faq == nil {
		return nil, f.err
	}
	return []model.FAQ{*f.faq}, f.err
}

func (f *fakeFAQRepo) FindBestMatch(tokens []string) (*model.FAQ, error) {
	return f.faq, f.err
}

type fakeIssueRepo struct {
	created []*model.TechnicalIssue
	err     error
}

func (f *fakeIssueRepo) Create(issue *model.TechnicalIssue) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, issue)
	return nil
}

type fakeEmailSender struct {
	to      string
	subject string
	body    string
	err     error
	sent    int
}

func (f *fakeEmailSender) Send(to, subject, body string) error {
	f.sent++
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

// fakeSink records escalation notifications.
type fakeSink struct {
	err   error
	calls int

	customerID string
	message    string
	severity   string
}

func (f *fakeSink) Notify(ctx context.Context, customerID, message, severity string) error {
	f.calls++
	f.customerID, f.message, f.severity = customerID, message, severity
	return f.err
}

// fakeTranscripts records archived turns in memory.
type fakeTranscripts struct {
	turns map[string][]model.ChatMessage
	err   error
}

func newFakeTranscripts() *fakeTranscripts {
	return &fakeTranscripts{turns: make(map[string][]model.ChatMessage)}
}

func (f *fakeTranscripts) GetTranscript(ctx context.Context, customerID string) ([]model.ChatMessage, error) {
	return f.turns[customerID], f.err
}

func (f *fakeTranscripts) AppendTurns(ctx context.Context, customerID string, messages ...model.ChatMessage) error {
	if f.err != nil {
		return f.err
	}
	f.turns[customerID] = append(f.turns[customerID], messages...)
	return nil
}

// fakeRouter returns a fixed resolution without consulting a classifier.
type fakeRouter struct {
	resolution Resolution
	calls      int
}

func (f *fakeRouter) Route(ctx context.Context, customerID, message string, history []model.ChatMessage) Resolution {
	f.calls++
	return f.resolution
}

// fakePriority returns a fixed label.
type fakePriority struct {
	priority model.Priority
	calls    int
}

func (f *fakePriority) Classify(ctx context.Context, customerID, message string, history []model.ChatMessage) model.Priority {
	f.calls++
	return f.priority
}

// fakeHandler replies with a fixed string and records the message.
type fakeHandler struct {
	reply   string
	calls   int
	lastMsg string
}

func (f *fakeHandler) Handle(ctx context.Context, customerID, message string) string {
	f.calls++
	f.lastMsg = message
	return f.reply
}
