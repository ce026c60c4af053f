package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTechnicalHandleSubscriptionCancellation(t *testing.T) {
	repo := &fakeIssueRepo{}
	svc := NewTechnicalService(repo)

	reply := svc.Handle(context.Background(), "cust-1", "I want to cancel my subscription")

	assert.Equal(t, technicalCancellationResponse, reply)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "billing_action", repo.created[0].IssueType)
	assert.Equal(t, "open", repo.created[0].Status)
	assert.Equal(t, "cust-1", repo.created[0].CustomerID)
}

func TestTechnicalHandleRefundRequest(t *testing.T) {
	repo := &fakeIssueRepo{}
	svc := NewTechnicalService(repo)

	reply := svc.Handle(context.Background(), "cust-1", "I need a refund for my last order")

	assert.Equal(t, technicalRefundResponse, reply)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "billing_action", repo.created[0].IssueType)
}

func TestTechnicalHandleLoginError(t *testing.T) {
	repo := &fakeIssueRepo{}
	svc := NewTechnicalService(repo)

	reply := svc.Handle(context.Background(), "cust-1", "I cannot login to my dashboard")

	assert.Equal(t, technicalLoginErrorResponse, reply)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "login_error", repo.created[0].IssueType)
}

func TestTechnicalHandleGenericFailure(t *testing.T) {
	repo := &fakeIssueRepo{}
	svc := NewTechnicalService(repo)

	reply := svc.Handle(context.Background(), "cust-1", "the page is really slow and keeps freezing, this is a problem")

	require.Len(t, repo.created, 1)
	assert.Equal(t, "performance", repo.created[0].IssueType)
	assert.Contains(t, reply, "Performance")
	assert.Contains(t, reply, "logged successfully")
}

func TestTechnicalHandleGeneralQuestionGuardrail(t *testing.T) {
	repo := &fakeIssueRepo{}
	svc := NewTechnicalService(repo)

	reply := svc.Handle(context.Background(), "cust-1", "what plans do you offer")

	assert.Equal(t, technicalGeneralQuestionResponse, reply)
	assert.Empty(t, repo.created)
}

func TestTechnicalHandlePersistenceFailureStillReplies(t *testing.T) {
	repo := &fakeIssueRepo{err: errors.New("db down")}
	svc := NewTechnicalService(repo)

	reply := svc.Handle(context.Background(), "cust-1", "I cannot login to my dashboard")
	assert.Equal(t, technicalLoginErrorResponse, reply)
}

func TestClassifyIssueTypeOrder(t *testing.T) {
	assert.Equal(t, "login_error", classifyIssueType("my password is rejected at sign in"))
	assert.Equal(t, "upload_error", classifyIssueType("file upload keeps failing"))
	assert.Equal(t, "api_error", classifyIssueType("the api times out on every request"))
	assert.Equal(t, "general_technical_issue", classifyIssueType("something strange happened"))
	// Earlier rule groups win ties.
	assert.Equal(t, "login_error", classifyIssueType("login fails and the api errors"))
}

func TestIssueTypeTitle(t *testing.T) {
	assert.Equal(t, "Login Error", issueTypeTitle("login_error"))
	assert.Equal(t, "General Technical Issue", issueTypeTitle("general_technical_issue"))
}
