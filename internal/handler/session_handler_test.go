package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-desk-go/internal/model"
	"support-desk-go/internal/store"
)

type stubTranscripts struct {
	turns map[string][]model.ChatMessage
	err   error
}

func (s *stubTranscripts) GetTranscript(ctx context.Context, customerID string) ([]model.ChatMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.turns[customerID], nil
}

func (s *stubTranscripts) AppendTurns(ctx context.Context, customerID string, messages ...model.ChatMessage) error {
	return s.err
}

func newSessionRouter(sessions *store.SessionStore, transcripts *stubTranscripts) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSessionHandler(sessions, transcripts)
	r.GET("/api/v1/chat/history", h.History)
	r.GET("/api/v1/sessions/stats", h.Stats)
	return r
}

func getJSON(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHistoryPrefersArchive(t *testing.T) {
	sessions := store.NewSessionStore(24*time.Hour, 10)
	transcripts := &stubTranscripts{turns: map[string][]model.ChatMessage{
		"cust-1": {{Role: model.RoleUser, Content: "archived question"}},
	}}
	r := newSessionRouter(sessions, transcripts)

	w := getJSON(t, r, "/api/v1/chat/history?customer_id=cust-1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "archived question")
}

func TestHistoryFallsBackToSessionOnArchiveFailure(t *testing.T) {
	sessions := store.NewSessionStore(24*time.Hour, 10)
	sessions.Append("cust-1", model.RoleUser, "in-memory question")
	r := newSessionRouter(sessions, &stubTranscripts{err: errors.New("redis down")})

	w := getJSON(t, r, "/api/v1/chat/history?customer_id=cust-1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "in-memory question")
}

func TestHistoryRequiresCustomerID(t *testing.T) {
	r := newSessionRouter(store.NewSessionStore(24*time.Hour, 10), &stubTranscripts{})

	w := getJSON(t, r, "/api/v1/chat/history")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsReportsSessionCounts(t *testing.T) {
	sessions := store.NewSessionStore(24*time.Hour, 10)
	sessions.Append("cust-1", model.RoleUser, "hello")
	sessions.Append("cust-2", model.RoleUser, "hello")
	r := newSessionRouter(sessions, &stubTranscripts{})

	w := getJSON(t, r, "/api/v1/sessions/stats")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data store.SessionStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.ActiveSessions)
	assert.Equal(t, 2, resp.Data.TotalMessages)
}
