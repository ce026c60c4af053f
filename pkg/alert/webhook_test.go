package alert

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-desk-go/internal/config"
)

func TestWebhookSinkNotify(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := NewWebhookSink(config.AlertConfig{WebhookURL: srv.URL})
	err := sink.Notify(context.Background(), "cust-1", "my account was hacked", "HIGH")

	require.NoError(t, err)
	assert.Equal(t, "MessageCard", received["@type"])
	assert.Equal(t, "Escalation Alert", received["title"])

	sections := received["sections"].([]interface{})
	require.Len(t, sections, 1)
	section := sections[0].(map[string]interface{})
	assert.Contains(t, section["text"], "my account was hacked")

	facts := section["facts"].([]interface{})
	first := facts[0].(map[string]interface{})
	assert.Equal(t, "Customer ID", first["name"])
	assert.Equal(t, "cust-1", first["value"])
}

func TestWebhookSinkMissingURL(t *testing.T) {
	sink := NewWebhookSink(config.AlertConfig{})
	err := sink.Notify(context.Background(), "cust-1", "message", "HIGH")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestWebhookSinkServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewWebhookSink(config.AlertConfig{WebhookURL: srv.URL})
	err := sink.Notify(context.Background(), "cust-1", "message", "HIGH")
	assert.Error(t, err)
}

type stubSink struct {
	err   error
	calls int
}

func (s *stubSink) Notify(ctx context.Context, customerID, message, severity string) error {
	s.calls++
	return s.err
}

func TestMultiSinkNotifiesAll(t *testing.T) {
	a := &stubSink{}
	b := &stubSink{err: assert.AnError}
	c := &stubSink{}
	multi := MultiSink{a, b, c}

	err := multi.Notify(context.Background(), "cust-1", "message", "HIGH")

	// One failing sink does not stop the others.
	assert.Error(t, err)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, 1, c.calls)
}
