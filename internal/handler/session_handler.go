package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"support-desk-go/internal/repository"
	"support-desk-go/internal/store"
	"support-desk-go/pkg/log"
)

// SessionHandler serves session statistics and conversation history.
type SessionHandler struct {
	sessions    *store.SessionStore
	transcripts repository.TranscriptRepository
}

// NewSessionHandler creates a new SessionHandler instance.
func NewSessionHandler(sessions *store.SessionStore, transcripts repository.TranscriptRepository) *SessionHandler {
	return &SessionHandler{
		sessions:    sessions,
		transcripts: transcripts,
	}
}

// Stats reports aggregate session counts.
func (h *SessionHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    h.sessions.Stats(),
	})
}

// History returns the customer's conversation history. The durable Redis
// archive is preferred; the in-memory session is the fallback when the
// archive is empty or unavailable.
func (h *SessionHandler) History(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "customer_id is required",
		})
		return
	}

	history, err := h.transcripts.GetTranscript(c.Request.Context(), customerID)
	if err != nil {
		log.Warnf("History: transcript lookup failed for customer %s: %v", customerID, err)
		history = nil
	}
	if len(history) == 0 {
		history = h.sessions.History(customerID)
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    history,
	})
}
