// Package handler contains the HTTP controllers.
package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"support-desk-go/internal/service"
	"support-desk-go/internal/store"
	"support-desk-go/pkg/log"
)

// ChatHandler serves the chat endpoint and the rate-limit status endpoint.
type ChatHandler struct {
	chatService   service.ChatService
	limiter       *store.RateLimiter
	maxMessageLen int
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chatService service.ChatService, limiter *store.RateLimiter, maxMessageLen int) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		limiter:       limiter,
		maxMessageLen: maxMessageLen,
	}
}

// ChatRequest is the request body of the chat endpoint.
type ChatRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// Chat handles one incoming customer message.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Chat: invalid request payload, error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "customer_id and message are required",
		})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "message must not be empty",
		})
		return
	}
	if len(req.Message) > h.maxMessageLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "message is too long",
		})
		return
	}

	if allowed, reason := h.limiter.Check(req.CustomerID); !allowed {
		log.Warnf("Chat: rate limit exceeded for customer %s", req.CustomerID)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"code":    http.StatusTooManyRequests,
			"message": reason,
		})
		return
	}

	reply, decision := h.chatService.HandleMessage(c.Request.Context(), req.CustomerID, req.Message)

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data": gin.H{
			"response":  reply,
			"priority":  decision.Priority,
			"agent":     decision.Agent,
			"escalated": decision.Escalated,
		},
	})
}

// RateLimitStatus reports the remaining request budget for a customer.
func (h *ChatHandler) RateLimitStatus(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "customer_id is required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    h.limiter.Status(customerID),
	})
}
