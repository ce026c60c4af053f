package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"support-desk-go/internal/model"
)

const (
	transcriptMaxMessages = 20
	transcriptTTL         = 7 * 24 * time.Hour
)

// TranscriptRepository mirrors conversation history into Redis so transcripts
// survive process restarts and in-memory session eviction. The archive is
// best-effort and never consulted by the routing core.
type TranscriptRepository interface {
	GetTranscript(ctx context.Context, customerID string) ([]model.ChatMessage, error)
	AppendTurns(ctx context.Context, customerID string, messages ...model.ChatMessage) error
}

type redisTranscriptRepository struct {
	redisClient *redis.Client
}

// NewTranscriptRepository creates a new TranscriptRepository instance.
func NewTranscriptRepository(redisClient *redis.Client) TranscriptRepository {
	return &redisTranscriptRepository{redisClient: redisClient}
}

func transcriptKey(customerID string) string {
	return fmt.Sprintf("transcript:%s", customerID)
}

// GetTranscript returns the archived history for a customer.
func (r *redisTranscriptRepository) GetTranscript(ctx context.Context, customerID string) ([]model.ChatMessage, error) {
	jsonData, err := r.redisClient.Get(ctx, transcriptKey(customerID)).Result()
	if err == redis.Nil {
		return []model.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}
	var messages []model.ChatMessage
	if err := json.Unmarshal([]byte(jsonData), &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transcript: %w", err)
	}
	return messages, nil
}

// AppendTurns adds turns to the archived history, keeping the most recent
// entries and refreshing the TTL.
func (r *redisTranscriptRepository) AppendTurns(ctx context.Context, customerID string, messages ...model.ChatMessage) error {
	history, err := r.GetTranscript(ctx, customerID)
	if err != nil {
		return err
	}
	history = append(history, messages...)
	if len(history) > transcriptMaxMessages {
		history = history[len(history)-transcriptMaxMessages:]
	}

	jsonData, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	if err := r.redisClient.Set(ctx, transcriptKey(customerID), jsonData, transcriptTTL).Err(); err != nil {
		return fmt.Errorf("failed to set transcript: %w", err)
	}
	return nil
}
