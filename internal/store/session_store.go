// Package store holds the process-local conversational state: per-customer
// session history and the request rate limiter.
package store

import (
	"hash/fnv"
	"sync"
	"time"

	"support-desk-go/internal/model"
)

const sessionShardCount = 32

// SessionStats is an aggregate snapshot across all live sessions.
type SessionStats struct {
	ActiveSessions   int       `json:"activeSessions"`
	TotalMessages    int       `json:"totalMessages"`
	OldestLastActive time.Time `json:"oldestLastActive"`
}

type session struct {
	turns      []model.ChatMessage
	userTurns  int
	lastActive time.Time
}

type sessionShard struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// SessionStore maps customers to their conversation history and turn counts.
// State is sharded by customer id; every operation on a shard holds the shard
// lock, so an append can never race with eviction of the same session.
type SessionStore struct {
	shards       [sessionShardCount]*sessionShard
	ttl          time.Duration
	historyLimit int
	now          func() time.Time
}

// NewSessionStore creates a store that exposes at most historyLimit turns per
// customer and lazily evicts sessions idle longer than ttl.
func NewSessionStore(ttl time.Duration, historyLimit int) *SessionStore {
	s := &SessionStore{
		ttl:          ttl,
		historyLimit: historyLimit,
		now:          time.Now,
	}
	for i := range s.shards {
		s.shards[i] = &sessionShard{sessions: make(map[string]*session)}
	}
	return s
}

func (s *SessionStore) shardFor(customerID string) *sessionShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(customerID))
	return s.shards[h.Sum32()%sessionShardCount]
}

// evictExpiredLocked removes sessions idle longer than the TTL. Must be
// called with the shard lock held. Dropping a session also drops its
// user-turn counter, so a customer returning after the TTL starts the
// escalation window fresh.
func (s *SessionStore) evictExpiredLocked(shard *sessionShard, now time.Time) {
	for id, sess := range shard.sessions {
		if now.Sub(sess.lastActive) > s.ttl {
			delete(shard.sessions, id)
		}
	}
}

// Append records one turn for the customer, creating the session on first
// contact. USER turns advance the turn counter; ASSISTANT turns do not.
func (s *SessionStore) Append(customerID, role, content string) {
	shard := s.shardFor(customerID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := s.now()
	s.evictExpiredLocked(shard, now)

	sess, ok := shard.sessions[customerID]
	if !ok {
		sess = &session{}
		shard.sessions[customerID] = sess
	}
	sess.turns = append(sess.turns, model.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	if role == model.RoleUser {
		sess.userTurns++
	}
	sess.lastActive = now
}

// History returns up to historyLimit most recent turns, oldest first, with
// timestamps stripped. Unknown customers get an empty history.
func (s *SessionStore) History(customerID string) []model.ChatMessage {
	shard := s.shardFor(customerID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	s.evictExpiredLocked(shard, s.now())

	sess, ok := shard.sessions[customerID]
	if !ok {
		return []model.ChatMessage{}
	}
	turns := sess.turns
	if len(turns) > s.historyLimit {
		turns = turns[len(turns)-s.historyLimit:]
	}
	out := make([]model.ChatMessage, 0, len(turns))
	for _, t := range turns {
		out = append(out, model.ChatMessage{Role: t.Role, Content: t.Content})
	}
	return out
}

// TurnCount returns how many USER turns the customer has sent in the current
// session. Zero for unknown customers.
func (s *SessionStore) TurnCount(customerID string) int {
	shard := s.shardFor(customerID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	s.evictExpiredLocked(shard, s.now())

	sess, ok := shard.sessions[customerID]
	if !ok {
		return 0
	}
	return sess.userTurns
}

// Stats aggregates session counts across all shards.
func (s *SessionStore) Stats() SessionStats {
	now := s.now()
	var stats SessionStats
	for _, shard := range s.shards {
		shard.mu.Lock()
		s.evictExpiredLocked(shard, now)
		for _, sess := range shard.sessions {
			stats.ActiveSessions++
			stats.TotalMessages += len(sess.turns)
			if stats.OldestLastActive.IsZero() || sess.lastActive.Before(stats.OldestLastActive) {
				stats.OldestLastActive = sess.lastActive
			}
		}
		shard.mu.Unlock()
	}
	return stats
}
