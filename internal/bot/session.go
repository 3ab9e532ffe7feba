package bot

import (
	"sync"
	"time"

	"foodbot/models"
)

// State is the position of an admin edit flow.
type State int

const (
	StateIdle State = iota
	StateAwaitingCategory
	StateAwaitingItemData
	StateAwaitingPhoto
	StateAwaitingIngredientData
)

// ProductDraft carries the text data of a product between the item-data
// step and the photo step.
type ProductDraft struct {
	Name        string
	Price       float64
	Description string
}

// Session tracks one admin's in-progress edit flow. Sessions live only in
// process memory; a lost session is re-initiated from the admin panel.
type Session struct {
	State     State
	Category  models.Category
	Draft     ProductDraft
	ExpiresAt time.Time
}

// SessionStore keeps per-chat sessions under a mutex and expires abandoned
// ones, so a stale flow cannot swallow a later matching-shaped message and
// the map cannot grow without bound.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]*Session
	now      func() time.Time
}

// NewSessionStore creates a store; sessions expire ttl after the last
// transition.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// Get returns the live session for a chat, or nil. An expired session is
// dropped on access.
func (s *SessionStore) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		return nil
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, chatID)
		return nil
	}
	return sess
}

// State returns the chat's current state, StateIdle when no session exists.
func (s *SessionStore) State(chatID int64) State {
	if sess := s.Get(chatID); sess != nil {
		return sess.State
	}
	return StateIdle
}

// Put stores a session and refreshes its expiry.
func (s *SessionStore) Put(chatID int64, sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ExpiresAt = s.now().Add(s.ttl)
	s.sessions[chatID] = sess
}

// Clear drops a chat's session.
func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Sweep removes expired sessions and reports how many were dropped.
// Scheduled periodically by the server's cron.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	dropped := 0
	for chatID, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, chatID)
			dropped++
		}
	}
	return dropped
}
