// Package otp holds the transient one-time-code sessions. Losing them on
// restart is acceptable: the client simply requests a new code.
package otp

import (
	"context"
	"sync"
	"time"
)

// Session is one live OTP for a phone number. At most one session exists
// per phone; a new issuance overwrites the previous one.
type Session struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store is a TTL-scoped key-value store for OTP sessions. Get returns
// (nil, nil) when no live session exists; expiry is lazy and applied on
// read rather than swept.
type Store interface {
	Get(ctx context.Context, phone string) (*Session, error)
	Set(ctx context.Context, session *Session) error
	Delete(ctx context.Context, phone string) error
}

// MemoryStore keeps sessions in a process-local map. This is the default
// backend; Redis takes over when configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (s *MemoryStore) Get(ctx context.Context, phone string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[phone]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, phone)
		s.mu.Unlock()
		return nil, nil
	}
	return session, nil
}

func (s *MemoryStore) Set(ctx context.Context, session *Session) error {
	s.mu.Lock()
	s.sessions[session.Phone] = session
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	delete(s.sessions, phone)
	s.mu.Unlock()
	return nil
}
