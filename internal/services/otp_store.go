package services

import (
	"sync"
	"time"
)

// OTPEntry is one cached passcode awaiting verification.
type OTPEntry struct {
	Code      string
	ExpiresAt time.Time
}

// OTPStore holds pending passcodes keyed by identifier (email). The store is
// injected so a multi-instance deployment can swap in an external cache.
type OTPStore interface {
	Put(identifier string, entry OTPEntry)
	Get(identifier string) (OTPEntry, bool)
	Delete(identifier string)
}

type memoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]OTPEntry
}

func NewMemoryOTPStore() OTPStore {
	return &memoryOTPStore{entries: make(map[string]OTPEntry)}
}

func (s *memoryOTPStore) Put(identifier string, entry OTPEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[identifier] = entry
}

func (s *memoryOTPStore) Get(identifier string) (OTPEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[identifier]
	return e, ok
}

func (s *memoryOTPStore) Delete(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, identifier)
}
