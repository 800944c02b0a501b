package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-memory store for development and testing.
type Memory struct {
	mu     sync.RWMutex
	boards map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{boards: make(map[string][]byte)}
}

// Load retrieves a payload by code.
func (s *Memory) Load(ctx context.Context, code string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.boards[code]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// Save stores a payload under code.
func (s *Memory) Save(ctx context.Context, code string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[code] = cp
	return nil
}

// Delete removes a board.
func (s *Memory) Delete(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, code)
	return nil
}

// List returns all stored codes in sorted order.
func (s *Memory) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.boards))
	for code := range s.boards {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}

// Close does nothing for the in-memory store.
func (s *Memory) Close() error {
	return nil
}

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)
