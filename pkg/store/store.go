// Package store provides persistence backends for shared boards.
//
// A board is stored as its encoded share payload under a short code. The
// Store interface supports multiple backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for the CLI and single-node servers
//   - redis: Redis-backed storage for multi-instance deployments
//   - null: No-op storage when persistence is disabled
//
// # Usage
//
// Create a store:
//
//	// Development
//	s := store.NewMemory()
//
//	// CLI / single node
//	s, err := store.NewFile("")  // Uses the XDG data directory
//
//	// Production
//	s, err := store.NewRedis(ctx, store.RedisConfig{Addr: "localhost:6379"})
//
// Then load and save payloads by code:
//
//	data, ok, err := s.Load(ctx, code)
//	if !ok {
//	    // No such board - callers fall back to an empty canvas
//	}
package store

import (
	"context"

	"github.com/tilery/tilery/pkg/observability"
)

// Store is the interface for board persistence backends.
//
// Implementations must be safe for concurrent use. Load reports a miss via
// the boolean, not an error: a missing board is a normal outcome.
type Store interface {
	// Load retrieves the payload stored under code.
	// Returns found=false when no board exists for the code.
	Load(ctx context.Context, code string) (data []byte, found bool, err error)

	// Save stores the payload under code, replacing any previous payload.
	Save(ctx context.Context, code string, data []byte) error

	// Delete removes the board stored under code. Deleting a missing
	// board is not an error.
	Delete(ctx context.Context, code string) error

	// List returns the codes of all stored boards.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Instrument wraps a store so loads and saves emit observability events
// tagged with the backend name.
func Instrument(s Store, backend string) Store {
	return &instrumented{inner: s, backend: backend}
}

type instrumented struct {
	inner   Store
	backend string
}

func (s *instrumented) Load(ctx context.Context, code string) ([]byte, bool, error) {
	data, found, err := s.inner.Load(ctx, code)
	observability.Store().OnLoad(ctx, s.backend, found)
	return data, found, err
}

func (s *instrumented) Save(ctx context.Context, code string, data []byte) error {
	err := s.inner.Save(ctx, code, data)
	observability.Store().OnSave(ctx, s.backend, len(data), err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, code string) error {
	return s.inner.Delete(ctx, code)
}

func (s *instrumented) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

func (s *instrumented) Close() error {
	return s.inner.Close()
}
