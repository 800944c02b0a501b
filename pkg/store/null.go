package store

import "context"

// Null is a no-op store that never persists anything.
// Useful for testing or when persistence is disabled.
type Null struct{}

// NewNull creates a null store.
func NewNull() *Null {
	return &Null{}
}

// Load always reports a miss.
func (s *Null) Load(ctx context.Context, code string) ([]byte, bool, error) {
	return nil, false, nil
}

// Save does nothing.
func (s *Null) Save(ctx context.Context, code string, data []byte) error {
	return nil
}

// Delete does nothing.
func (s *Null) Delete(ctx context.Context, code string) error {
	return nil
}

// List returns no codes.
func (s *Null) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (s *Null) Close() error {
	return nil
}

// Ensure Null implements Store.
var _ Store = (*Null)(nil)
