package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/tilery/tilery/pkg/errors"
)

// File is a file-based store for the CLI and single-node servers.
// Each board is a JSON file carrying the code and payload; files are sharded
// into hash-prefix subdirectories so a busy store doesn't pile thousands of
// entries into one directory.
type File struct {
	mu  sync.RWMutex
	dir string
}

// NewFile creates a file-based store rooted at dir.
// If dir is empty, defaults to ~/.local/share/tilery/boards/.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "tilery", "boards")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create board dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// fileEntry wraps a stored payload with its code and save time. The code is
// kept inside the file because the filename is a hash of it.
type fileEntry struct {
	Code    string    `json:"code"`
	Data    []byte    `json:"data"`
	SavedAt time.Time `json:"saved_at"`
}

// Load retrieves a payload by code.
func (s *File) Load(ctx context.Context, code string) ([]byte, bool, error) {
	if err := errors.ValidateBoardCode(code); err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(code))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStore, err, "reading board %s", code)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry - treat as miss
		_ = os.Remove(s.path(code))
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Save stores a payload under code.
func (s *File) Save(ctx context.Context, code string, data []byte) error {
	if err := errors.ValidateBoardCode(code); err != nil {
		return err
	}

	entry := fileEntry{Code: code, Data: data, SavedAt: time.Now()}
	encoded, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding board %s", code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(code)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "creating shard dir for %s", code)
	}
	if err := os.WriteFile(path, encoded, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing board %s", code)
	}
	return nil
}

// Delete removes a board. Deleting a missing board is not an error.
func (s *File) Delete(ctx context.Context, code string) error {
	if err := errors.ValidateBoardCode(code); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(code)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStore, err, "removing board %s", code)
	}
	return nil
}

// List returns the codes of all stored boards in sorted order.
func (s *File) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var codes []string
	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil // entry vanished mid-walk
		}
		var entry fileEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil
		}
		codes = append(codes, entry.Code)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "listing boards")
	}
	sort.Strings(codes)
	return codes, nil
}

// Close does nothing for the file store.
func (s *File) Close() error {
	return nil
}

// Path returns the base directory for board files.
func (s *File) Path() string {
	return s.dir
}

// path converts a board code to a file path. The code is hashed so arbitrary
// codes can never escape the store directory; the first two hex chars shard
// entries across subdirectories.
func (s *File) path(code string) string {
	sum := sha256.Sum256([]byte(code))
	hash := hex.EncodeToString(sum[:])
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

// Ensure File implements Store.
var _ Store = (*File)(nil)
