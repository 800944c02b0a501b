// Package boardio reads and writes board files: a single share string plus a
// trailing newline. The path "-" selects stdin or stdout, so boards pipe
// cleanly between commands. Writes are atomic (temp file + rename) to keep a
// crash from truncating a board.
package boardio

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/errors"
	"github.com/tilery/tilery/pkg/share"
)

// Stdio is the path value that selects stdin/stdout.
const Stdio = "-"

// Read loads a board from path. A missing file is not an error: it returns
// an empty board, matching the "absent content falls back to a fresh canvas"
// rule of the persistence boundary.
func Read(path string) ([]board.Tile, error) {
	if path == Stdio {
		return read(os.Stdin)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "opening board %s", path)
	}
	defer f.Close()
	return read(f)
}

func read(r io.Reader) ([]board.Tile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "reading board")
	}

	tiles, err := share.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "decoding board")
	}
	return tiles, nil
}

// Write stores tiles at path. Parent directories are created as needed; the
// file is replaced atomically.
func Write(path string, tiles []board.Tile) error {
	encoded := share.Encode(tiles) + "\n"

	if path == Stdio {
		_, err := io.WriteString(os.Stdout, encoded)
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "creating %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".board-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "creating temp file in %s", dir)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStore, err, "writing board")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStore, err, "closing board")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStore, err, "replacing %s", path)
	}
	return nil
}
