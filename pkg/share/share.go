// Package share implements the compact, URL-embeddable board encoding.
//
// A share string is a version tag followed by one record per tile:
//
//	1!4_-12_30_0_a!5_52_30_0_%C3%A9
//
// Records are separated by "!" and hold id, x, y, a flags field and the
// percent-escaped character. Offsets are rounded to integers; ghost tiles are
// previews by definition and are never encoded. Decoding is strict — any
// malformed field fails the whole string with INVALID_SHARE — and callers
// degrade to an empty board rather than surfacing the error to the user.
package share

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/errors"
	"github.com/tilery/tilery/pkg/geom"
)

// version is the encoding version tag. Bump it when the record format
// changes; decoders reject tags they do not know.
const version = "1"

// Encode serializes tiles into a share string. Ghost tiles are skipped.
// An empty board encodes to the bare version tag.
func Encode(tiles []board.Tile) string {
	var b strings.Builder
	b.WriteString(version)
	for _, t := range tiles {
		if t.Ghost {
			continue
		}
		p := geom.Round(t.Offset)
		fmt.Fprintf(&b, "!%d_%d_%d_0_%s", t.ID, int(p.X), int(p.Y), escapeChar(t.Char))
	}
	return b.String()
}

// Decode parses a share string back into a tile list. The empty string is a
// valid empty board; anything else must carry the version tag and well-formed
// records.
func Decode(s string) ([]board.Tile, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, "!")
	if parts[0] != version {
		return nil, errors.New(errors.ErrCodeInvalidShare, "unknown share version %q", parts[0])
	}

	tiles := make([]board.Tile, 0, len(parts)-1)
	seen := board.NewIDSet()
	for _, record := range parts[1:] {
		t, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		if seen.Has(t.ID) {
			return nil, errors.New(errors.ErrCodeInvalidShare, "duplicate tile id %d", t.ID)
		}
		seen.Add(t.ID)
		tiles = append(tiles, t)
	}
	return tiles, nil
}

func decodeRecord(record string) (board.Tile, error) {
	fields := strings.Split(record, "_")
	if len(fields) != 5 {
		return board.Tile{}, errors.New(errors.ErrCodeInvalidShare, "tile record %q has %d fields, want 5", record, len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil || id <= 0 {
		return board.Tile{}, errors.New(errors.ErrCodeInvalidShare, "bad tile id %q", fields[0])
	}
	x, err := strconv.Atoi(fields[1])
	if err != nil {
		return board.Tile{}, errors.New(errors.ErrCodeInvalidShare, "bad x offset %q", fields[1])
	}
	y, err := strconv.Atoi(fields[2])
	if err != nil {
		return board.Tile{}, errors.New(errors.ErrCodeInvalidShare, "bad y offset %q", fields[2])
	}
	flags, err := strconv.Atoi(fields[3])
	if err != nil || flags != 0 {
		// Ghosts are never committed, so no flag bits are defined yet.
		return board.Tile{}, errors.New(errors.ErrCodeInvalidShare, "bad flags %q", fields[3])
	}
	char, err := unescapeChar(fields[4])
	if err != nil {
		return board.Tile{}, err
	}

	return board.Tile{
		ID:     board.ID(id),
		Char:   char,
		Offset: geom.Point{X: float64(x), Y: float64(y)},
	}, nil
}

// escapeChar renders a tile character with only unreserved bytes: ASCII
// letters and digits pass through, everything else (including the record and
// field separators) becomes %XX per UTF-8 byte.
func escapeChar(r rune) string {
	if isUnreserved(r) {
		return string(r)
	}
	var b strings.Builder
	for _, c := range []byte(string(r)) {
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func unescapeChar(s string) (rune, error) {
	if s == "" {
		return 0, errors.New(errors.ErrCodeInvalidShare, "empty tile character")
	}

	var raw []byte
	for i := 0; i < len(s); {
		if s[i] != '%' {
			raw = append(raw, s[i])
			i++
			continue
		}
		if i+3 > len(s) {
			return 0, errors.New(errors.ErrCodeInvalidShare, "truncated escape in %q", s)
		}
		v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidShare, "bad escape in %q", s)
		}
		raw = append(raw, byte(v))
		i += 3
	}

	if !utf8.Valid(raw) {
		return 0, errors.New(errors.ErrCodeInvalidShare, "tile character %q is not valid UTF-8", s)
	}
	runes := []rune(string(raw))
	if len(runes) != 1 {
		return 0, errors.New(errors.ErrCodeInvalidShare, "tile character %q is not a single rune", s)
	}
	return runes[0], nil
}

func isUnreserved(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// NewCode returns a fresh server-side board code: eight lowercase hex
// characters derived from a random UUID. Short enough to read aloud,
// random enough for a toy's namespace.
func NewCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
