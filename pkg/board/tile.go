// Package board implements the interaction core of tilery: the canonical
// tile list, the closed action protocol, and the reducer that turns actions
// into new states. The reducer is a total, pure function — every guard
// condition is a no-op, never an error — so the only fallible boundaries of
// the system live elsewhere (share decoding, stores, the server).
//
// All coordinates are board coordinates: float64 logical units with the
// origin at the window center, +X right and +Y down. A tile's Offset is the
// top-left corner of its box in that space, so the window bounds form the box
// (-W/2, W/2, -H/2, H/2). Input adapters translate native events into this
// space before dispatching actions.
package board

import (
	"slices"

	"github.com/tilery/tilery/pkg/geom"
)

// ID identifies a tile. IDs are assigned from a monotonically increasing
// counter and stay stable across moves, undo and redo; only deletion retires
// an ID. The counter is always derivable as max(existing)+1, which keeps tile
// creation reproducible after undo/redo and share decoding.
type ID int

// PointerID identifies one pointer (mouse, or one finger of a multi-touch
// gesture). Nothing is special about any particular value; the Primary flag
// on PointerDown marks the primary pointer.
type PointerID int

// Tile is one letter tile. Tiles are owned by State; later list positions
// render on top of earlier ones, so list order is the z-order.
type Tile struct {
	ID     ID
	Char   rune
	Offset geom.Point // top-left corner, relative to the window center
	Ghost  bool       // true only for uncommitted composition previews
}

// Box returns the tile's bounding box for the given tile size.
func (t Tile) Box(d geom.Dims) geom.BBox {
	return geom.FromTopLeft(t.Offset, d)
}

// cloneTiles deep-copies a tile list. Undo entries must be independently
// immutable snapshots, so every stack push goes through here.
func cloneTiles(ts []Tile) []Tile {
	return slices.Clone(ts)
}

// tilesEqual reports whether two tile lists are identical in order, identity
// and value.
func tilesEqual(a, b []Tile) bool {
	return slices.Equal(a, b)
}

// idsOf collects the IDs of a tile list into a set.
func idsOf(ts []Tile) IDSet {
	s := make(IDSet, len(ts))
	for _, t := range ts {
		s.Add(t.ID)
	}
	return s
}

// maxID returns the largest ID in the list, or zero for an empty list.
func maxID(ts []Tile) ID {
	var m ID
	for _, t := range ts {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}

// IDSet is a set of tile IDs.
type IDSet map[ID]struct{}

// NewIDSet builds a set from the given IDs.
func NewIDSet(ids ...ID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set.
func (s IDSet) Add(id ID) { s[id] = struct{}{} }

// Remove deletes id from the set.
func (s IDSet) Remove(id ID) { delete(s, id) }

// Has reports whether id is in the set.
func (s IDSet) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out.Add(id)
	}
	return out
}

// Union returns a new set containing the members of both sets.
func (s IDSet) Union(other IDSet) IDSet {
	out := s.Clone()
	for id := range other {
		out.Add(id)
	}
	return out
}

// Diff returns a new set with other's members removed from s.
func (s IDSet) Diff(other IDSet) IDSet {
	out := make(IDSet)
	for id := range s {
		if !other.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Intersect returns a new set containing the members present in both sets.
func (s IDSet) Intersect(other IDSet) IDSet {
	out := make(IDSet)
	for id := range s {
		if other.Has(id) {
			out.Add(id)
		}
	}
	return out
}

// Equal reports whether both sets hold exactly the same IDs. Selection
// identity is set equality: the order tiles were picked in never matters.
func (s IDSet) Equal(other IDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order, for deterministic iteration.
func (s IDSet) Sorted() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
