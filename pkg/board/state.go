package board

import (
	"github.com/tilery/tilery/pkg/geom"
	"github.com/tilery/tilery/pkg/layout"
)

// =============================================================================
// Configuration
// =============================================================================

// Config carries the tunables the reducer needs. It is immutable during a
// session; frontends build one from their own units (cells or pixels).
type Config struct {
	// Metrics is the tile footprint shared with the layout engine.
	Metrics layout.Metrics

	// PadPointer is the hit-test padding used for the second, padded pass of
	// pointer-down resolution when the touch UI is off.
	PadPointer float64

	// PadTouch is the padding used when the touch UI is on.
	PadTouch float64

	// PadTouchSmall replaces PadTouch on windows narrower than SmallWindow,
	// where a generous buffer would swallow too much of the board.
	PadTouchSmall float64

	// SmallWindow is the width threshold for PadTouchSmall.
	SmallWindow float64
}

// DefaultConfig returns a pixel-oriented configuration.
func DefaultConfig() Config {
	return Config{
		Metrics:       layout.DefaultMetrics,
		PadPointer:    10,
		PadTouch:      20,
		PadTouchSmall: 12,
		SmallWindow:   640,
	}
}

// hitPad picks the padded-pass buffer for the current device heuristics.
func (c Config) hitPad(s State) float64 {
	if !s.TouchUI {
		return c.PadPointer
	}
	if s.Window.W < c.SmallWindow {
		return c.PadTouchSmall
	}
	return c.PadTouch
}

// =============================================================================
// Gesture records
// =============================================================================

// ActiveMove is one pointer's in-flight drag. It exists from the pointer-down
// that grabbed a tile until the matching pointer-up, and is keyed by pointer
// in State.Moves so concurrent drags from different pointers stay independent.
// Preview holds the proposed tiles; the canonical list is untouched until the
// gesture commits.
type ActiveMove struct {
	Pointer PointerID
	Primary bool
	Origin  geom.Point
	Point   geom.Point
	Tiles   IDSet
	Preview map[ID]Tile
}

func (m ActiveMove) clone() ActiveMove {
	m.Tiles = m.Tiles.Clone()
	preview := make(map[ID]Tile, len(m.Preview))
	for id, t := range m.Preview {
		preview[id] = t
	}
	m.Preview = preview
	return m
}

// ActiveSelection is the rubber-band selection box. Only the primary pointer
// may drive one, so at most a single instance exists. Tiles is the overlap
// set of the current rectangle; Deselecting is set when the gesture began on
// an already-selected tile with a modifier held, turning the box into a
// subtraction instead of a union.
type ActiveSelection struct {
	Origin      geom.Point
	Point       geom.Point
	Tiles       IDSet
	Deselecting bool
}

// Rect is the rectangle spanned by the gesture so far, independent of drag
// direction.
func (s ActiveSelection) Rect() geom.BBox {
	return geom.BoundingBox(s.Origin, s.Point)
}

func (s ActiveSelection) clone() ActiveSelection {
	s.Tiles = s.Tiles.Clone()
	return s
}

// Compose is the tile-composition mode: Letters is the text typed so far and
// Preview the ghost tiles it would produce, re-laid out on every keystroke
// and re-anchored as the primary pointer moves. Preview IDs are provisional
// continuations of the ID counter; they become real on commit.
type Compose struct {
	Letters string
	Anchor  geom.Point
	Preview []Tile
}

func (c Compose) clone() Compose {
	c.Preview = cloneTiles(c.Preview)
	return c
}

// ArrangeMemo remembers the last arrangement so a repeated Arrange on the
// same selection toggles between line and circle. Identity is set equality
// on the arranged IDs.
type ArrangeMemo struct {
	Tiles IDSet
	Mode  layout.Mode
}

// =============================================================================
// State
// =============================================================================

// State is the whole application state. It is treated as a value: Reduce
// copies the containers it is about to mutate, so a retained old State (an
// undo snapshot, a test fixture) never changes under the caller.
type State struct {
	// Tiles is the canonical tile list; list order is z-order.
	Tiles []Tile

	// Window is the current window size in board units.
	Window geom.Dims

	// Selection is the multi-selection, always a subset of existing tile IDs.
	Selection IDSet

	// Moves holds the in-flight drags, keyed by pointer.
	Moves map[PointerID]ActiveMove

	// Select is the active rubber-band selection box, if any.
	Select *ActiveSelection

	// Composing is the active tile-composition session, if any.
	Composing *Compose

	// LastPointer is the most recent primary-pointer position, used to anchor
	// a fresh composition preview.
	LastPointer geom.Point

	// UndoStack and RedoStack hold full tile-list snapshots. Every semantic
	// mutation pushes onto UndoStack and clears RedoStack.
	UndoStack [][]Tile
	RedoStack [][]Tile

	// Appearing holds the IDs that appeared in the latest transition, for a
	// one-shot animation pulse. It is replaced by each semantic mutation.
	Appearing IDSet

	// Animate reports whether the latest position changes should animate
	// smoothly (arrange, shuffle, undo) or snap (drag commit, resize).
	Animate bool

	// TouchUI and HelpVisible mirror the corresponding toggles.
	TouchUI     bool
	HelpVisible bool

	// ZeroState is the "nothing here yet" hint, set when startup decoding
	// found no board and cleared by the first added tile.
	ZeroState bool

	// LastArrange remembers the previous arrangement for the toggle.
	LastArrange *ArrangeMemo

	// NextID is the ID counter, kept equal to max(existing)+1.
	NextID ID

	// primaryPointer is the pointer last seen with the Primary flag; it
	// drives composition re-anchoring.
	primaryPointer PointerID
}

// NewState returns an empty board of the given window size.
func NewState(window geom.Dims) State {
	return State{
		Window:    window,
		Selection: NewIDSet(),
		Moves:     map[PointerID]ActiveMove{},
		Appearing: NewIDSet(),
		ZeroState: true,
		NextID:    1,
	}
}

// WithTiles returns s with the canonical list replaced wholesale, the ID
// counter recomputed, and all derived sets reset. Used when loading a decoded
// board at startup.
func (s State) WithTiles(tiles []Tile) State {
	s.Tiles = cloneTiles(tiles)
	s.Selection = NewIDSet()
	s.Appearing = NewIDSet()
	s.UndoStack = nil
	s.RedoStack = nil
	s.NextID = maxID(tiles) + 1
	s.ZeroState = len(tiles) == 0
	return s
}

// Bounds is the window box in board coordinates.
func (s State) Bounds() geom.BBox {
	return geom.BBox{
		MinX: -s.Window.W / 2,
		MaxX: s.Window.W / 2,
		MinY: -s.Window.H / 2,
		MaxY: s.Window.H / 2,
	}
}

// tileAt returns the topmost tile whose box, expanded by pad, contains p.
// The list is scanned back to front because later tiles render on top.
func (s State) tileAt(p geom.Point, d geom.Dims, pad float64) (Tile, bool) {
	for i := len(s.Tiles) - 1; i >= 0; i-- {
		t := s.Tiles[i]
		if geom.Contains(geom.Expand(t.Box(d), pad), p) {
			return t, true
		}
	}
	return Tile{}, false
}

// tileByID returns the canonical tile with the given ID.
func (s State) tileByID(id ID) (Tile, bool) {
	for _, t := range s.Tiles {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// gestureActive reports whether any pointer gesture is in flight.
func (s State) gestureActive() bool {
	return len(s.Moves) > 0 || s.Select != nil
}

// cloneMoves copies the move map so the previous state keeps its own.
func (s *State) cloneMoves() {
	moves := make(map[PointerID]ActiveMove, len(s.Moves))
	for id, m := range s.Moves {
		moves[id] = m.clone()
	}
	s.Moves = moves
}
