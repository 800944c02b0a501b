package board

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/tilery/tilery/pkg/geom"
	"github.com/tilery/tilery/pkg/layout"
)

// maxPermutationDraws bounds the rejection loop that keeps shuffle and
// arrange from reproducing the current assignment. It only matters when the
// involved offsets are nearly all identical.
const maxPermutationDraws = 100

// Reduce applies a to s and returns the next state. It is a total function
// over the closed action set: guard violations (undo on an empty stack,
// commit with no text, delete with no selection) reduce to no-ops. rng feeds
// shuffle and arrange; passing a fixed-seed source makes them reproducible.
//
// The previous state is never mutated: containers are copied before writes,
// so callers may retain old states indefinitely.
func Reduce(cfg Config, s State, a Action, rng *rand.Rand) State {
	switch a := a.(type) {
	case KeyDown:
		return reduceKey(cfg, s, a, rng)
	case PointerDown:
		return reducePointerDown(cfg, s, a)
	case PointerMove:
		return reducePointerMove(cfg, s, a)
	case PointerUp:
		return reducePointerUp(cfg, s, a)
	case Resize:
		return reduceResize(cfg, s, a)
	case StartCompose:
		return reduceStartCompose(cfg, s)
	case SetComposeText:
		return reduceSetComposeText(cfg, s, a.Text)
	case ComposeBackspace:
		return reduceComposeBackspace(cfg, s)
	case CancelCompose:
		return reduceCancelCompose(s)
	case CommitCompose:
		return reduceCommitCompose(s)
	case AddFromPrompt:
		return reduceAddFromPrompt(cfg, s, a.Text)
	case SelectAll:
		s.Selection = idsOf(s.Tiles)
		return s
	case Shuffle:
		return reduceShuffle(s, rng)
	case Arrange:
		return reduceArrange(cfg, s, rng)
	case DeleteSelection:
		return reduceDelete(s)
	case Undo:
		return reduceUndo(s)
	case Redo:
		return reduceRedo(s)
	case SetTouchUI:
		s.TouchUI = a.Enabled
		return s
	case SetHelpVisible:
		s.HelpVisible = a.Visible
		return s
	default:
		// The Action interface is sealed; a new variant that reaches this arm
		// is a bug in this package, not a runtime condition.
		panic(fmt.Sprintf("board: unhandled action %T", a))
	}
}

// =============================================================================
// Keyboard
// =============================================================================

// reduceKey lowers raw key presses onto the named actions. The keymap lives
// in the reducer so every frontend shares one binding set.
func reduceKey(cfg Config, s State, a KeyDown, rng *rand.Rand) State {
	if s.Composing != nil {
		switch a.Key {
		case "enter":
			return Reduce(cfg, s, CommitCompose{}, rng)
		case "esc":
			return Reduce(cfg, s, CancelCompose{}, rng)
		case "backspace":
			return Reduce(cfg, s, ComposeBackspace{}, rng)
		}
		if a.Mod {
			return s
		}
		if r, ok := keyRune(a.Key); ok {
			// Whitespace other than a literal space is dropped.
			if r != ' ' && unicode.IsSpace(r) {
				return s
			}
			return Reduce(cfg, s, SetComposeText{Text: s.Composing.Letters + string(r)}, rng)
		}
		return s
	}

	if a.Mod {
		switch a.Key {
		case "a":
			return Reduce(cfg, s, SelectAll{}, rng)
		case "z":
			return Reduce(cfg, s, Undo{}, rng)
		case "Z", "y":
			return Reduce(cfg, s, Redo{}, rng)
		}
		return s
	}

	switch a.Key {
	case " ":
		return Reduce(cfg, s, StartCompose{}, rng)
	case "backspace", "delete":
		return Reduce(cfg, s, DeleteSelection{}, rng)
	case "s":
		return Reduce(cfg, s, Shuffle{}, rng)
	case "r":
		return Reduce(cfg, s, Arrange{}, rng)
	case "?":
		return Reduce(cfg, s, SetHelpVisible{Visible: !s.HelpVisible}, rng)
	case "esc":
		if s.HelpVisible {
			return Reduce(cfg, s, SetHelpVisible{Visible: false}, rng)
		}
		s.Selection = NewIDSet()
		return s
	}
	return s
}

// keyRune extracts the rune of a single-character key identity.
func keyRune(key string) (rune, bool) {
	rs := []rune(key)
	if len(rs) != 1 {
		return 0, false
	}
	return rs[0], true
}

// =============================================================================
// Pointer gestures
// =============================================================================

func reducePointerDown(cfg Config, s State, a PointerDown) State {
	if a.Primary {
		s.primaryPointer = a.Pointer
		s.LastPointer = a.Point
	}

	// Composition mode suppresses gesture handling; the primary pointer only
	// drives the preview anchor.
	if s.Composing != nil {
		if a.Primary {
			return reanchorCompose(cfg, s, a.Point)
		}
		return s
	}

	// A second "primary" down mid-gesture is a platform anomaly. Reset every
	// gesture and reprocess this event against the clean state.
	if a.Primary && s.gestureActive() {
		s.Moves = map[PointerID]ActiveMove{}
		s.Select = nil
	}

	hit, ok := s.tileAt(a.Point, cfg.Metrics.Tile, 0)
	if !ok {
		hit, ok = s.tileAt(a.Point, cfg.Metrics.Tile, cfg.hitPad(s))
	}

	// Modifier or miss: rubber-band selection, primary pointer only. A
	// non-primary touch that misses every tile is spurious multitouch.
	if a.Mod || !ok {
		if !a.Primary {
			return s
		}
		sel := ActiveSelection{Origin: a.Point, Point: a.Point, Tiles: NewIDSet()}
		if ok {
			sel.Tiles.Add(hit.ID)
			sel.Deselecting = s.Selection.Has(hit.ID)
		}
		s.Select = &sel
		return s
	}

	// A selection box and a move cannot coexist; the primary case was reset
	// above, so only a non-primary touch can get here with one active.
	if s.Select != nil {
		return s
	}

	otherMoves := len(s.Moves) > 0
	mv := ActiveMove{Pointer: a.Pointer, Primary: a.Primary, Origin: a.Point, Point: a.Point}
	if !otherMoves && s.Selection.Has(hit.ID) {
		// Dragging a selected tile drags the whole selection.
		mv.Tiles = s.Selection.Clone()
	} else {
		mv.Tiles = NewIDSet(hit.ID)
		if otherMoves {
			// Another pointer is mid-drag; don't steal its selection.
			s.Selection = s.Selection.Clone()
			s.Selection.Add(hit.ID)
		} else {
			s.Selection = NewIDSet(hit.ID)
		}
	}
	mv.Preview = movePreview(cfg, s, mv)

	s.cloneMoves()
	s.Moves[a.Pointer] = mv
	return s
}

func reducePointerMove(cfg Config, s State, a PointerMove) State {
	if a.Pointer == s.primaryPointer {
		s.LastPointer = a.Point
	}

	if s.Composing != nil {
		if a.Pointer == s.primaryPointer {
			return reanchorCompose(cfg, s, a.Point)
		}
		return s
	}

	if s.Select != nil && a.Pointer == s.primaryPointer {
		sel := s.Select.clone()
		sel.Point = a.Point
		rect := sel.Rect()
		sel.Tiles = NewIDSet()
		for _, t := range s.Tiles {
			if geom.Intersects(t.Box(cfg.Metrics.Tile), rect) {
				sel.Tiles.Add(t.ID)
			}
		}
		s.Select = &sel
		return s
	}

	if mv, ok := s.Moves[a.Pointer]; ok {
		mv = mv.clone()
		mv.Point = a.Point
		mv.Preview = movePreview(cfg, s, mv)
		s.cloneMoves()
		s.Moves[a.Pointer] = mv
	}
	return s
}

func reducePointerUp(cfg Config, s State, a PointerUp) State {
	if mv, ok := s.Moves[a.Pointer]; ok {
		s = commitMove(s, mv)
	}

	// Releasing a drag while composing commits the composition.
	if s.Composing != nil && a.Pointer == s.primaryPointer {
		return reduceCommitCompose(s)
	}

	if s.Select != nil && a.Pointer == s.primaryPointer {
		sel := *s.Select
		s.Select = nil
		if sel.Deselecting {
			s.Selection = s.Selection.Diff(sel.Tiles)
		} else {
			s.Selection = s.Selection.Union(sel.Tiles)
		}
	}
	return s
}

// movePreview applies the drag delta to every dragged tile, then clamps the
// combined bounding box of the group into the window and shifts every member
// by the same adjustment. The group moves as one shape and no member escapes,
// even if an individual tile would overflow on its own.
func movePreview(cfg Config, s State, mv ActiveMove) map[ID]Tile {
	delta := geom.Sub(mv.Point, mv.Origin)
	proposed := make(map[ID]Tile, len(mv.Tiles))
	var corners []geom.Point
	for _, id := range mv.Tiles.Sorted() {
		t, ok := s.tileByID(id)
		if !ok {
			continue
		}
		t.Offset = geom.Add(t.Offset, delta)
		proposed[id] = t
		box := t.Box(cfg.Metrics.Tile)
		tl, br := geom.Corners(box)
		corners = append(corners, tl, br)
	}
	if len(proposed) == 0 {
		return proposed
	}

	combined := geom.BoundingBox(corners...)
	topLeft, _ := geom.Corners(combined)
	clamped := geom.ClampTopLeft(topLeft, geom.Size(combined), s.Bounds())
	adjust := geom.Sub(clamped, topLeft)
	if adjust != (geom.Point{}) {
		for id, t := range proposed {
			t.Offset = geom.Add(t.Offset, adjust)
			proposed[id] = t
		}
	}
	return proposed
}

// commitMove makes the move's preview canonical. The pre-move tile list
// becomes an undo entry, but only when the gesture actually moved something:
// a plain click must not grow the history. Non-primary drags drop their tiles
// from the selection afterwards so per-touch drags leave no stray state.
func commitMove(s State, mv ActiveMove) State {
	s.cloneMoves()
	delete(s.Moves, mv.Pointer)

	pre := s.Tiles
	next := cloneTiles(pre)
	changed := false
	for i, t := range next {
		if p, ok := mv.Preview[t.ID]; ok && p.Offset != t.Offset {
			next[i].Offset = p.Offset
			changed = true
		}
	}
	if changed {
		s = pushHistory(s, pre)
		s.Tiles = next
		s.Appearing = NewIDSet()
		s.Animate = false
	}

	if !mv.Primary {
		s.Selection = s.Selection.Diff(mv.Tiles)
	}
	return s
}

// =============================================================================
// Window
// =============================================================================

// reduceResize re-clamps every tile into the new window. The transition is
// non-semantic: history stays untouched and positions snap instead of
// animating.
func reduceResize(cfg Config, s State, a Resize) State {
	s.Window = a.Window
	bounds := s.Bounds()
	tiles := cloneTiles(s.Tiles)
	for i := range tiles {
		tiles[i].Offset = geom.ClampTopLeft(tiles[i].Offset, cfg.Metrics.Tile, bounds)
	}
	s.Tiles = tiles
	s.Animate = false
	return s
}

// =============================================================================
// Composition
// =============================================================================

func reduceStartCompose(cfg Config, s State) State {
	if s.Composing != nil {
		return s
	}
	// Composition supersedes a rubber-band box; in-flight moves survive and
	// commit together with the composition on pointer-up.
	s.Select = nil
	s.Composing = &Compose{Anchor: s.LastPointer}
	return regenComposePreview(cfg, s)
}

func reduceSetComposeText(cfg Config, s State, text string) State {
	if s.Composing == nil {
		return s
	}
	c := s.Composing.clone()
	c.Letters = text
	s.Composing = &c
	return regenComposePreview(cfg, s)
}

func reduceComposeBackspace(cfg Config, s State) State {
	if s.Composing == nil {
		return s
	}
	rs := []rune(s.Composing.Letters)
	if len(rs) == 0 {
		return reduceCancelCompose(s)
	}
	return reduceSetComposeText(cfg, s, string(rs[:len(rs)-1]))
}

func reduceCancelCompose(s State) State {
	s.Composing = nil
	return s
}

func reduceCommitCompose(s State) State {
	if s.Composing == nil {
		return s
	}
	if len(s.Composing.Preview) == 0 {
		return reduceCancelCompose(s)
	}

	added := cloneTiles(s.Composing.Preview)
	appearing := NewIDSet()
	for i := range added {
		added[i].Ghost = false
		appearing.Add(added[i].ID)
	}

	s = pushHistory(s, s.Tiles)
	s.Tiles = append(cloneTiles(s.Tiles), added...)
	s.NextID = maxID(s.Tiles) + 1
	s.Appearing = appearing
	s.Animate = true
	s.ZeroState = false
	s.Composing = nil
	return s
}

// reanchorCompose moves the preview anchor to p and relays the ghost tiles.
func reanchorCompose(cfg Config, s State, p geom.Point) State {
	c := s.Composing.clone()
	c.Anchor = p
	s.Composing = &c
	return regenComposePreview(cfg, s)
}

// regenComposePreview rebuilds the ghost tiles from the composition text.
// Preview IDs continue the running counter so they can be committed as-is.
func regenComposePreview(cfg Config, s State) State {
	c := *s.Composing
	runes := []rune(c.Letters)
	offsets := layout.PackRows(len(runes), c.Anchor, s.Bounds(), cfg.Metrics)
	c.Preview = make([]Tile, len(runes))
	for i, r := range runes {
		c.Preview[i] = Tile{ID: s.NextID + ID(i), Char: r, Offset: offsets[i], Ghost: true}
	}
	s.Composing = &c
	return s
}

func reduceAddFromPrompt(cfg Config, s State, text string) State {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return s
	}

	offsets := layout.PackRows(len(runes), geom.Point{}, s.Bounds(), cfg.Metrics)
	added := make([]Tile, len(runes))
	appearing := NewIDSet()
	for i, r := range runes {
		added[i] = Tile{ID: s.NextID + ID(i), Char: r, Offset: offsets[i]}
		appearing.Add(added[i].ID)
	}

	s = pushHistory(s, s.Tiles)
	s.Tiles = append(cloneTiles(s.Tiles), added...)
	s.NextID = maxID(s.Tiles) + 1
	s.Appearing = appearing
	s.Animate = true
	s.ZeroState = false
	return s
}

// =============================================================================
// Shuffle and arrange
// =============================================================================

// involvedTiles returns the indices (in list order) of the tiles an action
// operates on: the selection when one exists, otherwise every tile.
func involvedTiles(s State) []int {
	var idx []int
	for i, t := range s.Tiles {
		if len(s.Selection) == 0 || s.Selection.Has(t.ID) {
			idx = append(idx, i)
		}
	}
	return idx
}

func reduceShuffle(s State, rng *rand.Rand) State {
	idx := involvedTiles(s)
	if len(idx) < 2 {
		return s
	}

	offsets := make([]geom.Point, len(idx))
	for i, ti := range idx {
		offsets[i] = s.Tiles[ti].Offset
	}
	candidate, ok := drawPermutation(offsets, rng)
	if !ok {
		return s
	}

	s = pushHistory(s, s.Tiles)
	tiles := cloneTiles(s.Tiles)
	for i, ti := range idx {
		tiles[ti].Offset = candidate[i]
	}
	s.Tiles = tiles
	s.Appearing = NewIDSet()
	s.Animate = true
	return s
}

func reduceArrange(cfg Config, s State, rng *rand.Rand) State {
	idx := involvedTiles(s)
	if len(idx) == 0 {
		return s
	}

	involved := NewIDSet()
	half := geom.Point{X: cfg.Metrics.Tile.W / 2, Y: cfg.Metrics.Tile.H / 2}
	centers := make([]geom.Point, len(idx))
	offsets := make([]geom.Point, len(idx))
	for i, ti := range idx {
		t := s.Tiles[ti]
		involved.Add(t.ID)
		offsets[i] = t.Offset
		centers[i] = geom.Add(t.Offset, half)
	}

	// Re-arranging the same set of three or more tiles alternates between the
	// line and circle layouts; any other selection starts over at line.
	mode := layout.ModeLine
	if len(idx) >= 3 && s.LastArrange != nil && s.LastArrange.Tiles.Equal(involved) {
		mode = s.LastArrange.Mode.Toggle()
	}

	targets := layout.Arrange(mode, len(idx), geom.Centroid(centers), s.Bounds(), cfg.Metrics)
	assigned, ok := assignTargets(offsets, targets, rng)
	if !ok {
		return s
	}

	s = pushHistory(s, s.Tiles)
	tiles := cloneTiles(s.Tiles)
	for i, ti := range idx {
		tiles[ti].Offset = assigned[i]
	}
	s.Tiles = tiles
	s.LastArrange = &ArrangeMemo{Tiles: involved, Mode: mode}
	s.Appearing = NewIDSet()
	s.Animate = true
	return s
}

// drawPermutation permutes offsets, rejecting draws that reproduce the input
// assignment. It reports false when no differing assignment exists (a single
// distinct position, or the draw budget ran out).
func drawPermutation(offsets []geom.Point, rng *rand.Rand) ([]geom.Point, bool) {
	rng = ensureRand(rng)
	for draw := 0; draw < maxPermutationDraws; draw++ {
		perm := rng.Perm(len(offsets))
		candidate := make([]geom.Point, len(offsets))
		same := true
		for i, pi := range perm {
			candidate[i] = offsets[pi]
			if candidate[i] != offsets[i] {
				same = false
			}
		}
		if !same {
			return candidate, true
		}
		if !hasDistinct(offsets) {
			return nil, false
		}
	}
	return nil, false
}

// assignTargets deals targets to tiles in a random order, rejecting deals
// that land every tile exactly where it already is. It reports false when no
// differing deal turned up — the tiles are already in the only layout the
// targets allow — which callers treat as a no-op.
func assignTargets(current, targets []geom.Point, rng *rand.Rand) ([]geom.Point, bool) {
	rng = ensureRand(rng)
	for draw := 0; draw < maxPermutationDraws; draw++ {
		perm := rng.Perm(len(targets))
		assigned := make([]geom.Point, len(targets))
		same := true
		for i, pi := range perm {
			assigned[i] = targets[pi]
			if assigned[i] != current[i] {
				same = false
			}
		}
		if !same {
			return assigned, true
		}
		if len(targets) == 1 || !hasDistinct(targets) {
			// Every deal is this deal; stop drawing.
			return nil, false
		}
	}
	return nil, false
}

func hasDistinct(ps []geom.Point) bool {
	for _, p := range ps[1:] {
		if p != ps[0] {
			return true
		}
	}
	return false
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return rand.New(rand.NewSource(1))
	}
	return rng
}

// =============================================================================
// Deletion
// =============================================================================

func reduceDelete(s State) State {
	if len(s.Selection) == 0 {
		return s
	}

	s = pushHistory(s, s.Tiles)
	tiles := make([]Tile, 0, len(s.Tiles))
	for _, t := range s.Tiles {
		if !s.Selection.Has(t.ID) {
			tiles = append(tiles, t)
		}
	}
	s.Tiles = tiles
	s.Selection = NewIDSet()
	s.Appearing = NewIDSet()
	s.NextID = maxID(tiles) + 1
	s.Animate = true
	return s
}

// =============================================================================
// History
// =============================================================================

// pushHistory records the pre-mutation tile list as a new undo entry and
// invalidates the redo stack. Every semantic mutation funnels through here;
// resize deliberately does not.
func pushHistory(s State, pre []Tile) State {
	stack := make([][]Tile, len(s.UndoStack), len(s.UndoStack)+1)
	copy(stack, s.UndoStack)
	s.UndoStack = append(stack, cloneTiles(pre))
	s.RedoStack = nil
	return s
}

func reduceUndo(s State) State {
	if len(s.UndoStack) == 0 {
		return s
	}

	last := len(s.UndoStack) - 1
	restored := s.UndoStack[last]

	undo := make([][]Tile, last)
	copy(undo, s.UndoStack[:last])
	redo := make([][]Tile, len(s.RedoStack), len(s.RedoStack)+1)
	copy(redo, s.RedoStack)

	s.UndoStack = undo
	s.RedoStack = append(redo, cloneTiles(s.Tiles))
	return restoreSnapshot(s, restored)
}

func reduceRedo(s State) State {
	if len(s.RedoStack) == 0 {
		return s
	}

	last := len(s.RedoStack) - 1
	restored := s.RedoStack[last]

	redo := make([][]Tile, last)
	copy(redo, s.RedoStack[:last])
	undo := make([][]Tile, len(s.UndoStack), len(s.UndoStack)+1)
	copy(undo, s.UndoStack)

	s.RedoStack = redo
	s.UndoStack = append(undo, cloneTiles(s.Tiles))
	return restoreSnapshot(s, restored)
}

// restoreSnapshot swaps the canonical tile list for a history snapshot:
// tiles that exist only in the snapshot get the appearing pulse, the
// selection is intersected with the surviving IDs so no stale reference
// lingers, and the ID counter is re-derived.
func restoreSnapshot(s State, snapshot []Tile) State {
	restoredIDs := idsOf(snapshot)
	s.Appearing = restoredIDs.Diff(idsOf(s.Tiles))
	s.Tiles = cloneTiles(snapshot)
	s.Selection = s.Selection.Intersect(restoredIDs)
	s.NextID = maxID(snapshot) + 1
	s.Animate = true
	return s
}
