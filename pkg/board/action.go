package board

import "github.com/tilery/tilery/pkg/geom"

// Action is the closed set of inputs the reducer understands. The interface
// is sealed by the unexported marker method: no other package can add a
// variant, so the reducer's type switch covers the whole protocol and its
// default arm is unreachable. Adding a variant here without teaching the
// reducer about it trips that arm immediately.
type Action interface{ isAction() }

// KeyDown is a raw key press. Key is the key identity ("a", "enter",
// "backspace", "esc", " ", ...); Mod reports whether a modifier (ctrl/cmd/alt)
// was held. The reducer owns the keymap and lowers key presses onto the named
// actions below.
type KeyDown struct {
	Key string
	Mod bool
}

// PointerDown reports a pointer touching down at a board point. Primary marks
// the primary pointer (the mouse, or the first touch); Mod reports a held
// modifier, which turns the gesture into a selection box.
type PointerDown struct {
	Point   geom.Point
	Pointer PointerID
	Primary bool
	Mod     bool
}

// PointerMove reports pointer motion.
type PointerMove struct {
	Point   geom.Point
	Pointer PointerID
}

// PointerUp reports a pointer lifting, finalizing whatever gesture that
// pointer was driving.
type PointerUp struct {
	Point   geom.Point
	Pointer PointerID
}

// Resize reports a new window size. Resizing re-clamps every tile into the
// new bounds without touching history: it is a non-semantic transition.
type Resize struct {
	Window geom.Dims
}

// StartCompose enters tile-composition mode with empty text, anchored at the
// last known pointer position.
type StartCompose struct{}

// SetComposeText replaces the composition text wholesale.
type SetComposeText struct {
	Text string
}

// ComposeBackspace removes the last composed character; on empty text it
// cancels composition.
type ComposeBackspace struct{}

// CancelCompose leaves composition mode, discarding the preview.
type CancelCompose struct{}

// CommitCompose appends the previewed tiles to the board. Empty text reduces
// to a cancel.
type CommitCompose struct{}

// AddFromPrompt adds one tile per character of Text, laid out at the board
// center. It is the non-interactive twin of the compose flow, used by dialog
// prompts and the headless CLI.
type AddFromPrompt struct {
	Text string
}

// SelectAll selects every tile.
type SelectAll struct{}

// Shuffle randomly permutes the offsets of the selected tiles (all tiles when
// nothing is selected).
type Shuffle struct{}

// Arrange lays the selected tiles (all tiles when nothing is selected) out in
// a line, or — when invoked again on the same selection of three or more
// tiles — alternates between line and circle.
type Arrange struct{}

// DeleteSelection removes the selected tiles. With nothing selected it is a
// no-op; confirmation prompts are the frontend's business.
type DeleteSelection struct{}

// Undo restores the previous tile snapshot.
type Undo struct{}

// Redo reapplies the last undone snapshot.
type Redo struct{}

// SetTouchUI toggles the touch-oriented UI, which also widens the hit-test
// padding around tiles.
type SetTouchUI struct {
	Enabled bool
}

// SetHelpVisible shows or hides the help overlay.
type SetHelpVisible struct {
	Visible bool
}

func (KeyDown) isAction()          {}
func (PointerDown) isAction()      {}
func (PointerMove) isAction()      {}
func (PointerUp) isAction()        {}
func (Resize) isAction()           {}
func (StartCompose) isAction()     {}
func (SetComposeText) isAction()   {}
func (ComposeBackspace) isAction() {}
func (CancelCompose) isAction()    {}
func (CommitCompose) isAction()    {}
func (AddFromPrompt) isAction()    {}
func (SelectAll) isAction()        {}
func (Shuffle) isAction()          {}
func (Arrange) isAction()          {}
func (DeleteSelection) isAction()  {}
func (Undo) isAction()             {}
func (Redo) isAction()             {}
func (SetTouchUI) isAction()       {}
func (SetHelpVisible) isAction()   {}
