package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/geom"
	"github.com/tilery/tilery/pkg/store"
)

func sized(t *testing.T, m *Model) *Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 25})
	return next.(*Model)
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelTypesLetters(t *testing.T) {
	m := sized(t, New(Options{}))

	for _, msg := range []tea.Msg{
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		keyMsg('h'),
		keyMsg('i'),
		tea.KeyMsg{Type: tea.KeyEnter},
	} {
		next, _ := m.Update(msg)
		m = next.(*Model)
	}

	tiles := m.Engine().State().Tiles
	if len(tiles) != 2 || tiles[0].Char != 'h' || tiles[1].Char != 'i' {
		t.Fatalf("typed board = %+v, want tiles h,i", tiles)
	}

	out := m.View()
	if !strings.Contains(out, "h") || !strings.Contains(out, "i") {
		t.Error("rendered view should show the letters")
	}
}

func TestModelMouseDragMovesTile(t *testing.T) {
	m := sized(t, New(Options{Tiles: []board.Tile{{ID: 1, Char: 'x', Offset: geom.Point{X: 0, Y: 0}}}}))

	// The tile's top-left is board (0,0) = cell (40,12); grab inside it.
	press := tea.MouseMsg{X: 42, Y: 13, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	motion := tea.MouseMsg{X: 48, Y: 15, Action: tea.MouseActionMotion}
	release := tea.MouseMsg{X: 48, Y: 15, Action: tea.MouseActionRelease}
	for _, msg := range []tea.Msg{press, motion, release} {
		next, _ := m.Update(msg)
		m = next.(*Model)
	}

	got := m.Engine().State().Tiles[0].Offset
	if got != (geom.Point{X: 6, Y: 2}) {
		t.Errorf("tile moved to %v, want (6,2)", got)
	}
}

func TestModelResizeReachesBoard(t *testing.T) {
	m := sized(t, New(Options{}))
	if w := m.Engine().State().Window; w != (geom.Dims{W: 80, H: 24}) {
		t.Errorf("board window = %v, want 80x24 (status bar excluded)", w)
	}
}

func TestModelQuitKeys(t *testing.T) {
	m := sized(t, New(Options{}))
	_, cmd := m.Update(keyMsg('q'))
	if cmd == nil {
		t.Error("q should quit outside composition")
	}

	// While composing, q is a letter.
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(*Model)
	next, cmd = m.Update(keyMsg('q'))
	m = next.(*Model)
	if cmd != nil {
		t.Error("q during composition should type, not quit")
	}
	if m.Engine().State().Composing == nil || m.Engine().State().Composing.Letters != "q" {
		t.Error("composition should hold the typed q")
	}
}

func TestModelAutosaveOnCommit(t *testing.T) {
	var mu struct {
		saved []string
	}
	done := make(chan struct{}, 1)
	d := store.NewDebouncer(5*time.Millisecond, func(data []byte) error {
		mu.saved = append(mu.saved, string(data))
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})
	defer d.Close()

	m := sized(t, New(Options{Autosave: d}))
	for _, msg := range []tea.Msg{
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		keyMsg('a'),
		tea.KeyMsg{Type: tea.KeyEnter},
	} {
		next, _ := m.Update(msg)
		m = next.(*Model)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("autosave never fired")
	}
	if len(mu.saved) == 0 || !strings.HasPrefix(mu.saved[0], "1!") {
		t.Errorf("autosave payload = %q, want a share string", mu.saved)
	}
}

func TestRenderHelpOverlay(t *testing.T) {
	m := sized(t, New(Options{}))
	next, _ := m.Update(keyMsg('?'))
	m = next.(*Model)

	out := m.View()
	if !strings.Contains(out, "shuffle") {
		t.Error("help overlay should list the bindings")
	}
}

func TestTouchToolbarTapStartsComposition(t *testing.T) {
	m := sized(t, New(Options{TouchUI: true}))

	// 25 rows with a 2-row footer: board 0-22, status 23, toolbar 24.
	if w := m.Engine().State().Window; w != (geom.Dims{W: 80, H: 23}) {
		t.Fatalf("board window = %v, want 80x23 with the toolbar on", w)
	}
	if !strings.Contains(m.View(), "[shuffle]") {
		t.Error("touch UI should render the toolbar")
	}

	tap := tea.MouseMsg{X: 1, Y: 24, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(tap)
	m = next.(*Model)
	if m.Engine().State().Composing == nil {
		t.Error("tapping [type] should start composition")
	}
}

func TestToolbarHitSpans(t *testing.T) {
	// "[type] [shuffle] ..." — brackets included, one space between items.
	if a, ok := toolbarHit(0); !ok {
		t.Fatal("column 0 should hit the first item")
	} else if _, isCompose := a.(board.StartCompose); !isCompose {
		t.Errorf("column 0 hit %T, want StartCompose", a)
	}
	if a, ok := toolbarHit(7); !ok {
		t.Fatal("column 7 should hit the second item")
	} else if _, isShuffle := a.(board.Shuffle); !isShuffle {
		t.Errorf("column 7 hit %T, want Shuffle", a)
	}
	if _, ok := toolbarHit(6); ok {
		t.Error("the gap between items should miss")
	}
}

func TestRenderZeroState(t *testing.T) {
	m := sized(t, New(Options{}))
	if !strings.Contains(m.View(), "press space") {
		t.Error("empty board should show the zero-state hint")
	}
}
