package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/geom"
)

// translateKey lowers a terminal key press onto the board's key action.
// Modifier prefixes (alt+, ctrl+) collapse onto the single Mod flag; the
// reducer's keymap does not distinguish them.
func translateKey(msg tea.KeyMsg) (board.KeyDown, bool) {
	key := msg.String()
	mod := false
	for {
		switch {
		case strings.HasPrefix(key, "alt+"):
			key = strings.TrimPrefix(key, "alt+")
			mod = true
		case strings.HasPrefix(key, "ctrl+"):
			key = strings.TrimPrefix(key, "ctrl+")
			mod = true
		default:
			if key == "" {
				return board.KeyDown{}, false
			}
			return board.KeyDown{Key: key, Mod: mod}, true
		}
	}
}

// translateMouse maps terminal mouse events onto pointer actions. The
// terminal has exactly one pointer: id 0, always primary. Cell coordinates
// are shifted into the board's center-origin system.
func translateMouse(msg tea.MouseMsg, window geom.Dims) (board.Action, bool) {
	point := geom.Point{
		X: float64(msg.X) - window.W/2,
		Y: float64(msg.Y) - window.H/2,
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil, false
		}
		return board.PointerDown{
			Point:   point,
			Pointer: 0,
			Primary: true,
			Mod:     msg.Alt || msg.Ctrl,
		}, true
	case tea.MouseActionMotion:
		return board.PointerMove{Point: point, Pointer: 0}, true
	case tea.MouseActionRelease:
		return board.PointerUp{Point: point, Pointer: 0}, true
	}
	return nil, false
}
