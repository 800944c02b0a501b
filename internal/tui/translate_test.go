package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/geom"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want board.KeyDown
	}{
		{"plain rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, board.KeyDown{Key: "a"}},
		{"shifted rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Z'}}, board.KeyDown{Key: "Z"}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, board.KeyDown{Key: " "}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, board.KeyDown{Key: "enter"}},
		{"escape", tea.KeyMsg{Type: tea.KeyEscape}, board.KeyDown{Key: "esc"}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, board.KeyDown{Key: "backspace"}},
		{"alt modifier", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, board.KeyDown{Key: "a", Mod: true}},
		{"ctrl modifier", tea.KeyMsg{Type: tea.KeyCtrlZ}, board.KeyDown{Key: "z", Mod: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tt.msg)
			if !ok {
				t.Fatal("translateKey rejected the key")
			}
			if got != tt.want {
				t.Errorf("translateKey = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTranslateMouseCoordinates(t *testing.T) {
	// An 80×24 board puts the center at cell (40, 12).
	window := geom.Dims{W: 80, H: 24}

	msg := tea.MouseMsg{X: 40, Y: 12, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	a, ok := translateMouse(msg, window)
	if !ok {
		t.Fatal("press not translated")
	}
	down, ok := a.(board.PointerDown)
	if !ok {
		t.Fatalf("press translated to %T", a)
	}
	if down.Point != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("center cell = %v, want origin", down.Point)
	}
	if !down.Primary || down.Pointer != 0 || down.Mod {
		t.Errorf("terminal pointer should be primary id 0 without mod, got %+v", down)
	}

	msg = tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion}
	a, _ = translateMouse(msg, window)
	move := a.(board.PointerMove)
	if move.Point != (geom.Point{X: -40, Y: -12}) {
		t.Errorf("top-left cell = %v, want (-40,-12)", move.Point)
	}
}

func TestTranslateMouseModifierAndButtons(t *testing.T) {
	window := geom.Dims{W: 80, H: 24}

	msg := tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Alt: true}
	a, _ := translateMouse(msg, window)
	if down := a.(board.PointerDown); !down.Mod {
		t.Error("alt press should set Mod")
	}

	msg = tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if _, ok := translateMouse(msg, window); ok {
		t.Error("right-button press should be ignored")
	}

	msg = tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionRelease}
	a, ok := translateMouse(msg, window)
	if !ok {
		t.Fatal("release not translated")
	}
	if _, isUp := a.(board.PointerUp); !isUp {
		t.Errorf("release translated to %T", a)
	}
}
