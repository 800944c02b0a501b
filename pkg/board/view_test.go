package board

import (
	"testing"

	"github.com/tilery/tilery/pkg/geom"
)

func TestViewMergesMovePreviews(t *testing.T) {
	s := reduce(t, testState(makeTile(1, 'a', 0, 0), makeTile(2, 'b', 50, 50)),
		PointerDown{Point: geom.Point{X: 5, Y: 5}, Pointer: 0, Primary: true},
		PointerMove{Point: geom.Point{X: 25, Y: 5}, Pointer: 0},
	)

	v := BuildView(s)
	if len(v.Tiles) != 2 {
		t.Fatalf("view has %d tiles, want 2", len(v.Tiles))
	}
	if v.Tiles[0].Offset != (geom.Point{X: 20, Y: 0}) {
		t.Errorf("view tile 1 at %v, want preview position (20,0)", v.Tiles[0].Offset)
	}
	if v.Tiles[1].Offset != (geom.Point{X: 50, Y: 50}) {
		t.Errorf("undragged tile moved in view: %v", v.Tiles[1].Offset)
	}
	// Canonical state untouched.
	if s.Tiles[0].Offset != (geom.Point{}) {
		t.Error("view construction must not commit previews")
	}
}

func TestViewAppendsComposeGhosts(t *testing.T) {
	s := reduce(t, testState(makeTile(1, 'a', 0, 0)), KeyDown{Key: " "}, KeyDown{Key: "x"})

	v := BuildView(s)
	if !v.Composing || v.ComposeText != "x" {
		t.Fatalf("view compose state wrong: composing=%v text=%q", v.Composing, v.ComposeText)
	}
	if len(v.Tiles) != 2 {
		t.Fatalf("view has %d tiles, want canonical + ghost", len(v.Tiles))
	}
	ghost := v.Tiles[1]
	if !ghost.Ghost || ghost.Char != 'x' {
		t.Errorf("last view tile should be the ghost preview, got %+v", ghost)
	}
}

func TestViewSelectionRectAndLiveSelection(t *testing.T) {
	s := reduce(t, testState(makeTile(1, 'a', 0, 0)),
		PointerDown{Point: geom.Point{X: -30, Y: -30}, Pointer: 0, Primary: true},
		PointerMove{Point: geom.Point{X: 15, Y: 15}, Pointer: 0},
	)

	v := BuildView(s)
	if v.SelectionRect == nil {
		t.Fatal("active box should surface a selection rect")
	}
	want := geom.BBox{MinX: -30, MaxX: 15, MinY: -30, MaxY: 15}
	if *v.SelectionRect != want {
		t.Errorf("rect = %v, want %v", *v.SelectionRect, want)
	}
	if !v.Selected.Has(1) {
		t.Error("live box overlap should show as selected")
	}
}

func TestViewDeselectingBoxSubtracts(t *testing.T) {
	s := testState(makeTile(1, 'a', 0, 0), makeTile(2, 'b', 50, 50))
	s.Selection = NewIDSet(1, 2)
	s = reduce(t, s,
		PointerDown{Point: geom.Point{X: 5, Y: 5}, Pointer: 0, Primary: true, Mod: true},
	)

	v := BuildView(s)
	if v.Selected.Has(1) {
		t.Error("deselecting box should subtract its tiles in the live view")
	}
	if !v.Selected.Has(2) {
		t.Error("tiles outside the box must stay selected")
	}
}
