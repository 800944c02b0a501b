package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/geom"
)

func sampleTiles() []board.Tile {
	return []board.Tile{
		{ID: 1, Char: 'g', Offset: geom.Point{X: -72, Y: 0}},
		{ID: 2, Char: 'o', Offset: geom.Point{X: 0, Y: 0}},
	}
}

func TestRenderSVGStructure(t *testing.T) {
	out := string(RenderSVG(sampleTiles()))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("output should end with </svg>")
	}
	for _, want := range []string{`id="tile-1"`, `id="tile-2"`, ">g</text>", ">o</text>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSVGSkipsGhosts(t *testing.T) {
	tiles := append(sampleTiles(), board.Tile{ID: 3, Char: 'x', Ghost: true})
	out := string(RenderSVG(tiles))
	if strings.Contains(out, `id="tile-3"`) {
		t.Error("ghost tile should not be exported")
	}
}

func TestRenderSVGEscapesMarkup(t *testing.T) {
	out := string(RenderSVG([]board.Tile{{ID: 1, Char: '<'}}))
	if strings.Contains(out, "><</text>") {
		t.Error("tile character should be escaped")
	}
	if !strings.Contains(out, "&lt;") {
		t.Error("expected &lt; in output")
	}
}

func TestRenderSVGEmptyBoard(t *testing.T) {
	out := string(RenderSVG(nil))
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("empty board should still render a valid document")
	}
}

func TestRenderSVGDarkPalette(t *testing.T) {
	light := string(RenderSVG(sampleTiles()))
	dark := string(RenderSVG(sampleTiles(), WithDark()))
	if light == dark {
		t.Error("dark option should change the palette")
	}
	if !strings.Contains(dark, "#1a1b26") {
		t.Error("dark render should use the dark background")
	}
}

func TestRenderPNGDecodes(t *testing.T) {
	data, err := RenderPNG(sampleTiles())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}

	// Two 64px tiles with a gap, plus 24px padding on each side.
	bounds := img.Bounds()
	if bounds.Dx() < 100 || bounds.Dy() < 50 {
		t.Errorf("image %dx%d is implausibly small", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderPNGScale(t *testing.T) {
	small, err := RenderPNG(sampleTiles())
	if err != nil {
		t.Fatal(err)
	}
	big, err := RenderPNG(sampleTiles(), WithScale(2))
	if err != nil {
		t.Fatal(err)
	}

	smallImg, _ := png.Decode(bytes.NewReader(small))
	bigImg, _ := png.Decode(bytes.NewReader(big))
	if bigImg.Bounds().Dx() != 2*smallImg.Bounds().Dx() {
		t.Errorf("scale 2 width = %d, want %d", bigImg.Bounds().Dx(), 2*smallImg.Bounds().Dx())
	}
}
