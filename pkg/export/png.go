package export

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/errors"
)

// RenderPNG rasterizes tiles into a PNG. Ghost tiles are skipped, matching
// the SVG exporter.
func RenderPNG(tiles []board.Tile, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	sc := r.buildScene(tiles)
	background, fill, stroke, text := r.colors()

	dc := gg.NewContext(int(sc.width*r.scale), int(sc.height*r.scale))
	dc.Scale(r.scale, r.scale)
	dc.SetColor(parseHex(background))
	dc.Clear()

	face, err := monoFace(r.metrics.Tile.H * 0.55)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	d := r.metrics.Tile
	for _, t := range sc.tiles {
		dc.SetColor(parseHex(fill))
		dc.DrawRoundedRectangle(t.Offset.X, t.Offset.Y, d.W, d.H, d.W/8)
		dc.FillPreserve()
		dc.SetColor(parseHex(stroke))
		dc.SetLineWidth(2)
		dc.Stroke()

		dc.SetColor(parseHex(text))
		dc.DrawStringAnchored(string(t.Char), t.Offset.X+d.W/2, t.Offset.Y+d.H/2, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding PNG")
	}
	return buf.Bytes(), nil
}

func monoFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing embedded font")
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// parseHex converts a "#rrggbb" string to a color. Inputs are the package's
// own palette constants, so parse failures cannot happen.
func parseHex(s string) color.Color {
	var r, g, b uint8
	fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
