package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/tilery/tilery/pkg/board"
)

const tileInteractionCSS = `
    .tile { transition: transform 0.15s ease; transform-origin: center; transform-box: fill-box; }
    .tile:hover { transform: scale(1.06); }`

// RenderSVG renders tiles as a standalone SVG document. Ghost tiles are
// previews and are never exported.
func RenderSVG(tiles []board.Tile, opts ...Option) []byte {
	r := newRenderer(opts...)
	sc := r.buildScene(tiles)
	background, fill, stroke, text := r.colors()

	w := sc.width * r.scale
	h := sc.height * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		sc.width, sc.height, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", background)

	for _, t := range sc.tiles {
		renderTile(&buf, t, r, fill, stroke, text)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTile(buf *bytes.Buffer, t board.Tile, r renderer, fill, stroke, text string) {
	d := r.metrics.Tile
	fmt.Fprintf(buf, `  <g class="tile" id="tile-%d">`+"\n", t.ID)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
		t.Offset.X, t.Offset.Y, d.W, d.H, d.W/8, fill, stroke)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="monospace" font-size="%.1f" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		t.Offset.X+d.W/2, t.Offset.Y+d.H/2, d.H*0.55, text, html.EscapeString(string(t.Char)))
	buf.WriteString("  </g>\n")
}
