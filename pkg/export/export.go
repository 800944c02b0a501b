// Package export renders a board to static images for sharing outside the
// terminal. SVG output is hand-assembled markup; PNG output rasterizes the
// same scene with a drawing context and an embedded monospace font.
package export

import (
	"github.com/tilery/tilery/pkg/board"
	"github.com/tilery/tilery/pkg/geom"
	"github.com/tilery/tilery/pkg/layout"
)

// Option configures a render.
type Option func(*renderer)

type renderer struct {
	metrics layout.Metrics
	padding float64
	scale   float64
	dark    bool
}

// WithMetrics overrides the tile dimensions used for the render.
func WithMetrics(m layout.Metrics) Option { return func(r *renderer) { r.metrics = m } }

// WithPadding sets the whitespace border around the board content.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// WithScale multiplies the output dimensions. Useful for crisp PNGs.
func WithScale(s float64) Option { return func(r *renderer) { r.scale = s } }

// WithDark renders light tiles on a dark background.
func WithDark() Option { return func(r *renderer) { r.dark = true } }

func newRenderer(opts ...Option) renderer {
	r := renderer{
		metrics: layout.DefaultMetrics,
		padding: 24,
		scale:   1,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// scene is the resolved geometry of a render: tiles shifted into a
// positive-coordinate frame.
type scene struct {
	tiles  []board.Tile
	width  float64
	height float64
}

func (r *renderer) buildScene(tiles []board.Tile) scene {
	visible := make([]board.Tile, 0, len(tiles))
	for _, t := range tiles {
		if !t.Ghost {
			visible = append(visible, t)
		}
	}

	if len(visible) == 0 {
		side := r.metrics.Tile.W + 2*r.padding
		return scene{width: side, height: side}
	}

	corners := make([]geom.Point, 0, 2*len(visible))
	for _, t := range visible {
		tl, br := geom.Corners(t.Box(r.metrics.Tile))
		corners = append(corners, tl, br)
	}
	frame := geom.Expand(geom.BoundingBox(corners...), r.padding)

	shifted := make([]board.Tile, len(visible))
	for i, t := range visible {
		t.Offset = geom.Sub(t.Offset, geom.Point{X: frame.MinX, Y: frame.MinY})
		shifted[i] = t
	}
	size := geom.Size(frame)
	return scene{tiles: shifted, width: size.W, height: size.H}
}

func (r *renderer) colors() (background, fill, stroke, text string) {
	if r.dark {
		return "#1a1b26", "#414868", "#7aa2f7", "#c0caf5"
	}
	return "#ffffff", "#f1f2f6", "#2f3542", "#2f3542"
}
