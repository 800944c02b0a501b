// Package layout computes tile placements for the board: a wrapping row
// layout used when new tiles are added (and for the "line" arrangement), and
// a circular layout used as the alternate arrangement. All functions are pure
// and deterministic; callers that want variety permute the returned slots
// themselves.
package layout

import (
	"math"

	"github.com/tilery/tilery/pkg/geom"
)

// Metrics describes the footprint of a single tile. The interaction core and
// every layout function share one Metrics value so that cell-based frontends
// (the TUI) and pixel-based ones (exporters) agree on geometry.
type Metrics struct {
	Tile geom.Dims // size of one tile
	Gap  float64   // spacing between adjacent tiles
}

// DefaultMetrics is the pixel-oriented default: square tiles with a small gap.
var DefaultMetrics = Metrics{Tile: geom.Dims{W: 64, H: 64}, Gap: 8}

// Mode selects an arrangement shape.
type Mode int

const (
	// ModeLine packs tiles into centered, wrapping rows.
	ModeLine Mode = iota
	// ModeCircle places tiles evenly around a circle.
	ModeCircle
)

// String returns the mode name for logs and CLI output.
func (m Mode) String() string {
	if m == ModeCircle {
		return "circle"
	}
	return "line"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeLine {
		return ModeCircle
	}
	return ModeLine
}

// PackRows returns n tile offsets (top-left corners) packed into rows centered
// on anchor. Candidate row widths are tried from n tiles per row down to 1;
// the widest row that fits horizontally inside bounds wins, with a single
// column as the fallback when nothing fits. Slots are assigned row-major, the
// whole block is clamped into bounds as one shape, and each offset is derived
// from the clamped block origin.
func PackRows(n int, anchor geom.Point, bounds geom.BBox, m Metrics) []geom.Point {
	if n <= 0 {
		return nil
	}

	perRow := 1
	for candidate := n; candidate >= 1; candidate-- {
		w := rowWidth(candidate, m)
		left := anchor.X - w/2
		if left >= bounds.MinX && left+w <= bounds.MaxX {
			perRow = candidate
			break
		}
	}

	rows := (n + perRow - 1) / perRow
	block := geom.Dims{W: rowWidth(perRow, m), H: float64(rows)*m.Tile.H + float64(rows-1)*m.Gap}
	origin := geom.Sub(anchor, geom.Point{X: block.W / 2, Y: block.H / 2})
	origin = geom.ClampTopLeft(origin, block, bounds)

	out := make([]geom.Point, n)
	for i := range out {
		row := i / perRow
		col := i % perRow
		out[i] = geom.Add(origin, geom.Point{
			X: float64(col) * (m.Tile.W + m.Gap),
			Y: float64(row) * (m.Tile.H + m.Gap),
		})
	}
	return out
}

// Circle returns n tile offsets placed at equal angular spacing around
// centroid. The ring circumference grows with the tile count so neighbors
// do not crowd. The circle's bounding square is clamped into bounds first
// (shifting the centroid by the clamp delta), then each individual offset is
// clamped again: a boundary can admit the circle's box while still cutting
// off points near its corners.
func Circle(n int, centroid geom.Point, bounds geom.BBox, m Metrics) []geom.Point {
	if n <= 0 {
		return nil
	}

	circumference := float64(n) * m.Tile.W * 1.5
	radius := circumference / (2 * math.Pi)

	// Bounding square of the ring of tile boxes, centered on the centroid.
	side := 2*radius + m.Tile.W
	box := geom.Dims{W: side, H: side}
	topLeft := geom.Sub(centroid, geom.Point{X: side / 2, Y: side / 2})
	clamped := geom.ClampTopLeft(topLeft, box, bounds)
	centroid = geom.Add(centroid, geom.Sub(clamped, topLeft))

	out := make([]geom.Point, n)
	half := geom.Point{X: m.Tile.W / 2, Y: m.Tile.H / 2}
	for i := range out {
		angle := 2 * math.Pi * float64(i) / float64(n)
		center := geom.Add(centroid, geom.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)})
		out[i] = geom.ClampTopLeft(geom.Sub(center, half), m.Tile, bounds)
	}
	return out
}

// Arrange dispatches to the layout for the given mode.
func Arrange(mode Mode, n int, centroid geom.Point, bounds geom.BBox, m Metrics) []geom.Point {
	if mode == ModeCircle {
		return Circle(n, centroid, bounds, m)
	}
	return PackRows(n, centroid, bounds, m)
}

// rowWidth is the horizontal extent of a row of perRow tiles.
func rowWidth(perRow int, m Metrics) float64 {
	return float64(perRow)*m.Tile.W + float64(perRow-1)*m.Gap
}
