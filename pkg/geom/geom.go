// Package geom provides the vector and bounding-box math used by the board
// engine and layout algorithms. All types are plain values; all functions are
// pure. Coordinates are float64 in logical units (the TUI maps terminal cells
// onto them 1:1, exporters scale them to pixels).
package geom

import "math"

// Point is a position or offset in logical units.
type Point struct {
	X float64
	Y float64
}

// Dims is a width/height pair.
type Dims struct {
	W float64
	H float64
}

// BBox is an axis-aligned bounding box. A well-formed box satisfies
// MinX <= MaxX and MinY <= MaxY.
type BBox struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// Add returns the component-wise sum of the given points.
// With no arguments it returns the zero point.
func Add(ps ...Point) Point {
	var out Point
	for _, p := range ps {
		out.X += p.X
		out.Y += p.Y
	}
	return out
}

// Sub returns a - b.
func Sub(a, b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale multiplies both components of p by f.
func Scale(p Point, f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Round returns p with each component rounded to the nearest integer.
func Round(p Point) Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Centroid returns the arithmetic mean of the given points.
// The centroid of no points is the zero point.
func Centroid(ps []Point) Point {
	if len(ps) == 0 {
		return Point{}
	}
	return Scale(Add(ps...), 1/float64(len(ps)))
}

// BoundingBox returns the smallest box containing every given point.
// With no arguments it returns the zero box.
func BoundingBox(ps ...Point) BBox {
	if len(ps) == 0 {
		return BBox{}
	}
	b := BBox{MinX: ps[0].X, MaxX: ps[0].X, MinY: ps[0].Y, MaxY: ps[0].Y}
	for _, p := range ps[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

// FromTopLeft returns the box occupied by a shape of size d whose top-left
// corner is at p.
func FromTopLeft(p Point, d Dims) BBox {
	return BBox{MinX: p.X, MaxX: p.X + d.W, MinY: p.Y, MaxY: p.Y + d.H}
}

// Corners returns the top-left and bottom-right corners of b.
func Corners(b BBox) (topLeft, bottomRight Point) {
	return Point{X: b.MinX, Y: b.MinY}, Point{X: b.MaxX, Y: b.MaxY}
}

// Size returns the dimensions of b.
func Size(b BBox) Dims {
	return Dims{W: b.MaxX - b.MinX, H: b.MaxY - b.MinY}
}

// Translate shifts b by the offset d.
func Translate(b BBox, d Point) BBox {
	return BBox{MinX: b.MinX + d.X, MaxX: b.MaxX + d.X, MinY: b.MinY + d.Y, MaxY: b.MaxY + d.Y}
}

// Expand grows b by pad on every side. Negative pad shrinks it.
func Expand(b BBox, pad float64) BBox {
	return BBox{MinX: b.MinX - pad, MaxX: b.MaxX + pad, MinY: b.MinY - pad, MaxY: b.MaxY + pad}
}

// Contains reports whether p lies inside b, edges included.
func Contains(b BBox, p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Intersects reports whether a and b overlap, edges included.
func Intersects(a, b BBox) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX && a.MinY <= b.MaxY && b.MinY <= a.MaxY
}

// ClampTopLeft constrains the top-left corner of a shape of size d so the
// shape lies inside bounds. Each axis is handled independently:
//
//   - If the shape is larger than the bounds on that axis, the coordinate is
//     left untouched. A group selection wider than the window must still be
//     movable, so an unsatisfiable axis is simply not constrained.
//   - Otherwise the near edge snaps to the boundary minimum, or the far edge
//     snaps to the boundary maximum, whichever (if either) is violated.
//
// The function is idempotent: an in-bounds shape comes back unchanged.
func ClampTopLeft(topLeft Point, d Dims, bounds BBox) Point {
	topLeft.X = clampAxis(topLeft.X, d.W, bounds.MinX, bounds.MaxX)
	topLeft.Y = clampAxis(topLeft.Y, d.H, bounds.MinY, bounds.MaxY)
	return topLeft
}

func clampAxis(near, dim, lo, hi float64) float64 {
	if dim > hi-lo {
		return near
	}
	if near < lo {
		return lo
	}
	if near+dim > hi {
		return hi - dim
	}
	return near
}
