package region

import (
	"image"
	"math"
)

// Box is an axis-aligned rectangle in full-resolution image coordinates.
// Width and Height are always non-negative.
type Box struct {
	X, Y, W, H float64
}

// NewBox returns a normalized box: a negative width or height flips the
// corresponding origin so the result always has non-negative extents.
func NewBox(x, y, w, h float64) Box {
	if w < 0 {
		x += w
		w = -w
	}
	if h < 0 {
		y += h
		h = -h
	}
	return Box{X: x, Y: y, W: w, H: h}
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Area returns the area of the box.
func (b Box) Area() float64 {
	return b.W * b.H
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Translate returns the box moved by (dx, dy).
func (b Box) Translate(dx, dy float64) Box {
	return Box{X: b.X + dx, Y: b.Y + dy, W: b.W, H: b.H}
}

// Scale returns the box with all coordinates multiplied by f. Used to map
// between the downscaled detection frame and full resolution.
func (b Box) Scale(f float64) Box {
	return Box{X: b.X * f, Y: b.Y * f, W: b.W * f, H: b.H * f}
}

// Pad returns the box grown by p on every side.
func (b Box) Pad(p float64) Box {
	return Box{X: b.X - p, Y: b.Y - p, W: b.W + 2*p, H: b.H + 2*p}
}

// Rect converts the box to an image.Rectangle, rounding outward enough to
// cover the fractional extent.
func (b Box) Rect() image.Rectangle {
	x0 := int(math.Floor(b.X))
	y0 := int(math.Floor(b.Y))
	x1 := int(math.Ceil(b.X + b.W))
	y1 := int(math.Ceil(b.Y + b.H))
	return image.Rect(x0, y0, x1, y1)
}

// ClampRect intersects the box with the given canvas bounds and returns the
// integer pixel rectangle that effects may read and write. An empty
// rectangle means the effect is a no-op.
func (b Box) ClampRect(bounds image.Rectangle) image.Rectangle {
	return b.Rect().Intersect(bounds)
}

// Point is a single landmark coordinate in full-resolution space.
type Point struct {
	X, Y float64
}

// ScalePoints multiplies every point by f, returning a fresh slice.
func ScalePoints(pts []Point, f float64) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X * f, Y: p.Y * f}
	}
	return out
}
