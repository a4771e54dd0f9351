package effect

import (
	"image"
	"image/color"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// fillScale grows the covering ellipse slightly past the box so no skin
// shows at the corners.
const fillScale = 1.05

// Blackout covers the face with an opaque black ellipse.
type Blackout struct{}

// Name implements Effect.
func (Blackout) Name() string { return IDBlackout }

// Apply implements Effect.
func (Blackout) Apply(dst *image.NRGBA, f region.Face, _ int) {
	cx, cy := f.Box.Center()
	fillEllipse(dst, cx, cy, fillScale*f.Box.W/2, fillScale*f.Box.H/2, color.NRGBA{A: 255})
}

// Solid covers the face with an opaque colored ellipse.
type Solid struct {
	Color color.NRGBA
}

// Name implements Effect.
func (Solid) Name() string { return IDSolid }

// Apply implements Effect.
func (s Solid) Apply(dst *image.NRGBA, f region.Face, _ int) {
	c := s.Color
	if c.A == 0 {
		c = color.NRGBA{R: 255, A: 255} // default opaque red
	}
	cx, cy := f.Box.Center()
	fillEllipse(dst, cx, cy, fillScale*f.Box.W/2, fillScale*f.Box.H/2, c)
}
