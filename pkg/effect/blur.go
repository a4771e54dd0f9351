package effect

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Blur softens an elliptical area inscribed in the face box. The blur
// radius scales with the face size so small faces in crowded photos are
// not over- or under-blurred.
type Blur struct{}

// Name implements Effect.
func (Blur) Name() string { return IDBlur }

// Apply implements Effect.
func (Blur) Apply(dst *image.NRGBA, f region.Face, intensity int) {
	box := f.Box
	pad := math.Min(0.05*minDim(box), 20)
	padded := box.Pad(pad)

	r := padded.ClampRect(dst.Bounds())
	if r.Empty() {
		return
	}

	radius := math.Max(2, math.Round(float64(intensity)/100*minDim(box)*0.07))
	blurred := imaging.Blur(imaging.Crop(dst, r), radius)

	cx, cy := padded.Center()
	rx, ry := padded.W/2, padded.H/2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if inEllipse(x, y, cx, cy, rx, ry) {
				dst.SetNRGBA(x, y, blurred.NRGBAAt(x-r.Min.X, y-r.Min.Y))
			}
		}
	}
}
