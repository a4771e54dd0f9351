package effect

import (
	"image"
	"math"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Swirl warps the face with a polar rotation that is strongest at the box
// center and fades to nothing at the box's diagonal-radius edge.
type Swirl struct{}

// Name implements Effect.
func (Swirl) Name() string { return IDSwirl }

// Apply implements Effect.
func (Swirl) Apply(dst *image.NRGBA, f region.Face, intensity int) {
	box := f.Box
	r := box.ClampRect(dst.Bounds())
	if r.Empty() {
		return
	}

	maxAngle := float64(intensity) / 100 * 4 * math.Pi // up to 720 degrees
	cx, cy := box.Center()
	diag := math.Hypot(box.W/2, box.H/2)
	if diag == 0 {
		return
	}

	src := cloneRegion(dst, r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			falloff := 1 - math.Hypot(dx, dy)/diag
			if falloff <= 0 {
				continue
			}
			a := maxAngle * falloff

			// Inverse-rotate the destination offset to find the source.
			sin, cos := math.Sincos(-a)
			sx := cx + dx*cos - dy*sin
			sy := cy + dx*sin + dy*cos

			ix := clampInt(int(sx), r.Min.X, r.Max.X-1)
			iy := clampInt(int(sy), r.Min.Y, r.Max.Y-1)
			dst.SetNRGBA(x, y, src.NRGBAAt(ix, iy))
		}
	}
}
