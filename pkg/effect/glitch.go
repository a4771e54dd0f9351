package effect

import (
	"image"
	"math"
	"math/rand"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Glitch smears the face with row-wise horizontal shifts plus a handful of
// red-channel separation bands. Texture randomness is seeded from the face
// box so an unchanged face list renders identically.
type Glitch struct{}

// Name implements Effect.
func (Glitch) Name() string { return IDGlitch }

// Apply implements Effect.
func (Glitch) Apply(dst *image.NRGBA, f region.Face, intensity int) {
	box := f.Box
	r := box.ClampRect(dst.Bounds())
	if r.Empty() {
		return
	}

	strength := float64(intensity) / 100
	rng := rand.New(rand.NewSource(seedFor(box)))
	src := cloneRegion(dst, r)
	maxOff := 0.15 * box.W * strength

	// Row shifts. Source columns clamp to the visible region edges, no
	// wraparound.
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if rng.Float64() >= 0.3*strength {
			continue
		}
		off := int(math.Round((rng.Float64()*2 - 1) * maxOff))
		for x := r.Min.X; x < r.Max.X; x++ {
			sx := clampInt(x+off, r.Min.X, r.Max.X-1)
			dst.SetNRGBA(x, y, src.NRGBAAt(sx, y))
		}
	}

	// Channel-separation bands: replace only the red channel with a
	// horizontally shifted sample.
	bands := 3 + int(math.Round(8*strength))
	maxBandH := int(math.Max(1, 0.08*box.H))
	for i := 0; i < bands; i++ {
		bandH := 1 + rng.Intn(maxBandH)
		bandY := r.Min.Y + rng.Intn(r.Dy())
		off := int(math.Round((rng.Float64()*2 - 1) * maxOff))

		for y := bandY; y < bandY+bandH && y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				sx := clampInt(x+off, r.Min.X, r.Max.X-1)
				px := dst.NRGBAAt(x, y)
				px.R = dst.NRGBAAt(sx, y).R
				dst.SetNRGBA(x, y, px)
			}
		}
	}
}
