package effect

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Redact stamps a flat near-black rectangle over the box with faint
// scan-lines and speckled edges for a photocopied-redaction texture. The
// style is fixed; intensity is ignored.
type Redact struct{}

// Name implements Effect.
func (Redact) Name() string { return IDRedact }

const (
	redactPad      = 4
	redactLineStep = 3
	redactSpeckles = 15
)

// Apply implements Effect.
func (Redact) Apply(dst *image.NRGBA, f region.Face, _ int) {
	r := f.Box.Pad(redactPad).ClampRect(dst.Bounds())
	if r.Empty() {
		return
	}

	base := color.NRGBA{R: 16, G: 16, B: 18, A: 255}
	line := color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	speck := color.NRGBA{R: 5, G: 5, B: 6, A: 255}

	fillRect(dst, r, base)

	for y := r.Min.Y; y < r.Max.Y; y += redactLineStep {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetNRGBA(x, y, line)
		}
	}

	// Small dark speckles along the top and bottom edges.
	rng := rand.New(rand.NewSource(seedFor(f.Box)))
	for i := 0; i < redactSpeckles; i++ {
		x := r.Min.X + rng.Intn(r.Dx())
		y := r.Min.Y + rng.Intn(3)
		if i%2 == 1 {
			y = r.Max.Y - 1 - rng.Intn(3)
		}
		y = clampInt(y, r.Min.Y, r.Max.Y-1)
		dst.SetNRGBA(x, y, speck)
		if x+1 < r.Max.X {
			dst.SetNRGBA(x+1, y, speck)
		}
	}
}
