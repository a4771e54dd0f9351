package effect

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// cloneRegion copies the pixels of r from src into a fresh buffer that
// keeps the same coordinate space. Effects that read while writing (glitch,
// swirl) sample from the clone so destination writes never feed back.
func cloneRegion(src *image.NRGBA, r image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(r)
	draw.Draw(out, r, src, r.Min, draw.Src)
	return out
}

// inEllipse reports whether the pixel center (x+0.5, y+0.5) lies inside
// the ellipse centered at (cx, cy) with radii rx, ry.
func inEllipse(x, y int, cx, cy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (float64(x) + 0.5 - cx) / rx
	dy := (float64(y) + 0.5 - cy) / ry
	return dx*dx+dy*dy <= 1
}

// fillEllipse paints a solid ellipse, clamped to the canvas.
func fillEllipse(dst *image.NRGBA, cx, cy, rx, ry float64, c color.NRGBA) {
	b := region.Box{X: cx - rx, Y: cy - ry, W: 2 * rx, H: 2 * ry}
	r := b.ClampRect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if inEllipse(x, y, cx, cy, rx, ry) {
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}

// fillRect paints a solid rectangle, clamped to the canvas.
func fillRect(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.SetNRGBA(x, y, c)
		}
	}
}

// seedFor derives a deterministic RNG seed from the face box, so effects
// with random texture (glitch, redact) render identically for an unchanged
// face list. Two renders of the same photo must be pixel-identical.
func seedFor(b region.Box) int64 {
	h := int64(1469598103934665603) // FNV offset basis
	for _, v := range [4]int64{
		int64(math.Round(b.X * 16)),
		int64(math.Round(b.Y * 16)),
		int64(math.Round(b.W * 16)),
		int64(math.Round(b.H * 16)),
	} {
		h ^= v
		h *= 1099511628211
	}
	return h
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minDim(b region.Box) float64 {
	return math.Min(b.W, b.H)
}
