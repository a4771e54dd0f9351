package effect

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Sticker covers the face with a single procedurally drawn glyph centered
// in the box. Glyphs come from a fixed palette; an unknown or empty id
// selects the first entry.
type Sticker struct {
	Glyph string
}

// Sticker glyph identifiers.
const (
	GlyphSmiley  = "smiley"
	GlyphShades  = "shades"
	GlyphNeutral = "neutral"
)

// Glyphs lists the sticker palette in display order.
func Glyphs() []string {
	return []string{GlyphSmiley, GlyphShades, GlyphNeutral}
}

// Name implements Effect.
func (Sticker) Name() string { return IDEmoji }

// Apply implements Effect.
func (s Sticker) Apply(dst *image.NRGBA, f region.Face, intensity int) {
	box := f.Box
	size := math.Max(box.W, box.H) * (0.6 + float64(intensity)/100*0.8)
	px := int(math.Round(size))
	if px < 2 {
		return
	}

	glyph := s.Glyph
	switch glyph {
	case GlyphSmiley, GlyphShades, GlyphNeutral:
	default:
		glyph = Glyphs()[0]
	}

	sprite := renderGlyph(glyph, px)

	cx, cy := box.Center()
	off := image.Pt(int(math.Round(cx-size/2)), int(math.Round(cy-size/2)))
	target := sprite.Bounds().Add(off)
	draw.Draw(dst, target, sprite, sprite.Bounds().Min, draw.Over)
}

// renderGlyph rasterizes one palette glyph at the given edge length.
func renderGlyph(glyph string, px int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, px, px))
	r := float64(px) / 2
	cx, cy := r, r

	face := color.NRGBA{R: 255, G: 204, B: 51, A: 255}
	ink := color.NRGBA{R: 51, G: 34, B: 0, A: 255}

	fillEllipse(img, cx, cy, r*0.98, r*0.98, face)

	switch glyph {
	case GlyphShades:
		// One band across both eyes.
		band := region.Box{X: cx - 0.78*r, Y: cy - 0.45*r, W: 1.56 * r, H: 0.40 * r}
		fillRect(img, band.ClampRect(img.Bounds()), ink)
		mouthArc(img, cx, cy, r, ink)
	case GlyphNeutral:
		eyes(img, cx, cy, r, ink)
		line := region.Box{X: cx - 0.4*r, Y: cy + 0.38*r, W: 0.8 * r, H: math.Max(1, 0.08*r)}
		fillRect(img, line.ClampRect(img.Bounds()), ink)
	default: // smiley
		eyes(img, cx, cy, r, ink)
		mouthArc(img, cx, cy, r, ink)
	}
	return img
}

func eyes(img *image.NRGBA, cx, cy, r float64, ink color.NRGBA) {
	fillEllipse(img, cx-0.35*r, cy-0.28*r, 0.11*r, 0.15*r, ink)
	fillEllipse(img, cx+0.35*r, cy-0.28*r, 0.11*r, 0.15*r, ink)
}

// mouthArc draws the lower arc of a ring as a smile.
func mouthArc(img *image.NRGBA, cx, cy, r float64, ink color.NRGBA) {
	inner, outer := 0.48*r, 0.62*r
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			d := math.Hypot(dx, dy)
			if d >= inner && d <= outer && dy > 0.18*r {
				img.SetNRGBA(x, y, ink)
			}
		}
	}
}
