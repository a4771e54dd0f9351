package effect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// gradient builds a test canvas with enough horizontal and vertical
// variation that any shift, warp or fill is visible.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7 % 256),
				G: uint8(y * 7 % 256),
				B: uint8((x + y) * 3 % 256),
				A: 255,
			})
		}
	}
	return img
}

func clonePix(img *image.NRGBA) []uint8 {
	out := make([]uint8, len(img.Pix))
	copy(out, img.Pix)
	return out
}

func TestForIDFallsBackToBlur(t *testing.T) {
	assert.Equal(t, IDBlur, ForID("no-such-effect", Options{}).Name())
	assert.Equal(t, IDBlur, ForID("", Options{}).Name())
	for _, id := range IDs() {
		assert.Equal(t, id, ForID(id, Options{}).Name(), "id %s must dispatch to itself", id)
	}
}

func TestEffectsAreDeterministic(t *testing.T) {
	// Rendering the same region twice must be pixel-identical, including
	// the effects with random texture.
	face := region.Face{ID: "f", Box: region.Box{X: 20, Y: 20, W: 60, H: 60}}
	for _, id := range IDs() {
		t.Run(id, func(t *testing.T) {
			a := gradient(120, 120)
			b := gradient(120, 120)
			Apply(a, face, id, 70, Options{})
			Apply(b, face, id, 70, Options{})
			assert.Equal(t, a.Pix, b.Pix)
		})
	}
}

func TestEffectsStayInsidePaddedBox(t *testing.T) {
	// No effect may touch pixels outside the box expanded by its
	// documented padding. The emoji sticker is excluded: its documented
	// geometry intentionally overflows the box at high intensity.
	box := region.Box{X: 60, Y: 60, W: 80, H: 80}
	face := region.Face{ID: "f", Box: box}

	pads := map[string]float64{
		IDBlur:       20, // min(5% of min dim, 20)
		IDPixelate:   0,
		IDEyeBar:     0,
		IDBlackout:   0.05 * 40, // ellipse 1.05x half-dims
		IDSolid:      0.05 * 40,
		IDGlitch:     0,
		IDSwirl:      0,
		IDSilhouette: 0.15 * 40,
		IDRedact:     4,
	}

	for id, pad := range pads {
		t.Run(id, func(t *testing.T) {
			img := gradient(200, 200)
			before := clonePix(img)
			Apply(img, face, id, 100, Options{})

			allowed := box.Pad(pad + 1).Rect() // +1 for pixel-center rounding
			b := img.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					if image.Pt(x, y).In(allowed) {
						continue
					}
					i := img.PixOffset(x, y)
					require.Equal(t, before[i:i+4], []uint8(img.Pix[i:i+4]),
						"pixel (%d,%d) outside allowed region was modified", x, y)
				}
			}
		})
	}
}

func TestPixelateMinimumBlock(t *testing.T) {
	// Intensity 0 on a 40x40 box must yield the documented floor of 2.
	box := region.Box{X: 0, Y: 0, W: 40, H: 40}
	assert.Equal(t, 2, Pixelate{}.BlockSize(box, 0))

	img := gradient(40, 40)
	Apply(img, region.Face{ID: "f", Box: box}, IDPixelate, 0, Options{})

	// Blocky: 2x2 cells are uniform.
	assert.Equal(t, img.NRGBAAt(20, 20), img.NRGBAAt(21, 20))
	assert.Equal(t, img.NRGBAAt(20, 20), img.NRGBAAt(20, 21))
	assert.Equal(t, img.NRGBAAt(20, 20), img.NRGBAAt(21, 21))
	// But not degenerate: the region is not one flat color.
	assert.NotEqual(t, img.NRGBAAt(20, 20), img.NRGBAAt(14, 26))
}

func TestPixelateBlockGrowsWithIntensity(t *testing.T) {
	box := region.Box{X: 0, Y: 0, W: 100, H: 100}
	low := Pixelate{}.BlockSize(box, 10)
	high := Pixelate{}.BlockSize(box, 100)
	assert.Greater(t, high, low)
	assert.Equal(t, 12, high) // round(100/100 * max(4, 10)) + 2
}

func TestGlitchClampsOutOfBoundsBox(t *testing.T) {
	// Half the box hangs off the right edge: only the in-bounds portion
	// may change, and nothing panics.
	img := gradient(100, 100)
	before := clonePix(img)
	box := region.Box{X: 80, Y: 10, W: 40, H: 40}

	Apply(img, region.Face{ID: "f", Box: box}, IDGlitch, 100, Options{})

	clamped := box.ClampRect(img.Bounds())
	assert.Equal(t, image.Rect(80, 10, 100, 50), clamped)

	changed := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			same := string(before[i:i+4]) == string(img.Pix[i:i+4])
			if !same {
				require.True(t, image.Pt(x, y).In(clamped),
					"pixel (%d,%d) outside the clamped region was modified", x, y)
				changed = true
			}
		}
	}
	assert.True(t, changed, "glitch at full intensity should modify the visible portion")
}

func TestEffectsNoOpWhenBoxFullyOutside(t *testing.T) {
	face := region.Face{ID: "f", Box: region.Box{X: 500, Y: 500, W: 40, H: 40}}
	for _, id := range IDs() {
		t.Run(id, func(t *testing.T) {
			img := gradient(100, 100)
			before := clonePix(img)
			Apply(img, face, id, 80, Options{})
			assert.Equal(t, before, []uint8(img.Pix))
		})
	}
}

func TestEyeBarFallbackWithoutLandmarks(t *testing.T) {
	// A manual region has no landmarks; the bar must land in the
	// estimated 28%-44% eye band and never throw.
	img := gradient(200, 200)
	before := clonePix(img)
	box := region.Box{X: 10, Y: 10, W: 100, H: 100}

	Apply(img, region.Face{ID: "f", Box: box, Manual: true}, IDEyeBar, 0, Options{})

	// Band midpoint row is solid black across the box.
	mid := 10 + 36 // (28% + 44%) / 2 of 100
	for x := 10; x < 110; x++ {
		assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(x, mid), "x=%d", x)
	}
	// Rows outside the band are untouched.
	for _, y := range []int{10 + 20, 10 + 60} {
		i := img.PixOffset(50, y)
		assert.Equal(t, before[i:i+4], []uint8(img.Pix[i:i+4]), "y=%d", y)
	}
}

func TestEyeBarFitsLandmarkCluster(t *testing.T) {
	box := region.Box{X: 0, Y: 0, W: 200, H: 200}
	lm := make([]region.Point, region.LandmarkCount)
	for i := range lm {
		lm[i] = region.Point{X: 100, Y: 100}
	}
	// Eye cluster spanning x 60..140, y 80..90.
	for i := region.EyeStart; i <= region.EyeEnd; i++ {
		lm[i] = region.Point{X: 60 + float64(i-region.EyeStart)*(80.0/11), Y: 80 + float64(i%2)*10}
	}

	img := gradient(200, 200)
	Apply(img, region.Face{ID: "f", Box: box, Landmarks: lm}, IDEyeBar, 50, Options{})

	// The cluster center is covered.
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(100, 85))
	// Far corners are not.
	assert.NotEqual(t, color.NRGBA{A: 255}, img.NRGBAAt(5, 5))
}

func TestBlackoutFillsEllipse(t *testing.T) {
	img := gradient(100, 100)
	box := region.Box{X: 20, Y: 20, W: 60, H: 60}
	Apply(img, region.Face{ID: "f", Box: box}, IDBlackout, 50, Options{})

	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(50, 50))
	// The box corner lies outside the inscribed ellipse.
	assert.NotEqual(t, color.NRGBA{A: 255}, img.NRGBAAt(21, 21))
}

func TestSolidDefaultsToRed(t *testing.T) {
	img := gradient(100, 100)
	box := region.Box{X: 20, Y: 20, W: 60, H: 60}
	Apply(img, region.Face{ID: "f", Box: box}, IDSolid, 50, Options{})
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(50, 50))

	img2 := gradient(100, 100)
	Apply(img2, region.Face{ID: "f", Box: box}, IDSolid, 50, Options{Color: color.NRGBA{B: 255, A: 255}})
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img2.NRGBAAt(50, 50))
}

func TestSwirlZeroIntensityIsIdentity(t *testing.T) {
	img := gradient(100, 100)
	before := clonePix(img)
	Apply(img, region.Face{ID: "f", Box: region.Box{X: 10, Y: 10, W: 60, H: 60}}, IDSwirl, 0, Options{})
	assert.Equal(t, before, []uint8(img.Pix))
}

func TestSwirlWarpsCenterRegion(t *testing.T) {
	img := gradient(100, 100)
	before := clonePix(img)
	Apply(img, region.Face{ID: "f", Box: region.Box{X: 10, Y: 10, W: 60, H: 60}}, IDSwirl, 100, Options{})
	assert.NotEqual(t, before, []uint8(img.Pix))
}

func TestSilhouetteFallbackEllipse(t *testing.T) {
	img := gradient(200, 200)
	box := region.Box{X: 50, Y: 50, W: 80, H: 80}
	// Intensity 100 gives the darkest shade: 0.1 mapped to RGB 10.
	Apply(img, region.Face{ID: "f", Box: box}, IDSilhouette, 100, Options{})
	assert.Equal(t, color.NRGBA{R: 10, G: 10, B: 10, A: 255}, img.NRGBAAt(90, 90))
}

func TestSilhouetteLandmarkPath(t *testing.T) {
	box := region.Box{X: 40, Y: 20, W: 120, H: 160}
	lm := make([]region.Point, region.LandmarkCount)
	// Jaw: a U from (50,60) down to (100,170) and back up to (150,60).
	for i := 0; i <= 16; i++ {
		u := float64(i) / 16
		lm[i] = region.Point{X: 50 + u*100, Y: 60 + 110*(1-(2*u-1)*(2*u-1))}
	}
	// Brows around y=70.
	for i := region.BrowStart; i <= region.BrowEnd; i++ {
		lm[i] = region.Point{X: 60 + float64(i-region.BrowStart)*8, Y: 70}
	}
	for i := 27; i < region.LandmarkCount; i++ {
		lm[i] = region.Point{X: 100, Y: 100}
	}

	img := gradient(200, 200)
	Apply(img, region.Face{ID: "f", Box: box, Landmarks: lm}, IDSilhouette, 100, Options{})

	// Inside the jaw/forehead outline.
	assert.Equal(t, color.NRGBA{R: 10, G: 10, B: 10, A: 255}, img.NRGBAAt(100, 100))
	// Outside the box entirely.
	assert.NotEqual(t, color.NRGBA{R: 10, G: 10, B: 10, A: 255}, img.NRGBAAt(10, 10))
}

func TestRedactCoversPaddedBox(t *testing.T) {
	img := gradient(100, 100)
	box := region.Box{X: 30, Y: 30, W: 40, H: 40}
	Apply(img, region.Face{ID: "f", Box: box}, IDRedact, 50, Options{})

	// Padded corner pixel is part of the stamp.
	px := img.NRGBAAt(27, 40)
	assert.LessOrEqual(t, px.R, uint8(40))
	// Outside the 4px pad it is untouched gradient.
	assert.Equal(t, gradient(100, 100).NRGBAAt(20, 40), img.NRGBAAt(20, 40))
}

func TestStickerCoversBoxCenter(t *testing.T) {
	img := gradient(200, 200)
	box := region.Box{X: 50, Y: 50, W: 80, H: 80}
	Apply(img, region.Face{ID: "f", Box: box}, IDEmoji, 0, Options{})

	// Face disc color at the box center.
	assert.Equal(t, color.NRGBA{R: 255, G: 204, B: 51, A: 255}, img.NRGBAAt(90, 90))
}

func TestStickerUnknownGlyphUsesPaletteDefault(t *testing.T) {
	a := gradient(200, 200)
	b := gradient(200, 200)
	face := region.Face{ID: "f", Box: region.Box{X: 50, Y: 50, W: 80, H: 80}}
	Apply(a, face, IDEmoji, 40, Options{Sticker: "bogus"})
	Apply(b, face, IDEmoji, 40, Options{Sticker: GlyphSmiley})
	assert.Equal(t, a.Pix, b.Pix)
}
