package effect

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Pixelate replaces an elliptical area with coarse blocks: the region is
// downscaled by the block size and scaled back up with nearest-neighbor
// sampling, so no smoothing leaks detail back in.
type Pixelate struct{}

// Name implements Effect.
func (Pixelate) Name() string { return IDPixelate }

// BlockSize maps intensity to the pixelation block edge in pixels.
// Intensity 0 still yields the documented floor of 2, which is visibly
// blocky but never degenerate.
func (Pixelate) BlockSize(box region.Box, intensity int) int {
	base := math.Max(4, minDim(box)*0.1)
	bs := int(math.Round(float64(intensity)/100*base)) + 2
	if bs < 2 {
		bs = 2
	}
	return bs
}

// Apply implements Effect.
func (p Pixelate) Apply(dst *image.NRGBA, f region.Face, intensity int) {
	box := f.Box
	r := box.ClampRect(dst.Bounds())
	if r.Empty() {
		return
	}

	bs := p.BlockSize(box, intensity)
	sw := (r.Dx() + bs - 1) / bs
	sh := (r.Dy() + bs - 1) / bs

	small := imaging.Resize(imaging.Crop(dst, r), sw, sh, imaging.Box)
	big := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	cx, cy := box.Center()
	rx, ry := box.W/2, box.H/2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if inEllipse(x, y, cx, cy, rx, ry) {
				dst.SetNRGBA(x, y, big.NRGBAAt(x-r.Min.X, y-r.Min.Y))
			}
		}
	}
}
