package effect

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Silhouette fills the face outline with a near-black shade. With a
// 68-point landmark set the outline follows the jaw, closed across the top
// by a forehead curve extrapolated from the eyebrows; without landmarks it
// degrades to an oversized ellipse.
type Silhouette struct{}

// Name implements Effect.
func (Silhouette) Name() string { return IDSilhouette }

// Apply implements Effect.
func (Silhouette) Apply(dst *image.NRGBA, f region.Face, intensity int) {
	darkness := 0.1 + (1-float64(intensity)/100)*0.3
	shade := uint8(math.Round(darkness * 100))
	c := color.NRGBA{R: shade, G: shade, B: shade, A: 255}

	if !f.HasLandmarks() {
		cx, cy := f.Box.Center()
		fillEllipse(dst, cx, cy, 1.05*f.Box.W/2, 1.15*f.Box.H/2, c)
		return
	}

	poly := silhouettePath(f)
	fillPolygon(dst, poly, c)
}

// silhouettePath builds the closed outline: jaw points 0-16 left to right,
// then a forehead curve back from the right outer brow to the left. The
// forehead peak extrapolates upward by 60% of the gap between the topmost
// eyebrow point and the box top.
func silhouettePath(f region.Face) []region.Point {
	pts := make([]region.Point, 0, 17+16)
	pts = append(pts, f.Landmarks[region.JawStart:region.JawEnd+1]...)

	browTop := math.Inf(1)
	for _, p := range f.Landmarks[region.BrowStart : region.BrowEnd+1] {
		browTop = math.Min(browTop, p.Y)
	}
	peakY := browTop - 0.6*(browTop-f.Box.Y)

	// Quadratic curve from the right outer brow over the peak to the left.
	p0 := f.Landmarks[region.BrowEnd]   // right outer brow
	p2 := f.Landmarks[region.BrowStart] // left outer brow
	ctrl := region.Point{X: (p0.X + p2.X) / 2, Y: 2*peakY - (p0.Y+p2.Y)/2}
	const steps = 16
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		u := 1 - t
		pts = append(pts, region.Point{
			X: u*u*p0.X + 2*u*t*ctrl.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*ctrl.Y + t*t*p2.Y,
		})
	}
	return pts
}

// fillPolygon rasterizes a closed polygon with even-odd scanline filling,
// clamped to the canvas.
func fillPolygon(dst *image.NRGBA, poly []region.Point, c color.NRGBA) {
	if len(poly) < 3 {
		return
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	b := dst.Bounds()
	y0 := clampInt(int(math.Floor(minY)), b.Min.Y, b.Max.Y)
	y1 := clampInt(int(math.Ceil(maxY)), b.Min.Y, b.Max.Y)

	xs := make([]float64, 0, 8)
	for y := y0; y < y1; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < len(poly); i++ {
			a := poly[i]
			d := poly[(i+1)%len(poly)]
			if (a.Y <= cy) == (d.Y <= cy) {
				continue
			}
			t := (cy - a.Y) / (d.Y - a.Y)
			xs = append(xs, a.X+t*(d.X-a.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := clampInt(int(math.Round(xs[i])), b.Min.X, b.Max.X)
			x1 := clampInt(int(math.Round(xs[i+1])), b.Min.X, b.Max.X)
			for x := x0; x < x1; x++ {
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}
