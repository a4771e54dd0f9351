package effect

import (
	"image"
	"image/color"
	"math"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// EyeBar draws a classic black censor bar over the eyes. With a 68-point
// landmark set the bar is fitted to the detected eye cluster; without one
// (manual regions) it falls back to the band 28%-44% down from the box top.
type EyeBar struct{}

// Name implements Effect.
func (EyeBar) Name() string { return IDEyeBar }

// Apply implements Effect.
func (EyeBar) Apply(dst *image.NRGBA, f region.Face, intensity int) {
	box := f.Box
	mult := 0.5 + float64(intensity)/100*1.5

	var barX, barY, barW, barH float64
	if f.HasLandmarks() {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range f.Landmarks[region.EyeStart : region.EyeEnd+1] {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
		clusterW := maxX - minX
		clusterH := maxY - minY
		padX := 0.25 * clusterW

		barH = math.Max(2.5*clusterH, 0.14*box.H) * mult
		barW = clusterW + 2*padX
		barX = minX - padX
		barY = (minY+maxY)/2 - barH/2
	} else {
		// Estimated eye band for landmark-free regions.
		top := box.Y + 0.28*box.H
		bottom := box.Y + 0.44*box.H
		mid := (top + bottom) / 2
		barH = (bottom - top) * mult
		barW = box.W
		barX = box.X
		barY = mid - barH/2
	}

	bar := region.Box{X: barX, Y: barY, W: barW, H: barH}
	fillRect(dst, bar.ClampRect(dst.Bounds()), color.NRGBA{A: 255})
}
