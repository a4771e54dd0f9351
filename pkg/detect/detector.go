// Package detect wraps the external face detector and maps its raw output
// into full-resolution face regions.
package detect

import (
	"image"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/region"
)

// RawFace is one detector result in the coordinate space of the frame the
// detector was given. Landmarks are optional and, when present, hold the
// standard 68-point set.
type RawFace struct {
	Box       region.Box
	Score     float64
	Landmarks []region.Point
}

// Detector is the external face-detection collaborator: given a frame,
// return scored bounding boxes and optional landmarks. Implementations may
// run any backend; coordinate scaling back to full resolution is the
// adapter's job, not theirs.
type Detector interface {
	Detect(frame image.Image, sensitivity config.Sensitivity) ([]RawFace, error)
}

// preset is the per-sensitivity tradeoff between detection input size and
// confidence threshold.
type preset struct {
	maxDim   int     // detection frame cap, longest side
	minScore float64 // confidence floor applied to detector output
}

// presetFor maps the named sensitivity levels: low favors speed with a
// small frame and a strict threshold, high spends more compute on a larger
// frame with a looser threshold to catch small or angled faces.
func presetFor(s config.Sensitivity) preset {
	switch s {
	case config.SensitivityLow:
		return preset{maxDim: 480, minScore: 0.50}
	case config.SensitivityHigh:
		return preset{maxDim: 960, minScore: 0.15}
	default:
		return preset{maxDim: 640, minScore: 0.30}
	}
}
