package detect

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/region"
	"github.com/pixelveil/pixelveil/util/log"
)

// Adapter runs a Detector on a downscaled copy of the full-resolution
// image and scales the results back, so face regions are always expressed
// in full-resolution coordinates.
type Adapter struct {
	det Detector
}

// NewAdapter wraps the given detector backend.
func NewAdapter(det Detector) *Adapter {
	return &Adapter{det: det}
}

// DetectFaces returns fresh detector-sourced regions for the image. The
// detection frame is a disposable, function-local derivative; only the
// scaled-back regions escape.
func (a *Adapter) DetectFaces(full image.Image, sensitivity config.Sensitivity) ([]region.Face, error) {
	p := presetFor(sensitivity)
	b := full.Bounds()
	maxSide := b.Dx()
	if b.Dy() > maxSide {
		maxSide = b.Dy()
	}
	if maxSide == 0 {
		return nil, fmt.Errorf("detect: empty image")
	}

	scale := 1.0
	frame := full
	if maxSide > p.maxDim {
		scale = float64(p.maxDim) / float64(maxSide)
		frame = imaging.Resize(full, int(float64(b.Dx())*scale+0.5), int(float64(b.Dy())*scale+0.5), imaging.Linear)
	}

	raws, err := a.det.Detect(frame, sensitivity)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	inv := 1 / scale
	faces := make([]region.Face, 0, len(raws))
	for _, raw := range raws {
		if raw.Score < p.minScore {
			continue
		}
		faces = append(faces, region.NewDetected(
			raw.Box.Scale(inv),
			raw.Score,
			region.ScalePoints(raw.Landmarks, inv),
		))
	}
	log.Debugf("detect: %d/%d faces above threshold at sensitivity %s", len(faces), len(raws), sensitivity)
	return faces, nil
}
