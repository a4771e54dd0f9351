package detect

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/region"
)

// Pigo detection parameters shared across sensitivity levels.
const (
	pigoShiftFactor  = 0.1
	pigoScaleFactor  = 1.1
	pigoIoUThreshold = 0.2
	pigoMaxSize      = 1000
	// RunCascade q values are unbounded; scores normalize against this
	// so a solid detection lands near 1.
	pigoScoreScale = 40.0
)

// Pigo is the bundled detector backend built on the pigo cascade
// classifier. It emits boxes and scores only; landmark-capable backends
// can implement Detector alongside it.
type Pigo struct {
	classifier *pigo.Pigo
}

// NewPigo loads and unpacks a facefinder cascade from disk.
func NewPigo(cascadePath string) (*Pigo, error) {
	data, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("reading cascade file: %w", err)
	}
	return NewPigoFromBytes(data)
}

// NewPigoFromBytes unpacks a facefinder cascade already in memory.
func NewPigoFromBytes(data []byte) (*Pigo, error) {
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpacking cascade: %w", err)
	}
	return &Pigo{classifier: classifier}, nil
}

// minFaceFor trades minimum detectable face size against compute: high
// sensitivity hunts for small faces, low skips them.
func minFaceFor(s config.Sensitivity) int {
	switch s {
	case config.SensitivityLow:
		return 40
	case config.SensitivityHigh:
		return 12
	default:
		return 20
	}
}

// Detect implements Detector.
func (p *Pigo) Detect(frame image.Image, sensitivity config.Sensitivity) ([]RawFace, error) {
	if p.classifier == nil {
		return nil, fmt.Errorf("pigo: classifier not loaded")
	}

	b := frame.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, nil
	}

	params := pigo.CascadeParams{
		MinSize:     minFaceFor(sensitivity),
		MaxSize:     pigoMaxSize,
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: pigoScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: grayscale(frame),
			Rows:   b.Dy(),
			Cols:   b.Dx(),
			Dim:    b.Dx(),
		},
	}

	dets := p.classifier.RunCascade(params, 0.0)
	dets = p.classifier.ClusterDetections(dets, pigoIoUThreshold)

	raws := make([]RawFace, 0, len(dets))
	for _, d := range dets {
		half := float64(d.Scale) / 2
		score := float64(d.Q) / pigoScoreScale
		if score > 1 {
			score = 1
		}
		raws = append(raws, RawFace{
			Box: region.Box{
				X: float64(d.Col) - half,
				Y: float64(d.Row) - half,
				W: float64(d.Scale),
				H: float64(d.Scale),
			},
			Score: score,
		})
	}
	return raws, nil
}

// grayscale flattens the frame into the single-channel pixel array pigo
// expects.
func grayscale(img image.Image) []uint8 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	gray := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gray[y*w+x] = uint8((r*299 + g*587 + bl*114) / 1000 >> 8)
		}
	}
	return gray
}
