package region

import "github.com/google/uuid"

// LandmarkCount is the number of keypoints emitted by 68-point detectors.
const LandmarkCount = 68

// Landmark index ranges within a 68-point set.
const (
	JawStart  = 0 // jaw outline 0-16
	JawEnd    = 16
	BrowStart = 17 // eyebrows 17-26
	BrowEnd   = 26
	EyeStart  = 36 // both eyes 36-47
	EyeEnd    = 47
)

// Face is one blockable area: a bounding box plus detector metadata.
// A Face is exclusively owned by its photo and never shared.
type Face struct {
	ID        string
	Box       Box
	Score     float64 // detector confidence in [0,1]; manual regions fix this at 1
	Landmarks []Point // optional 68-point set, full-resolution space; nil for manual regions
	Manual    bool

	// Per-region overrides. Zero values mean "use the photo-global settings".
	EffectID     string
	Intensity    int // valid only when HasIntensity
	HasIntensity bool
}

// NewDetected creates a detector-sourced face with a fresh id.
func NewDetected(box Box, score float64, landmarks []Point) Face {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return Face{
		ID:        uuid.NewString(),
		Box:       box,
		Score:     score,
		Landmarks: landmarks,
	}
}

// NewManual creates a user-drawn face. Manual regions carry no landmarks
// and a fixed confidence of 1.
func NewManual(box Box) Face {
	return Face{
		ID:     uuid.NewString(),
		Box:    box,
		Score:  1,
		Manual: true,
	}
}

// HasLandmarks reports whether the face carries a full 68-point set.
func (f Face) HasLandmarks() bool {
	return len(f.Landmarks) == LandmarkCount
}

// Clone returns a deep copy, including the landmark slice.
func (f Face) Clone() Face {
	c := f
	if f.Landmarks != nil {
		c.Landmarks = make([]Point, len(f.Landmarks))
		copy(c.Landmarks, f.Landmarks)
	}
	return c
}

// CloneFaces deep-copies a face list.
func CloneFaces(faces []Face) []Face {
	if faces == nil {
		return nil
	}
	out := make([]Face, len(faces))
	for i, f := range faces {
		out[i] = f.Clone()
	}
	return out
}

// Snapshot is an immutable copy of a photo's face list and selection,
// used by the undo/redo stacks.
type Snapshot struct {
	Faces      []Face
	SelectedID string
}

// TakeSnapshot deep-copies the given state.
func TakeSnapshot(faces []Face, selectedID string) Snapshot {
	return Snapshot{Faces: CloneFaces(faces), SelectedID: selectedID}
}
