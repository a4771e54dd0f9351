// Package photo owns the per-photo state machine, the bounded multi-photo
// store with canvas eviction, per-photo undo/redo history, and the
// background processing queue.
package photo

import (
	"image"

	"github.com/google/uuid"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Status is the lifecycle state of a loaded photo.
type Status string

// Photo lifecycle states. Error is terminal until the user explicitly
// retries.
const (
	StatusPending  Status = "pending"
	StatusLoading  Status = "loading"
	StatusDetected Status = "detected"
	StatusError    Status = "error"
)

// File is one user-supplied input: the original encoded bytes are kept for
// the whole session so an evicted surface can be regenerated without the
// original file handle.
type File struct {
	Name string
	Data []byte
}

// Photo is the state of one loaded image. All fields are guarded by the
// owning Store's lock; nothing outside the package touches them directly.
type Photo struct {
	ID     string
	Name   string
	Data   []byte
	Status Status
	Err    string

	// Full is the owned full-resolution surface. It may be evicted (set
	// to nil) to bound memory while Status stays detected; Width/Height
	// survive eviction so geometry keeps working.
	Full   *image.NRGBA
	Width  int
	Height int

	Thumb *image.NRGBA

	Faces      []region.Face
	SelectedID string
	history    History

	lastActive int64
}

func newPhoto(f File) *Photo {
	return &Photo{
		ID:     uuid.NewString(),
		Name:   f.Name,
		Data:   f.Data,
		Status: StatusPending,
	}
}

// Info is a read-only snapshot of a photo's user-visible state.
type Info struct {
	ID        string
	Name      string
	Status    Status
	Err       string
	FaceCount int
	Selected  string
	CanUndo   bool
	CanRedo   bool
	HasCanvas bool
	Width     int
	Height    int
}

func (p *Photo) info() Info {
	return Info{
		ID:        p.ID,
		Name:      p.Name,
		Status:    p.Status,
		Err:       p.Err,
		FaceCount: len(p.Faces),
		Selected:  p.SelectedID,
		CanUndo:   p.history.CanUndo(),
		CanRedo:   p.history.CanRedo(),
		HasCanvas: p.Full != nil,
		Width:     p.Width,
		Height:    p.Height,
	}
}
