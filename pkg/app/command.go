package app

import (
	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/photo"
	"github.com/pixelveil/pixelveil/pkg/region"
)

// Command is one user intent. The UI layer translates raw events (clicks,
// drags, key presses) into these values and feeds them to App.Handle; the
// core never sees a toolkit type.
type Command interface{ isCommand() }

// AddPhotos loads new files into the queue, truncating at capacity.
type AddPhotos struct{ Files []photo.File }

// RemovePhoto drops a photo and everything it owns.
type RemovePhoto struct{ ID string }

// ActivatePhoto switches the active photo, regenerating its surface if it
// was evicted and retrying it if it previously failed.
type ActivatePhoto struct{ ID string }

// DrawFace adds a manual region to the active photo.
type DrawFace struct{ Box region.Box }

// SelectFace changes the active photo's selection; empty ID clears it.
type SelectFace struct{ ID string }

// MoveFace translates a region. A move whose new center leaves the canvas
// deletes the region instead.
type MoveFace struct {
	ID     string
	DX, DY float64
}

// ResizeFace drags a region's bottom-right corner to (X, Y).
type ResizeFace struct {
	ID   string
	X, Y float64
}

// RemoveFace deletes a region outright.
type RemoveFace struct{ ID string }

// SetEffect changes the photo-global effect.
type SetEffect struct{ EffectID string }

// SetIntensity changes the photo-global intensity (0-100).
type SetIntensity struct{ Value int }

// SetFaceEffect sets or clears a per-region override. Empty EffectID and
// HasIntensity=false revert the region to the global settings.
type SetFaceEffect struct {
	ID           string
	EffectID     string
	Intensity    int
	HasIntensity bool
}

// SetSensitivity changes the detector preset and re-runs detection on the
// active photo, preserving manual regions.
type SetSensitivity struct{ Value config.Sensitivity }

// SetExport changes the export format and quality.
type SetExport struct {
	Format  config.ExportFormat
	Quality float64
}

// Undo reverts the active photo's last face mutation.
type Undo struct{}

// Redo re-applies the active photo's last undone mutation.
type Redo struct{}

func (AddPhotos) isCommand()      {}
func (RemovePhoto) isCommand()    {}
func (ActivatePhoto) isCommand()  {}
func (DrawFace) isCommand()       {}
func (SelectFace) isCommand()     {}
func (MoveFace) isCommand()       {}
func (ResizeFace) isCommand()     {}
func (RemoveFace) isCommand()     {}
func (SetEffect) isCommand()      {}
func (SetIntensity) isCommand()   {}
func (SetFaceEffect) isCommand()  {}
func (SetSensitivity) isCommand() {}
func (SetExport) isCommand()      {}
func (Undo) isCommand()           {}
func (Redo) isCommand()           {}
