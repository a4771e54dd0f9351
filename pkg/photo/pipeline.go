package photo

import (
	"fmt"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/detect"
	"github.com/pixelveil/pixelveil/util/log"
)

// Pipeline orchestrates load -> detect for one photo at a time. Every
// failure is caught at this boundary and converted into the photo's error
// status; nothing propagates into the queue loop or affects siblings.
type Pipeline struct {
	store    *Store
	adapter  *detect.Adapter
	settings func() config.Settings
}

// NewPipeline wires the pipeline to its store, detection adapter and a
// settings source.
func NewPipeline(store *Store, adapter *detect.Adapter, settings func() config.Settings) *Pipeline {
	return &Pipeline{store: store, adapter: adapter, settings: settings}
}

// Process decodes and detects one photo. It is idempotent: a detected
// photo with a live surface is a no-op. The returned error mirrors what
// was recorded on the photo; callers may log it but must not abort the
// queue.
func (pl *Pipeline) Process(id string) error {
	if info, ok := pl.store.Info(id); ok && info.Status == StatusDetected && info.HasCanvas {
		return nil
	}
	if !pl.store.markLoading(id) {
		// Removed, or another drain already has it in flight.
		return nil
	}

	file, ok := pl.store.Data(id)
	if !ok {
		return nil
	}

	full, err := DecodeBytes(file.Data)
	if err != nil {
		pl.store.markError(id, err.Error())
		return fmt.Errorf("photo %s: %w", file.Name, err)
	}

	faces, err := pl.adapter.DetectFaces(full, pl.settings().Sensitivity)
	if err != nil {
		pl.store.markError(id, err.Error())
		return fmt.Errorf("photo %s: %w", file.Name, err)
	}

	thumb := Thumbnail(full)

	// The photo may have been removed while decode/detect ran; the stale
	// completion is discarded.
	if !pl.store.commitDetection(id, full, thumb, faces) {
		log.Debugf("Pipeline: dropping stale result for removed photo %s", id)
		return nil
	}
	log.Debugf("Pipeline: %s detected %d faces", file.Name, len(faces))
	return nil
}

// EnsureSurface regenerates an evicted full-resolution surface from the
// original bytes. Faces and history are untouched.
func (pl *Pipeline) EnsureSurface(id string) error {
	info, ok := pl.store.Info(id)
	if !ok {
		return fmt.Errorf("photo not found")
	}
	if info.HasCanvas || info.Status != StatusDetected {
		return nil
	}

	file, ok := pl.store.Data(id)
	if !ok {
		return fmt.Errorf("photo not found")
	}
	full, err := DecodeBytes(file.Data)
	if err != nil {
		pl.store.markError(id, err.Error())
		return fmt.Errorf("regenerating %s: %w", file.Name, err)
	}
	if !pl.store.commitSurface(id, full) {
		return nil
	}
	log.Debugf("Pipeline: regenerated surface for %s", file.Name)
	return nil
}
