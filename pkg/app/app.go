// Package app owns the explicit application state: the photo store, the
// global settings and the background queue. All state lives on the App
// value, never in package globals, so tests can run independent instances
// side by side.
package app

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/detect"
	"github.com/pixelveil/pixelveil/pkg/export"
	"github.com/pixelveil/pixelveil/pkg/photo"
	"github.com/pixelveil/pixelveil/pkg/region"
	"github.com/pixelveil/pixelveil/util/log"
)

// Sentinel errors surfaced to the user layer.
var (
	ErrNoPhoto       = fmt.Errorf("no active photo")
	ErrPhotoNotFound = fmt.Errorf("photo not found")
	ErrNotReady      = fmt.Errorf("photo not processed yet")
	ErrNoInput       = fmt.Errorf("no valid files selected")
)

// exportParallelism bounds how many photos a batch export renders at once.
const exportParallelism = 2

// App is the top-level controller tying the store, pipeline, queue and
// settings together behind a single command handler.
type App struct {
	mu       sync.Mutex
	settings config.Settings

	store    *photo.Store
	adapter  *detect.Adapter
	pipeline *photo.Pipeline
	queue    *photo.Queue
}

// New builds an App around the given detector backend.
func New(det detect.Detector, settings config.Settings) *App {
	a := &App{settings: settings.Normalize()}
	a.store = photo.NewStore()
	a.adapter = detect.NewAdapter(det)
	a.pipeline = photo.NewPipeline(a.store, a.adapter, a.Settings)
	a.queue = photo.NewQueue(a.pipeline, a.store)
	a.queue.Start()
	return a
}

// Close stops the background queue.
func (a *App) Close() {
	a.queue.Stop()
}

// Settings returns a copy of the current global settings.
func (a *App) Settings() config.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// Store exposes read access to photo state for the presentation layer.
func (a *App) Store() *photo.Store {
	return a.store
}

// Handle dispatches one user intent. Per-photo failures never escape as
// panics; validation problems are reported before any async work begins.
func (a *App) Handle(cmd Command) error {
	switch c := cmd.(type) {
	case AddPhotos:
		return a.addPhotos(c)
	case RemovePhoto:
		if !a.store.Remove(c.ID) {
			return ErrPhotoNotFound
		}
		return nil
	case ActivatePhoto:
		return a.activate(c.ID)
	case DrawFace:
		return a.drawFace(c.Box)
	case SelectFace:
		return a.selectFace(c.ID)
	case MoveFace:
		return a.moveFace(c)
	case ResizeFace:
		return a.resizeFace(c)
	case RemoveFace:
		return a.removeFace(c.ID)
	case SetEffect:
		a.mu.Lock()
		a.settings.EffectID = c.EffectID
		a.settings = a.settings.Normalize()
		a.mu.Unlock()
		return nil
	case SetIntensity:
		a.mu.Lock()
		a.settings.Intensity = c.Value
		a.settings = a.settings.Normalize()
		a.mu.Unlock()
		return nil
	case SetFaceEffect:
		return a.setFaceEffect(c)
	case SetSensitivity:
		return a.setSensitivity(c.Value)
	case SetExport:
		a.mu.Lock()
		a.settings.Format = c.Format
		a.settings.Quality = c.Quality
		a.settings = a.settings.Normalize()
		a.mu.Unlock()
		return nil
	case Undo:
		if id := a.store.ActiveID(); id != "" {
			a.store.Undo(id)
			return nil
		}
		return ErrNoPhoto
	case Redo:
		if id := a.store.ActiveID(); id != "" {
			a.store.Redo(id)
			return nil
		}
		return ErrNoPhoto
	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
}

func (a *App) addPhotos(c AddPhotos) error {
	if len(c.Files) == 0 {
		return ErrNoInput
	}
	accepted, dropped := a.store.Add(c.Files...)
	if accepted == 0 {
		return fmt.Errorf("photo queue full: all %d files dropped", dropped)
	}
	a.queue.Kick()
	if dropped > 0 {
		log.Printf("App: accepted %d photos, dropped %d over capacity", accepted, dropped)
	}
	return nil
}

// activate switches photos. An evicted surface is regenerated on demand;
// a previously failed photo gets one fresh processing attempt.
func (a *App) activate(id string) error {
	if !a.store.SetActive(id) {
		return ErrPhotoNotFound
	}
	info, _ := a.store.Info(id)
	switch {
	case info.Status == photo.StatusError:
		a.store.Reset(id)
		a.queue.Kick()
	case info.Status == photo.StatusDetected && !info.HasCanvas:
		if err := a.pipeline.EnsureSurface(id); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) activeDetected() (photo.Info, error) {
	id := a.store.ActiveID()
	if id == "" {
		return photo.Info{}, ErrNoPhoto
	}
	info, ok := a.store.Info(id)
	if !ok {
		return photo.Info{}, ErrPhotoNotFound
	}
	if info.Status != photo.StatusDetected {
		return photo.Info{}, ErrNotReady
	}
	return info, nil
}

func (a *App) drawFace(box region.Box) error {
	info, err := a.activeDetected()
	if err != nil {
		return err
	}
	a.store.MutateFaces(info.ID, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		out, f, ok := region.AddManual(faces, box)
		if !ok {
			return faces, selected, false
		}
		return out, f.ID, true
	})
	return nil
}

func (a *App) selectFace(id string) error {
	info, err := a.activeDetected()
	if err != nil {
		return err
	}
	a.store.MutateFaces(info.ID, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		if selected == id {
			return faces, selected, false
		}
		return faces, id, true
	})
	return nil
}

func (a *App) moveFace(c MoveFace) error {
	info, err := a.activeDetected()
	if err != nil {
		return err
	}
	a.store.MutateFaces(info.ID, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		out, removed := region.MoveFace(faces, c.ID, c.DX, c.DY, float64(info.Width), float64(info.Height))
		if removed && selected == c.ID {
			selected = ""
		}
		return out, selected, true
	})
	return nil
}

func (a *App) resizeFace(c ResizeFace) error {
	info, err := a.activeDetected()
	if err != nil {
		return err
	}
	a.store.MutateFaces(info.ID, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		return region.ResizeFace(faces, c.ID, c.X, c.Y), selected, true
	})
	return nil
}

func (a *App) removeFace(id string) error {
	info, err := a.activeDetected()
	if err != nil {
		return err
	}
	a.store.MutateFaces(info.ID, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		out, removed := region.RemoveFace(faces, id)
		if !removed {
			return faces, selected, false
		}
		if selected == id {
			selected = ""
		}
		return out, selected, true
	})
	return nil
}

func (a *App) setFaceEffect(c SetFaceEffect) error {
	info, err := a.activeDetected()
	if err != nil {
		return err
	}
	a.store.MutateFaces(info.ID, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		for i := range faces {
			if faces[i].ID != c.ID {
				continue
			}
			faces[i].EffectID = c.EffectID
			faces[i].Intensity = c.Intensity
			faces[i].HasIntensity = c.HasIntensity
			return faces, selected, true
		}
		return faces, selected, false
	})
	return nil
}

// setSensitivity re-runs detection on the active photo with the new
// preset. Manual regions are preserved; detector-sourced regions are
// replaced. Failed photos elsewhere in the queue get a retry.
func (a *App) setSensitivity(v config.Sensitivity) error {
	a.mu.Lock()
	a.settings.Sensitivity = v
	a.settings = a.settings.Normalize()
	a.mu.Unlock()

	info, err := a.activeDetected()
	if err != nil {
		// No active detected photo; queued photos will pick the new
		// preset up when processed.
		a.retryFailed()
		return nil
	}
	if err := a.pipeline.EnsureSurface(info.ID); err != nil {
		return err
	}
	surface, ok := a.store.Surface(info.ID)
	if !ok {
		return ErrNotReady
	}

	detected, err := a.adapter.DetectFaces(surface, a.Settings().Sensitivity)
	if err != nil {
		return fmt.Errorf("re-detection: %w", err)
	}
	a.store.MutateFaces(info.ID, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		out := region.MergeRedetect(faces, detected)
		for _, f := range out {
			if f.ID == selected {
				return out, selected, true
			}
		}
		return out, "", true
	})
	a.retryFailed()
	return nil
}

// retryFailed resets errored photos to pending and kicks the queue. A
// sensitivity change is one of the explicit user retry triggers.
func (a *App) retryFailed() {
	kicked := false
	for _, info := range a.store.List() {
		if info.Status == photo.StatusError {
			a.store.Reset(info.ID)
			kicked = true
		}
	}
	if kicked {
		a.queue.Kick()
	}
}

// ProcessActive runs the pipeline on the active photo synchronously,
// bypassing the background queue. The CLI uses this for deterministic
// batch runs.
func (a *App) ProcessActive() error {
	id := a.store.ActiveID()
	if id == "" {
		return ErrNoPhoto
	}
	if err := a.pipeline.Process(id); err != nil {
		return err
	}
	info, _ := a.store.Info(id)
	if info.Status == photo.StatusError {
		return fmt.Errorf("processing %s: %s", info.Name, info.Err)
	}
	return nil
}

// RenderActive renders the active photo with all effects applied.
func (a *App) RenderActive() (*image.NRGBA, error) {
	info, err := a.activeDetected()
	if err != nil {
		return nil, err
	}
	if err := a.pipeline.EnsureSurface(info.ID); err != nil {
		return nil, err
	}
	surface, ok := a.store.Surface(info.ID)
	if !ok {
		return nil, ErrNotReady
	}
	faces, _, _ := a.store.Faces(info.ID)
	return photo.Render(surface, faces, a.Settings()), nil
}

// ExportActive renders and encodes the active photo.
func (a *App) ExportActive() (export.Entry, error) {
	info, err := a.activeDetected()
	if err != nil {
		return export.Entry{}, err
	}
	img, err := a.RenderActive()
	if err != nil {
		return export.Entry{}, err
	}
	s := a.Settings()
	data, err := export.Encode(img, s.Format, s.Quality)
	if err != nil {
		return export.Entry{}, err
	}
	return export.Entry{Name: export.OutputName(info.Name, s.Format), Data: data}, nil
}

// ExportAll renders and encodes every detected photo with bounded
// parallelism. Photos that fail are skipped and reported; completed
// entries are never rolled back. Evicted photos are decoded into
// function-local surfaces so the live-canvas cap holds throughout.
func (a *App) ExportAll() ([]export.Entry, error) {
	infos := a.store.List()
	s := a.Settings()

	entries := make([]export.Entry, len(infos))
	errs := make([]error, len(infos))

	var g errgroup.Group
	g.SetLimit(exportParallelism)
	for i, info := range infos {
		if info.Status != photo.StatusDetected {
			continue
		}
		i, info := i, info
		g.Go(func() error {
			entry, err := a.exportOne(info.ID, s)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", info.Name, err)
				return nil
			}
			entries[i] = entry
			return nil
		})
	}
	g.Wait()

	var out []export.Entry
	var failed int
	for i := range infos {
		if entries[i].Data != nil {
			out = append(out, entries[i])
		}
		if errs[i] != nil {
			failed++
			log.Printf("App: export failed for %v", errs[i])
		}
	}
	if failed > 0 {
		return out, fmt.Errorf("%d of %d photos failed to export", failed, len(infos))
	}
	return out, nil
}

func (a *App) exportOne(id string, s config.Settings) (export.Entry, error) {
	info, ok := a.store.Info(id)
	if !ok {
		return export.Entry{}, ErrPhotoNotFound
	}

	surface, ok := a.store.Surface(id)
	if !ok {
		// Evicted: decode a disposable local copy instead of churning
		// the canvas cap.
		file, ok := a.store.Data(id)
		if !ok {
			return export.Entry{}, ErrPhotoNotFound
		}
		var err error
		surface, err = photo.DecodeBytes(file.Data)
		if err != nil {
			return export.Entry{}, err
		}
	}

	faces, _, _ := a.store.Faces(id)
	img := photo.Render(surface, faces, s)
	data, err := export.Encode(img, s.Format, s.Quality)
	if err != nil {
		return export.Entry{}, err
	}
	return export.Entry{Name: export.OutputName(info.Name, s.Format), Data: data}, nil
}
