package photo

import (
	"image"
	"sort"
	"sync"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/region"
	"github.com/pixelveil/pixelveil/util/log"
)

// Store is the thread-safe owner of all loaded photos: insertion-ordered
// list, active selection, canvas eviction and per-photo history all live
// behind one lock.
type Store struct {
	mu       sync.RWMutex
	photos   []*Photo
	idSet    map[string]bool
	activeID string
	tick     int64
}

// NewStore creates an empty photo store.
func NewStore() *Store {
	return &Store{idSet: make(map[string]bool)}
}

// Add appends the given files, truncating to the remaining capacity.
// Returns how many were accepted and how many were dropped; dropping is
// reported, never a hard failure.
func (s *Store) Add(files ...File) (accepted, dropped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := config.MaxPhotos - len(s.photos)
	if room < 0 {
		room = 0
	}
	for i, f := range files {
		if i >= room {
			dropped++
			continue
		}
		p := newPhoto(f)
		s.photos = append(s.photos, p)
		s.idSet[p.ID] = true
		accepted++
		if s.activeID == "" {
			s.activeID = p.ID
			s.tick++
			p.lastActive = s.tick
		}
	}
	if dropped > 0 {
		log.Printf("Store: photo cap reached, accepted %d and dropped %d", accepted, dropped)
	}
	return accepted, dropped
}

// Remove deletes a photo. When the active photo is removed, activation
// falls to its successor in insertion order (or predecessor at the end).
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.photos {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	s.photos = append(s.photos[:idx], s.photos[idx+1:]...)
	delete(s.idSet, id)

	if s.activeID == id {
		s.activeID = ""
		if len(s.photos) > 0 {
			next := idx
			if next >= len(s.photos) {
				next = len(s.photos) - 1
			}
			s.activeID = s.photos[next].ID
			s.tick++
			s.photos[next].lastActive = s.tick
		}
	}
	return true
}

// Contains reports whether the photo is still resident. Async completions
// re-validate with this before committing results.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idSet[id]
}

// Count returns the number of resident photos.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.photos)
}

// IDs returns all photo ids in insertion order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.photos))
	for i, p := range s.photos {
		out[i] = p.ID
	}
	return out
}

// ActiveID returns the id of the active photo, or "" when the list is
// empty.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// SetActive switches the active photo, bumps its recency and enforces the
// live-canvas cap.
func (s *Store) SetActive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.idSet[id] {
		return false
	}
	s.activeID = id
	s.tick++
	if p := s.findLocked(id); p != nil {
		p.lastActive = s.tick
	}
	s.evictLocked()
	return true
}

// Info returns a read-only snapshot of one photo's state.
func (s *Store) Info(id string) (Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.findLocked(id); p != nil {
		return p.info(), true
	}
	return Info{}, false
}

// List returns snapshots of every photo in insertion order.
func (s *Store) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Info, len(s.photos))
	for i, p := range s.photos {
		out[i] = p.info()
	}
	return out
}

// LiveSurfaceCount returns how many photos currently hold a decoded
// full-resolution surface.
func (s *Store) LiveSurfaceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.photos {
		if p.Full != nil {
			n++
		}
	}
	return n
}

// NextPending returns the next photo the background queue should process:
// the active photo first if it still needs work, then insertion order.
// Photos already detected with a live surface are skipped.
func (s *Store) NextPending() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p := s.findLocked(s.activeID); p != nil && p.Status == StatusPending {
		return p.ID, true
	}
	for _, p := range s.photos {
		if p.Status == StatusPending {
			return p.ID, true
		}
	}
	return "", false
}

// Faces returns a deep copy of the photo's face list and selection.
func (s *Store) Faces(id string) ([]region.Face, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.findLocked(id)
	if p == nil {
		return nil, "", false
	}
	return region.CloneFaces(p.Faces), p.SelectedID, true
}

// Surface returns the photo's live full-resolution surface, or false when
// it is evicted or not yet decoded. The surface is shared for reading;
// rendering clones it before mutating.
func (s *Store) Surface(id string) (*image.NRGBA, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.findLocked(id)
	if p == nil || p.Full == nil {
		return nil, false
	}
	return p.Full, true
}

// Thumb returns the photo's queue-badge thumbnail, if generated.
func (s *Store) Thumb(id string) (*image.NRGBA, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.findLocked(id)
	if p == nil || p.Thumb == nil {
		return nil, false
	}
	return p.Thumb, true
}

// Data returns the photo's original encoded bytes and name.
func (s *Store) Data(id string) (File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.findLocked(id)
	if p == nil {
		return File{}, false
	}
	return File{Name: p.Name, Data: p.Data}, true
}

// MutateFaces applies fn to the photo's face list under the lock. When fn
// reports a change, the pre-mutation state is pushed onto the photo's undo
// stack and its redo stack is cleared.
func (s *Store) MutateFaces(id string, fn func(faces []region.Face, selected string) ([]region.Face, string, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return false
	}

	before := region.TakeSnapshot(p.Faces, p.SelectedID)
	faces, selected, changed := fn(region.CloneFaces(p.Faces), p.SelectedID)
	if !changed {
		return false
	}
	p.history.Push(before)
	p.Faces = faces
	p.SelectedID = selected
	return true
}

// Undo restores the photo's most recent undo snapshot.
func (s *Store) Undo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return false
	}
	snap, ok := p.history.Undo(region.TakeSnapshot(p.Faces, p.SelectedID))
	if !ok {
		return false
	}
	p.Faces = snap.Faces
	p.SelectedID = snap.SelectedID
	return true
}

// Redo restores the photo's most recent redo snapshot.
func (s *Store) Redo(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return false
	}
	snap, ok := p.history.Redo(region.TakeSnapshot(p.Faces, p.SelectedID))
	if !ok {
		return false
	}
	p.Faces = snap.Faces
	p.SelectedID = snap.SelectedID
	return true
}

// Reset returns an errored photo to pending so the queue will retry it.
// Photos in any other state are left alone.
func (s *Store) Reset(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil || p.Status != StatusError {
		return false
	}
	p.Status = StatusPending
	p.Err = ""
	return true
}

// markLoading transitions a photo into the loading state. Returns false
// when the photo is gone or already being processed.
func (s *Store) markLoading(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil || p.Status == StatusLoading {
		return false
	}
	p.Status = StatusLoading
	p.Err = ""
	return true
}

// markError records a terminal per-photo failure. Sibling photos are
// unaffected.
func (s *Store) markError(id string, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.findLocked(id); p != nil {
		p.Status = StatusError
		p.Err = msg
	}
}

// commitDetection installs the decoded surface, thumbnail and detected
// faces. Returns false when the photo was removed while detection was in
// flight, in which case the result is discarded.
func (s *Store) commitDetection(id string, full *image.NRGBA, thumb *image.NRGBA, faces []region.Face) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return false
	}
	p.Full = full
	p.Width = full.Bounds().Dx()
	p.Height = full.Bounds().Dy()
	if thumb != nil {
		p.Thumb = thumb
	}
	p.Faces = faces
	p.Status = StatusDetected
	p.Err = ""
	s.evictLocked()
	return true
}

// commitSurface re-installs a regenerated surface after eviction without
// touching faces or history.
func (s *Store) commitSurface(id string, full *image.NRGBA) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return false
	}
	p.Full = full
	p.Width = full.Bounds().Dx()
	p.Height = full.Bounds().Dy()
	s.evictLocked()
	return true
}

// evictLocked enforces the live-canvas cap by dropping the least-recently
// active surfaces. The active photo's surface is never evicted; status
// stays detected so the surface can be regenerated on demand.
// CALLER MUST HOLD s.mu.
func (s *Store) evictLocked() {
	var live []*Photo
	for _, p := range s.photos {
		if p.Full != nil && p.ID != s.activeID {
			live = append(live, p)
		}
	}

	capacity := config.MaxLiveCanvases
	if s.activeSurfaceLocked() {
		capacity--
	}
	if len(live) <= capacity {
		return
	}

	sort.Slice(live, func(i, j int) bool { return live[i].lastActive < live[j].lastActive })
	for _, p := range live[:len(live)-capacity] {
		p.Full = nil
		log.Debugf("Store: evicted canvas of %s (%s)", p.ID, p.Name)
	}
}

func (s *Store) activeSurfaceLocked() bool {
	p := s.findLocked(s.activeID)
	return p != nil && p.Full != nil
}

// findLocked returns the photo or nil. CALLER MUST HOLD s.mu (read or
// write).
func (s *Store) findLocked(id string) *Photo {
	if id == "" {
		return nil
	}
	for _, p := range s.photos {
		if p.ID == id {
			return p
		}
	}
	return nil
}
