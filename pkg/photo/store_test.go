package photo

import (
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/region"
)

func surface(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

func addN(t *testing.T, s *Store, n int) []string {
	t.Helper()
	files := make([]File, n)
	for i := range files {
		files[i] = File{Name: fmt.Sprintf("p%d.png", i), Data: []byte{1}}
	}
	accepted, dropped := s.Add(files...)
	require.Equal(t, n, accepted)
	require.Zero(t, dropped)
	return s.IDs()
}

func TestStoreAddTruncatesAtCap(t *testing.T) {
	s := NewStore()
	files := make([]File, config.MaxPhotos+5)
	for i := range files {
		files[i] = File{Name: fmt.Sprintf("p%d.png", i)}
	}

	accepted, dropped := s.Add(files...)
	assert.Equal(t, config.MaxPhotos, accepted)
	assert.Equal(t, 5, dropped)
	assert.Equal(t, config.MaxPhotos, s.Count())

	// The first photo of a fresh store auto-activates.
	assert.Equal(t, s.IDs()[0], s.ActiveID())

	// A full store accepts nothing more.
	accepted, dropped = s.Add(File{Name: "late.png"})
	assert.Zero(t, accepted)
	assert.Equal(t, 1, dropped)
}

func TestStoreRemoveReassignsActive(t *testing.T) {
	s := NewStore()
	ids := addN(t, s, 3)
	require.Equal(t, ids[0], s.ActiveID())

	// Removing the active photo activates its successor.
	assert.True(t, s.Remove(ids[0]))
	assert.Equal(t, ids[1], s.ActiveID())
	assert.False(t, s.Contains(ids[0]))

	// Removing the active photo at the tail falls back to the predecessor.
	require.True(t, s.SetActive(ids[2]))
	assert.True(t, s.Remove(ids[2]))
	assert.Equal(t, ids[1], s.ActiveID())

	assert.True(t, s.Remove(ids[1]))
	assert.Equal(t, "", s.ActiveID())
	assert.False(t, s.Remove("missing"))
}

func TestStoreEvictsLeastRecentlyActiveCanvas(t *testing.T) {
	s := NewStore()
	ids := addN(t, s, 4)
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]

	// Give every photo a distinct recency: a=1 (auto-activate), then b, c, d.
	require.True(t, s.SetActive(b))
	require.True(t, s.SetActive(c))
	require.True(t, s.SetActive(d))

	for _, id := range ids {
		require.True(t, s.commitDetection(id, surface(10, 10), nil, nil))
	}

	// Cap is 3 live canvases; the least recently active lost its surface.
	assert.Equal(t, config.MaxLiveCanvases, s.LiveSurfaceCount())
	_, ok := s.Surface(a)
	assert.False(t, ok, "oldest canvas should be evicted")
	for _, id := range []string{b, c, d} {
		_, ok := s.Surface(id)
		assert.True(t, ok)
	}

	// Eviction does not touch status: the photo can be regenerated.
	info, ok := s.Info(a)
	require.True(t, ok)
	assert.Equal(t, StatusDetected, info.Status)
	assert.False(t, info.HasCanvas)

	// Activating the evicted photo and restoring its surface evicts the
	// new least-recent one instead; the active canvas is never dropped.
	require.True(t, s.SetActive(a))
	require.True(t, s.commitSurface(a, surface(10, 10)))
	assert.Equal(t, config.MaxLiveCanvases, s.LiveSurfaceCount())
	_, ok = s.Surface(a)
	assert.True(t, ok)
	_, ok = s.Surface(b)
	assert.False(t, ok, "b was the least recently active non-active canvas")
}

func TestStoreMutateFacesRecordsHistory(t *testing.T) {
	s := NewStore()
	ids := addN(t, s, 1)
	id := ids[0]
	require.True(t, s.commitDetection(id, surface(10, 10), nil, []region.Face{{ID: "f1"}}))

	// A reported change pushes the pre-mutation state.
	ok := s.MutateFaces(id, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		return append(faces, region.Face{ID: "f2"}), "f2", true
	})
	require.True(t, ok)

	faces, selected, _ := s.Faces(id)
	assert.Len(t, faces, 2)
	assert.Equal(t, "f2", selected)

	require.True(t, s.Undo(id))
	faces, selected, _ = s.Faces(id)
	assert.Len(t, faces, 1)
	assert.Equal(t, "", selected)

	require.True(t, s.Redo(id))
	faces, _, _ = s.Faces(id)
	assert.Len(t, faces, 2)

	// A no-op mutation leaves history alone.
	ok = s.MutateFaces(id, func(faces []region.Face, selected string) ([]region.Face, string, bool) {
		return faces, selected, false
	})
	assert.False(t, ok)
	info, _ := s.Info(id)
	assert.True(t, info.CanUndo)
	assert.False(t, info.CanRedo)
}

func TestStoreFacesReturnsDeepCopy(t *testing.T) {
	s := NewStore()
	id := addN(t, s, 1)[0]
	require.True(t, s.commitDetection(id, surface(10, 10), nil, []region.Face{
		{ID: "f1", Landmarks: []region.Point{{X: 1}}},
	}))

	faces, _, _ := s.Faces(id)
	faces[0].Landmarks[0].X = 99
	faces[0].ID = "hacked"

	fresh, _, _ := s.Faces(id)
	assert.Equal(t, "f1", fresh[0].ID)
	assert.Equal(t, 1.0, fresh[0].Landmarks[0].X)
}

func TestStoreNextPendingPrefersActive(t *testing.T) {
	s := NewStore()
	ids := addN(t, s, 3)

	require.True(t, s.SetActive(ids[2]))
	id, ok := s.NextPending()
	require.True(t, ok)
	assert.Equal(t, ids[2], id)

	// Once the active photo is done, insertion order takes over.
	require.True(t, s.commitDetection(ids[2], surface(10, 10), nil, nil))
	id, ok = s.NextPending()
	require.True(t, ok)
	assert.Equal(t, ids[0], id)

	require.True(t, s.commitDetection(ids[0], surface(10, 10), nil, nil))
	require.True(t, s.commitDetection(ids[1], surface(10, 10), nil, nil))
	_, ok = s.NextPending()
	assert.False(t, ok)
}

func TestStoreStaleCommitAfterRemove(t *testing.T) {
	s := NewStore()
	ids := addN(t, s, 2)

	require.True(t, s.markLoading(ids[0]))
	require.True(t, s.Remove(ids[0]))

	// The in-flight completion for a removed photo is discarded.
	assert.False(t, s.commitDetection(ids[0], surface(10, 10), nil, nil))
	assert.False(t, s.commitSurface(ids[0], surface(10, 10)))
	assert.Equal(t, 1, s.Count())
}

func TestStoreResetOnlyErrored(t *testing.T) {
	s := NewStore()
	id := addN(t, s, 1)[0]

	assert.False(t, s.Reset(id), "pending photo must not reset")

	s.markError(id, "boom")
	info, _ := s.Info(id)
	assert.Equal(t, StatusError, info.Status)
	assert.Equal(t, "boom", info.Err)

	assert.True(t, s.Reset(id))
	info, _ = s.Info(id)
	assert.Equal(t, StatusPending, info.Status)
	assert.Empty(t, info.Err)
}

func TestStoreMarkLoadingGuardsReentry(t *testing.T) {
	s := NewStore()
	id := addN(t, s, 1)[0]

	assert.True(t, s.markLoading(id))
	assert.False(t, s.markLoading(id), "a photo already in flight is rejected")
	assert.False(t, s.markLoading("missing"))
}
