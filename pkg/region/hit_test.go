package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaceAtReturnsTopmost(t *testing.T) {
	faces := []Face{
		{ID: "bottom", Box: Box{X: 0, Y: 0, W: 100, H: 100}},
		{ID: "top", Box: Box{X: 50, Y: 50, W: 100, H: 100}},
	}

	f, ok := FaceAt(75, 75, faces)
	assert.True(t, ok)
	assert.Equal(t, "top", f.ID)

	f, ok = FaceAt(10, 10, faces)
	assert.True(t, ok)
	assert.Equal(t, "bottom", f.ID)

	_, ok = FaceAt(300, 300, faces)
	assert.False(t, ok)
}

func TestHandleAtCorners(t *testing.T) {
	f := Face{ID: "a", Box: Box{X: 100, Y: 100, W: 60, H: 60}}

	assert.Equal(t, HitDelete, HandleAt(160, 100, f, 1))
	assert.Equal(t, HitResize, HandleAt(160, 160, f, 1))
	assert.Equal(t, HitBody, HandleAt(130, 130, f, 1))
	assert.Equal(t, HitNone, HandleAt(500, 500, f, 1))
}

func TestHandleAtScalesWithDisplay(t *testing.T) {
	f := Face{ID: "a", Box: Box{X: 100, Y: 100, W: 60, H: 60}}

	// At display scale 0.25 the image-space hit radius quadruples, so a
	// point 40px from the corner still hits the control.
	assert.Equal(t, HitDelete, HandleAt(160+40, 100, f, 0.25))
	// At 1:1 the same point misses.
	assert.Equal(t, HitNone, HandleAt(160+40, 100, f, 1))
}
