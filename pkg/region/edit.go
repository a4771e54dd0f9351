package region

import "github.com/pixelveil/pixelveil/config"

// AddManual appends a user-drawn region to the list. Boxes smaller than the
// manual minimum in either axis are rejected (a stray click is not a face).
// Returns the new face and true on success.
func AddManual(faces []Face, box Box) ([]Face, Face, bool) {
	box = NewBox(box.X, box.Y, box.W, box.H)
	if box.W < config.MinManualFaceSize || box.H < config.MinManualFaceSize {
		return faces, Face{}, false
	}
	f := NewManual(box)
	return append(faces, f), f, true
}

// MoveFace translates the identified face by (dx, dy). When the moved box's
// center falls outside the canvas, the gesture is a drag-to-delete and the
// face is removed instead of relocated. Returns the updated list and whether
// the face was removed.
func MoveFace(faces []Face, id string, dx, dy, canvasW, canvasH float64) ([]Face, bool) {
	for i := range faces {
		if faces[i].ID != id {
			continue
		}
		moved := faces[i].Box.Translate(dx, dy)
		cx, cy := moved.Center()
		if cx < 0 || cy < 0 || cx >= canvasW || cy >= canvasH {
			return append(faces[:i:i], faces[i+1:]...), true
		}
		faces[i].Box = moved
		// A user edit makes the region manual; stale landmarks no longer
		// line up with the box.
		faces[i].Manual = true
		faces[i].Landmarks = nil
		return faces, false
	}
	return faces, false
}

// ResizeFace moves the bottom-right corner of the identified face to
// (x, y), anchoring the top-left. The box never inverts and never shrinks
// below the minimum face size in either axis.
func ResizeFace(faces []Face, id string, x, y float64) []Face {
	for i := range faces {
		if faces[i].ID != id {
			continue
		}
		b := faces[i].Box
		w := x - b.X
		h := y - b.Y
		if w < config.MinFaceSize {
			w = config.MinFaceSize
		}
		if h < config.MinFaceSize {
			h = config.MinFaceSize
		}
		faces[i].Box = Box{X: b.X, Y: b.Y, W: w, H: h}
		faces[i].Manual = true
		faces[i].Landmarks = nil
		return faces
	}
	return faces
}

// RemoveFace deletes the identified face. Returns the updated list and
// whether anything was removed.
func RemoveFace(faces []Face, id string) ([]Face, bool) {
	for i := range faces {
		if faces[i].ID == id {
			return append(faces[:i:i], faces[i+1:]...), true
		}
	}
	return faces, false
}

// MergeRedetect replaces all detector-sourced faces with a fresh detection
// result while preserving manual regions. Manual regions keep their z-order
// position after the new detections.
func MergeRedetect(faces []Face, detected []Face) []Face {
	var manual []Face
	for _, f := range faces {
		if f.Manual {
			manual = append(manual, f)
		}
	}
	out := make([]Face, 0, len(detected)+len(manual))
	out = append(out, detected...)
	out = append(out, manual...)
	return out
}
