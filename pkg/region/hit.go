package region

import "github.com/pixelveil/pixelveil/config"

// Handle identifies which interactive affordance (if any) a point hit.
type Handle int

// Hit-test results, from nothing to the per-corner controls.
const (
	HitNone Handle = iota
	HitBody
	HitResize // bottom-right corner
	HitDelete // top-right corner
)

// FaceAt returns the topmost face whose box contains the point. Later
// entries in the list are on top, so the list is scanned in reverse.
// The second return is false when no face contains the point.
func FaceAt(x, y float64, faces []Face) (Face, bool) {
	for i := len(faces) - 1; i >= 0; i-- {
		if faces[i].Box.Contains(x, y) {
			return faces[i], true
		}
	}
	return Face{}, false
}

// handleRadius converts the minimum screen-space touch size into image
// space. displayScale is display pixels per image pixel; a photo shown at
// half size doubles the effective image-space radius so the control stays
// usable at any zoom.
func handleRadius(displayScale float64) float64 {
	if displayScale <= 0 {
		displayScale = 1
	}
	return float64(config.MinTouchPx) / 2 / displayScale
}

// HandleAt tests the selected face's affordances before its body: the
// delete control sits on the top-right corner, the resize handle on the
// bottom-right. Affordances win over the body so they stay reachable even
// when the box is small on screen.
func HandleAt(x, y float64, f Face, displayScale float64) Handle {
	r := handleRadius(displayScale)

	dx := x - (f.Box.X + f.Box.W)
	dy := y - f.Box.Y
	if dx*dx+dy*dy <= r*r {
		return HitDelete
	}

	dy = y - (f.Box.Y + f.Box.H)
	if dx*dx+dy*dy <= r*r {
		return HitResize
	}

	if f.Box.Contains(x, y) {
		return HitBody
	}
	return HitNone
}
