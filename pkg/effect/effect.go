// Package effect implements the per-region image transforms that obscure a
// face box on an owned pixel buffer. Every effect clamps its reads and
// writes to the canvas bounds, so a box partially or fully outside the
// image degrades to the visible portion or a no-op, never a panic.
package effect

import (
	"image"
	"image/color"

	"github.com/pixelveil/pixelveil/pkg/region"
)

// Effect is one blocking mode. Apply mutates dst in place within the
// face box (plus the effect's documented padding, at most 10%). Intensity
// is the normalized 0-100 knob; each variant maps it to its own physical
// units.
type Effect interface {
	Name() string
	Apply(dst *image.NRGBA, f region.Face, intensity int)
}

// Effect identifiers.
const (
	IDBlur       = "blur"
	IDPixelate   = "pixelate"
	IDEyeBar     = "eyebar"
	IDBlackout   = "blackout"
	IDEmoji      = "emoji"
	IDSolid      = "solid"
	IDGlitch     = "glitch"
	IDSwirl      = "swirl"
	IDSilhouette = "silhouette"
	IDRedact     = "redact"
)

// IDs lists every effect identifier in display order.
func IDs() []string {
	return []string{
		IDBlur, IDPixelate, IDEyeBar, IDBlackout, IDEmoji,
		IDSolid, IDGlitch, IDSwirl, IDSilhouette, IDRedact,
	}
}

// Options carries the per-effect extras chosen by the user.
type Options struct {
	Sticker string      // emoji effect glyph id, empty = palette default
	Color   color.NRGBA // solid fill color; zero value = effect default
}

// ForID maps an effect identifier to its implementation. Unknown ids fall
// back to Blur: a face must always receive some obscuring effect rather
// than be left unprocessed.
func ForID(id string, opts Options) Effect {
	switch id {
	case IDPixelate:
		return Pixelate{}
	case IDEyeBar:
		return EyeBar{}
	case IDBlackout:
		return Blackout{}
	case IDEmoji:
		return Sticker{Glyph: opts.Sticker}
	case IDSolid:
		return Solid{Color: opts.Color}
	case IDGlitch:
		return Glitch{}
	case IDSwirl:
		return Swirl{}
	case IDSilhouette:
		return Silhouette{}
	case IDRedact:
		return Redact{}
	case IDBlur:
		return Blur{}
	default:
		return Blur{}
	}
}

// Apply resolves id to an effect and runs it with a clamped intensity.
func Apply(dst *image.NRGBA, f region.Face, id string, intensity int, opts Options) {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 100 {
		intensity = 100
	}
	ForID(id, opts).Apply(dst, f, intensity)
}
