package photo

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/pkg/effect"
	"github.com/pixelveil/pixelveil/pkg/region"
)

// Render produces the processed output for one photo: a pure function of
// the base surface, the ordered face list and the global settings. The
// base is cloned first so the decoded original survives for re-renders and
// repeat exports; effects are applied in list order, so overlapping
// regions show the last one's effect in the overlap.
func Render(base *image.NRGBA, faces []region.Face, s config.Settings) *image.NRGBA {
	out := imaging.Clone(base)
	opts := effect.Options{
		Sticker: s.Sticker,
		Color:   effect.ParseColor(s.ColorHex),
	}
	for _, f := range faces {
		id := f.EffectID
		if id == "" {
			id = s.EffectID
		}
		intensity := s.Intensity
		if f.HasIntensity {
			intensity = f.Intensity
		}
		effect.Apply(out, f, id, intensity, opts)
	}
	return out
}
