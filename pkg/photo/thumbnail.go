package photo

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	"github.com/pixelveil/pixelveil/config"
	"github.com/pixelveil/pixelveil/util/log"
)

// smartResizer adapts imaging to the smartcrop.Resizer interface.
type smartResizer struct{}

func (smartResizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Lanczos)
}

// Thumbnail produces the square queue-badge image for a photo. The crop
// window is chosen by content analysis so the badge centers on the
// interesting part of the picture; on analyzer failure it falls back to a
// plain center crop.
func Thumbnail(full *image.NRGBA) *image.NRGBA {
	analyzer := smartcrop.NewAnalyzer(smartResizer{})
	crop, err := analyzer.FindBestCrop(full, config.ThumbSize, config.ThumbSize)
	if err != nil {
		log.Debugf("Thumbnail: smartcrop failed, using center crop: %v", err)
		return imaging.Thumbnail(full, config.ThumbSize, config.ThumbSize, imaging.Lanczos)
	}
	cropped := imaging.Crop(full, crop)
	return imaging.Resize(cropped, config.ThumbSize, config.ThumbSize, imaging.Lanczos)
}
