package photo

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/pixelveil/pixelveil/config"
)

// DecodeBytes decodes an input file into an owned NRGBA surface. PNG,
// JPEG and GIF route through the standard registry; WebP is sniffed by its
// RIFF header and decoded separately.
func DecodeBytes(data []byte) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decoding image: empty file")
	}
	if len(data) > config.MaxFileBytes {
		return nil, fmt.Errorf("decoding image: file exceeds %d bytes", config.MaxFileBytes)
	}

	var img image.Image
	var err error
	if isWebP(data) {
		img, err = webp.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("decoding image: zero-sized image")
	}
	return imaging.Clone(img), nil
}

func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WEBP"))
}
