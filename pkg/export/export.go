// Package export turns rendered surfaces into encoded files and archives.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"path"
	"strings"

	"github.com/pixelveil/pixelveil/config"
)

// Encode serializes a rendered surface. Quality is a 0-1 fraction and
// applies to JPEG only.
func Encode(img image.Image, format config.ExportFormat, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case config.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encoding png: %w", err)
		}
	case config.FormatJPEG:
		q := int(math.Round(quality * 100))
		if q < 1 {
			q = 1
		}
		if q > 100 {
			q = 100
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
			return nil, fmt.Errorf("encoding jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return buf.Bytes(), nil
}

// OutputName derives the exported filename from the source name: the
// extension is swapped for the chosen format and the stem gets a marker so
// the download never silently overwrites the original.
func OutputName(src string, format config.ExportFormat) string {
	ext := ".png"
	if format == config.FormatJPEG {
		ext = ".jpg"
	}
	stem := strings.TrimSuffix(path.Base(src), path.Ext(src))
	if stem == "" {
		stem = "photo"
	}
	return stem + "_blocked" + ext
}
