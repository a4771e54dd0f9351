package photo

import (
	"bytes"
	"image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBytesRejectsEmptyAndGarbage(t *testing.T) {
	_, err := DecodeBytes(nil)
	assert.Error(t, err)

	_, err = DecodeBytes([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestDecodeBytesPNG(t *testing.T) {
	img, err := DecodeBytes(pngBytes(t, 32, 24))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 24), img.Bounds())
}

func TestDecodeBytesJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 32, 24)), nil))

	img, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 24), img.Bounds())
}

func TestWebPSniffing(t *testing.T) {
	header := append([]byte("RIFF"), 0, 0, 0, 0)
	header = append(header, []byte("WEBP")...)
	assert.True(t, isWebP(header))
	assert.False(t, isWebP([]byte("RIFFxxxxWAVE")))
	assert.False(t, isWebP([]byte("RIFF")))

	// A bare header routes to the WebP decoder and fails there rather than
	// in the generic registry.
	_, err := DecodeBytes(header)
	assert.Error(t, err)
}
