package export

import (
	"archive/zip"
	"bytes"
	"image"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelveil/pixelveil/config"
)

func TestEncodeFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))

	data, err := Encode(img, config.FormatPNG, 0.92)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	data, err = Encode(img, config.FormatJPEG, 0.92)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])

	_, err = Encode(img, "bmp", 0.92)
	assert.Error(t, err)
}

func TestEncodeClampsJPEGQuality(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))

	// Out-of-range qualities must not error, just clamp.
	_, err := Encode(img, config.FormatJPEG, -1)
	assert.NoError(t, err)
	_, err = Encode(img, config.FormatJPEG, 5)
	assert.NoError(t, err)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		src    string
		format config.ExportFormat
		want   string
	}{
		{"holiday.jpg", config.FormatPNG, "holiday_blocked.png"},
		{"holiday.jpg", config.FormatJPEG, "holiday_blocked.jpg"},
		{"archive.tar.gz", config.FormatPNG, "archive.tar_blocked.png"},
		{"noext", config.FormatPNG, "noext_blocked.png"},
		{"dir/nested.png", config.FormatJPEG, "nested_blocked.jpg"},
		{".png", config.FormatPNG, "photo_blocked.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputName(tt.src, tt.format), "src=%q", tt.src)
	}
}

func TestArchiveRoundTripWithDedup(t *testing.T) {
	entries := []Entry{
		{Name: "a_blocked.png", Data: []byte("one")},
		{Name: "a_blocked.png", Data: []byte("two")},
		{Name: "a_blocked.png", Data: []byte("three")},
		{Name: "b_blocked.png", Data: []byte("four")},
	}

	blob, err := Archive(entries)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	require.Len(t, zr.File, 4)

	got := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		got[f.Name] = string(data)
	}

	assert.Equal(t, map[string]string{
		"a_blocked.png":     "one",
		"a_blocked (1).png": "two",
		"a_blocked (2).png": "three",
		"b_blocked.png":     "four",
	}, got)
}

func TestArchiveEmpty(t *testing.T) {
	blob, err := Archive(nil)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	require.NoError(t, err)
	assert.Empty(t, zr.File)
}
