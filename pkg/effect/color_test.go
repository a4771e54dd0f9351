package effect

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"red", color.NRGBA{R: 255, A: 255}},
		{"HotPink", color.NRGBA{R: 255, G: 105, B: 180, A: 255}},
		{" navy ", color.NRGBA{B: 128, A: 255}},
		{"#ff0000", color.NRGBA{R: 255, A: 255}},
		{"#F00", color.NRGBA{R: 255, A: 255}},
		{"#336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}},
		{"", color.NRGBA{}},
		{"not-a-color", color.NRGBA{}},
		{"#12345", color.NRGBA{}},
		{"#zzzzzz", color.NRGBA{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseColor(tt.in), "input %q", tt.in)
	}
}
