package gekko

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", ColorRed},
		{"#f00", ColorRed},
		{"#00ff0000", RGBA(0, 1, 0, 0)},
		{"#ffffffff", ColorWhite},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ColorHex(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want.R, got.R, 1e-6)
			assert.InDelta(t, tt.want.G, got.G, 1e-6)
			assert.InDelta(t, tt.want.B, got.B, 1e-6)
			assert.InDelta(t, tt.want.A, got.A, 1e-6)
		})
	}
}

func TestColorHex_Invalid(t *testing.T) {
	for _, in := range []string{"", "red", "#12345", "#gggggg", "#ffffffzz"} {
		_, err := ColorHex(in)
		assert.Error(t, err, in)
	}
}

func TestColor_HexRoundTrip(t *testing.T) {
	assert.Equal(t, "#ff0000", ColorRed.Hex())
	assert.Equal(t, "#0000ff80", ColorBlue.WithAlpha(0.5).Hex())

	parsed, err := ColorHex(ColorSilver.WithAlpha(DefaultGridAlpha).Hex())
	require.NoError(t, err)
	assert.InDelta(t, ColorSilver.R, parsed.R, 1.0/255)
	assert.InDelta(t, DefaultGridAlpha, parsed.A, 1.0/255)
}

func TestColor_Linear(t *testing.T) {
	// Black and white are fixed points of the sRGB transfer function
	assert.Equal(t, LinearRgba{0, 0, 0, 1}, ColorBlack.Linear())
	white := ColorWhite.Linear()
	assert.InDelta(t, 1, white.R, 1e-6)

	// Mid grey is much darker in linear space
	gray := ColorGray.WithAlpha(0.25).Linear()
	assert.InDelta(t, 0.214, gray.R, 0.001)
	assert.Equal(t, float32(0.25), gray.A, "alpha is not gamma encoded")
}

func TestHsla(t *testing.T) {
	red := Hsla(0, 1, 0.5, 1)
	assert.InDelta(t, 1, red.R, 1e-6)
	assert.InDelta(t, 0, red.G, 1e-6)
	assert.InDelta(t, 0, red.B, 1e-6)

	green := Hsla(120, 1, 0.5, 0.3)
	assert.InDelta(t, 1, green.G, 1e-6)
	assert.Equal(t, float32(0.3), green.A)
}
