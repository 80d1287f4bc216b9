package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#1F2937", "215 28% 17%"},
		{"#FBBF24", "43 96% 56%"},
		{"#000", "0 0% 0%"},
		{"#fff", "0 0% 100%"},
		{"#ff0000", "0 100% 50%"},
		{"#00ff00", "120 100% 50%"},
		{"#0000FF", "240 100% 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := HexToHSL(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.CSSVar())
		})
	}
}

func TestHexToHSLInvalid(t *testing.T) {
	for _, s := range []string{"", "1F2937", "#12", "#12345", "#GGGGGG", "red"} {
		_, err := HexToHSL(s)
		assert.ErrorIs(t, err, ErrInvalidHexColor, s)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "kejohanan-bola-sepak-2025", Slugify("Kejohanan Bola Sepak 2025"))
	assert.Equal(t, "sepak-takraw", Slugify("  --Sepak   Takraw!! "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("rahsia123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("rahsia123", hash))
	assert.False(t, CheckPasswordHash("salah", hash))
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://picsum.photos/800/600"))
	assert.True(t, IsHTTPURL("http://localhost:8080/uploads/a.png"))
	for _, s := range []string{"", "example.org", "/uploads/a.png", "ftp://x/y", "javascript:alert(1)", "https://"} {
		assert.False(t, IsHTTPURL(s), s)
	}
}
