package media

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataURI(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}

	uri := DataURI(img)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	assert.NoError(t, err)
	assert.Equal(t, img, decoded)
}

func TestPublicID(t *testing.T) {
	assert.Equal(t, "eventos/cartel", PublicID("eventos", "cartel"))
	assert.Equal(t, "eventos/2024/cartel", PublicID("/eventos/2024/", "/cartel"))
}

func TestHostError(t *testing.T) {
	type result struct{ msg string }

	assert.NoError(t, hostError("op", nil, &result{}, func() string { return "" }))
	assert.Error(t, hostError("op", errors.New("boom"), (*result)(nil), func() string { return "" }))
	assert.Error(t, hostError("op", nil, (*result)(nil), func() string { return "" }))
	assert.EqualError(t, hostError("op", nil, &result{}, func() string { return "bad preset" }), "cloudinary op failed: bad preset")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound("Can't find folder with path eventos"))
	assert.True(t, isNotFound("Resource not found"))
	assert.False(t, isNotFound("Rate limit exceeded"))
}
