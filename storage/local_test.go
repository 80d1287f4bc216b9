package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	u, err := NewLocalUploader(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	res, err := u.Upload(context.Background(), "sponsors/logo.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "sponsors/logo.png", res.Key)
	assert.Equal(t, "http://localhost:8080/uploads/sponsors/logo.png", res.Location)
	assert.NotEmpty(t, res.ETag)

	data, err := os.ReadFile(filepath.Join(dir, "sponsors", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, u.Delete(context.Background(), "sponsors/logo.png"))
	assert.ErrorIs(t, u.Delete(context.Background(), "sponsors/logo.png"), ErrObjectNotFound)
}

func TestLocalUploaderRejectsEscapingKeys(t *testing.T) {
	u, err := NewLocalUploader(t.TempDir(), "")
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", "/abs/path"} {
		_, err := u.Upload(context.Background(), key, "text/plain", strings.NewReader("x"))
		assert.Error(t, err, key)
	}
	assert.Empty(t, u.GetPublicURL("a.png"))
}

func TestObjectKey(t *testing.T) {
	k1 := ObjectKey("gallery", "Photo.JPG")
	k2 := ObjectKey("gallery", "Photo.JPG")
	assert.True(t, strings.HasPrefix(k1, "gallery/"))
	assert.True(t, strings.HasSuffix(k1, ".jpg"))
	assert.NotEqual(t, k1, k2)
}

func TestR2ConfigValidation(t *testing.T) {
	assert.False(t, CloudflareR2UploaderConfig{}.Enabled())
	partial := CloudflareR2UploaderConfig{AccountID: "acc"}
	assert.True(t, partial.Enabled())
	assert.Error(t, partial.Validate())

	_, err := NewCloudflareR2Uploader(context.Background(), partial)
	assert.Error(t, err)
}
