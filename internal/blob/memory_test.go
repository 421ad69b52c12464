package blob

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUploader(t *testing.T) {
	u := NewMemoryUploader()

	url, err := u.Upload(context.Background(), "inspections/1-x-a.jpg", strings.NewReader("jpeg-bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "memory://inspections/1-x-a.jpg", url)

	data, ok := u.Object("inspections/1-x-a.jpg")
	require.True(t, ok)
	assert.Equal(t, []byte("jpeg-bytes"), data)
	assert.Equal(t, 1, u.Len())
}

func TestObjectKey(t *testing.T) {
	a := ObjectKey("inspections", "front.jpg")
	b := ObjectKey("inspections", "front.jpg")

	assert.True(t, strings.HasPrefix(a, "inspections/"))
	assert.True(t, strings.HasSuffix(a, "-front.jpg"))
	assert.NotEqual(t, a, b, "keys must not collide for identical filenames")
}
