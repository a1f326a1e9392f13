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

func TestLocalImageStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalImageStore(dir, "/uploads/")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "Sunset.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = s.Save(context.Background(), "script.sh", strings.NewReader("x"))
	assert.Error(t, err)
}
