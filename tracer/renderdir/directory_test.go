package renderdir

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idPattern = regexp.MustCompile(`^[a-z]+-[a-z]+-\d{8}-\d{6}$`)

func TestGenerateRenderID(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, idPattern, GenerateRenderID())
	}
}

func TestCreate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "renders")

	dir, err := Create(root)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir.Path))
	assert.Equal(t, dir.ID, filepath.Base(dir.Path))
	assert.Regexp(t, idPattern, dir.ID)
	assert.False(t, dir.Timestamp.IsZero())

	info, err := os.Stat(dir.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	target, err := os.Readlink(filepath.Join(root, LatestSymlink))
	require.NoError(t, err)
	assert.Equal(t, dir.ID, target)

	assert.Equal(t, filepath.Join(dir.Path, "out.jpg"), dir.GetFilePath("out.jpg"))
}

func TestCopyFile(t *testing.T) {
	dir, err := Create(filepath.Join(t.TempDir(), "renders"))
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(src, []byte("camera: {width: 4}\n"), 0644))
	require.NoError(t, dir.CopyFile(src))

	content, err := os.ReadFile(dir.GetFilePath("scene.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "camera: {width: 4}\n", string(content))

	assert.Error(t, dir.CopyFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
