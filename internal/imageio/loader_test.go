package imageio

import (
	"path/filepath"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"skeleton-effect/internal/raster"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("frame.PNG"))
	assert.True(t, IsSupported("/tmp/a.b/frame.tif"))
	assert.False(t, IsSupported("frame.exr"))
	assert.False(t, IsSupported("frame"))
}

func TestSaveAndLoad(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	loader := NewLoader(logger)

	frame := raster.Zeros(16, 24, gocv.MatTypeCV8UC1)
	defer frame.Close()
	frame.SetUCharAt(4, 5, 200)

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, loader.Save(frame, path))

	loaded, err := loader.Load(path, true)
	require.NoError(t, err)
	defer loaded.Close()

	assert.True(t, raster.Equal(frame, loaded))
}

func TestLoadErrors(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	loader := NewLoader(logger)

	m, err := loader.Load("frame.exr", false)
	assert.Error(t, err)
	m.Close()

	m, err = loader.Load(filepath.Join(t.TempDir(), "missing.png"), false)
	assert.Error(t, err)
	m.Close()

	empty := gocv.NewMat()
	defer empty.Close()
	assert.Error(t, loader.Save(empty, filepath.Join(t.TempDir(), "out.png")))
}
