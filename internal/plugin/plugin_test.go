package plugin

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skeleton-effect/internal/effect"
	"skeleton-effect/internal/params"
)

func TestSkeleton(t *testing.T) {
	p := Skeleton()
	require.NoError(t, p.Validate())
	assert.Equal(t, "Skeleton", p.Name)
	assert.Equal(t, effect.GaussianBlurName, p.Effect)
	require.Len(t, p.Parameters, 1)

	slider, ok := p.Parameters[0].(*params.SliderParam)
	require.True(t, ok)
	assert.Equal(t, params.SliderKey, slider.Name())
	assert.Equal(t, 0.0, slider.Def)
	assert.Equal(t, 100.0, slider.Max)
	assert.Equal(t, params.Bag{params.SliderKey: 0.0}, p.Defaults())
}

func TestAddParameter(t *testing.T) {
	p := New("Test")
	require.NoError(t, p.AddParameter(params.Slider("SliderParam", 0, 0, 1, 0.1)))
	assert.Error(t, p.AddParameter(params.Checkbox("SliderParam", true)))
	assert.Error(t, p.AddParameter(params.Slider("Bad", 5, 0, 1, 0.1)))
	assert.Len(t, p.Parameters, 1)
}

func TestValidate(t *testing.T) {
	missing := New("Missing")
	assert.ErrorContains(t, missing.Validate(), "not declared")

	wrongKind := New("WrongKind")
	require.NoError(t, wrongKind.AddParameter(params.Checkbox(params.SliderKey, false)))
	assert.ErrorContains(t, wrongKind.Validate(), "effect expects a slider")

	unknown := Skeleton()
	unknown.Effect = "sharpen"
	assert.ErrorContains(t, unknown.Validate(), "unknown effect")

	unnamed := Skeleton()
	unnamed.Name = ""
	assert.Error(t, unnamed.Validate())

	passthrough := New("Passthrough")
	passthrough.Effect = effect.PassthroughName
	assert.NoError(t, passthrough.Validate())
}

func TestSetSrcFolder(t *testing.T) {
	dir := t.TempDir()
	p := Skeleton()

	// no render entry yet
	assert.ErrorContains(t, p.SetSrcFolder(dir), "no render entry")
	assert.Empty(t, p.SrcFolder)

	entry := filepath.Join(dir, "render.py")
	require.NoError(t, os.WriteFile(entry, []byte("def render(a, p): return a\n"), 0o644))
	require.NoError(t, p.SetSrcFolder(dir))
	assert.Equal(t, dir, p.SrcFolder)
	assert.Equal(t, entry, p.Entry)
	assert.Empty(t, p.Requirements)

	req := filepath.Join(dir, RequirementsFile)
	require.NoError(t, os.WriteFile(req, []byte("numpy\n"), 0o644))
	require.NoError(t, p.SetSrcFolder(dir))
	assert.Equal(t, req, p.Requirements)

	assert.Error(t, p.SetSrcFolder(filepath.Join(dir, "missing")))
	assert.Error(t, p.SetSrcFolder(req))
}

func TestSetSrcFolderEffectNamedEntry(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, effect.GaussianBlurName+".go")
	require.NoError(t, os.WriteFile(entry, []byte("package main\n"), 0o644))

	p := Skeleton()
	require.NoError(t, p.SetSrcFolder(dir))
	assert.Equal(t, entry, p.Entry)

	// render.py wins over the effect-named file
	preferred := filepath.Join(dir, "render.py")
	require.NoError(t, os.WriteFile(preferred, nil, 0o644))
	require.NoError(t, p.SetSrcFolder(dir))
	assert.Equal(t, preferred, p.Entry)
}

func TestMustAddParameter(t *testing.T) {
	p := New("Test").MustAddParameter(params.Checkbox("Invert", false))
	assert.Len(t, p.Parameters, 1)

	assert.Panics(t, func() { p.MustAddParameter(params.Checkbox("Invert", true)) })
	assert.Panics(t, func() { p.MustAddParameter(params.Slider("Bad", 5, 0, 1, 0.1)) })
}

func TestManifestRoundTrip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "render.py"), nil, 0o644))

	p := Skeleton()
	require.NoError(t, p.SetSrcFolder(src))
	require.NoError(t, p.AddParameter(params.Checkbox("Invert", true)))
	require.NoError(t, p.AddParameter(params.Color("Tint", params.RGBA{R: 1, G: 0.5, A: 1})))
	require.NoError(t, p.AddParameter(params.Point("Center", params.XY{X: 10, Y: 20})))
	require.NoError(t, p.AddParameter(params.Point3D("Light", params.XYZ{X: 1, Y: 2, Z: 3})))
	require.NoError(t, p.AddParameter(params.Popup("Mode", []string{"fast", "best"}, 1)))

	path := filepath.Join(t.TempDir(), ManifestFile)
	require.NoError(t, WriteManifest(path, p))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.Effect, loaded.Effect)
	assert.Equal(t, p.SrcFolder, loaded.SrcFolder)
	assert.Equal(t, filepath.Join(src, "render.py"), loaded.Entry)
	assert.Equal(t, p.Parameters, loaded.Parameters)
	assert.Equal(t, p.Defaults(), loaded.Defaults())
}

func TestLoadManifestRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFile)
	body := "name = \"X\"\neffect = \"passthrough\"\ncolour = \"red\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := LoadManifest(path)
	assert.ErrorContains(t, err, "unknown keys")
}

func TestManifestBuilder(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	out := t.TempDir()

	b := NewManifestBuilder(nil, logger)
	require.NoError(t, b.Build(context.Background(), out, Skeleton()))

	manifest := filepath.Join(out, "Skeleton", ManifestFile)
	assert.FileExists(t, manifest)
	assert.NotEmpty(t, hook.AllEntries())

	loaded, err := LoadManifest(manifest)
	require.NoError(t, err)
	assert.Equal(t, "Skeleton", loaded.Name)
}

func TestManifestBuilderRunsCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	logger, _ := logtest.NewNullLogger()
	out := t.TempDir()
	marker := filepath.Join(out, "built")

	b := NewManifestBuilder([]string{"sh", "-c", `cp "$0" "` + marker + `"`}, logger)
	require.NoError(t, b.Build(context.Background(), out, Skeleton()))
	assert.FileExists(t, marker)

	failing := NewManifestBuilder([]string{"sh", "-c", "exit 3"}, logger)
	assert.Error(t, failing.Build(context.Background(), out, Skeleton()))
}

func TestManifestBuilderRejectsInvalidPlugin(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	out := t.TempDir()

	err := NewManifestBuilder(nil, logger).Build(context.Background(), out, New("Empty"))
	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(out, "Empty"))
}
