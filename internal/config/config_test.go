package config_test

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/gohw/internal/config"
	"github.com/kjkrol/gohw/pkg/glw"
)

func TestDefault(t *testing.T) {
	conf := config.Default()

	require.NoError(t, conf.Validate())
	assert.Equal(t, 864, conf.Window.Width)
	assert.Equal(t, 60, conf.Render.FPS)
	assert.True(t, conf.Assets.FlipTextures)
	level, err := conf.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gohw.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[window]
width = 1024
title = "cubes"

[render]
fps = 30
drain_max = 8

[log]
level = "debug"
format = "json"
`), 0o644))

	conf, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1024, conf.Window.Width)
	assert.Equal(t, 864, conf.Window.Height, "unset keys keep their defaults")
	assert.Equal(t, "cubes", conf.WindowConfig().Title)
	assert.Equal(t, 24, conf.WindowConfig().DepthBits)
	assert.Equal(t, 30, conf.Render.FPS)
	assert.Len(t, conf.RunnerOptions(fstest.MapFS{}), 6)

	var buf bytes.Buffer
	logger, err := conf.Logger(&buf)
	require.NoError(t, err)
	logger.Debug("hello", slog.Int("n", 1))
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, glw.ErrResourceLoad))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"syntax":       "[window\nwidth = 1",
		"unknown key":  "[window]\ncolour = 3",
		"bad size":     "[window]\nwidth = 0",
		"old gl":       "[window]\ngl_major = 2",
		"negative fps": "[render]\nfps = -1",
		"bad level":    "[log]\nlevel = \"loud\"",
		"bad format":   "[log]\nformat = \"xml\"",
		"wrong type":   "[window]\nwidth = \"wide\"",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(doc)
			assert.Error(t, err)
		})
	}
}

func TestAssetsFS(t *testing.T) {
	embedded := fstest.MapFS{"shaders/a.vert": {Data: []byte("x")}}
	conf := config.Default()
	assert.Equal(t, embedded, conf.AssetsFS(embedded))

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "b.vert"), []byte("y"), 0o644))
	conf.Assets.Dir = dir
	data, err := fs.ReadFile(conf.AssetsFS(embedded), "shaders/b.vert")
	require.NoError(t, err)
	assert.Equal(t, "y", string(data))
}

func TestEncode_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.Default().Encode(&buf))

	conf, err := config.Parse(buf.String())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), conf)
}
