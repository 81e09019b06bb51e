package demos_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/gohw/internal/platform"
	"github.com/kjkrol/gohw/pkg/demos"
	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/glw/glwtest"
	"github.com/kjkrol/gohw/pkg/homework"
)

type stillWindow struct {
	swaps  int
	closed int
}

func (w *stillWindow) Show() {}
func (w *stillWindow) NextEventTimeout(int) platform.Event { return platform.TimeoutEvent{} }
func (w *stillWindow) SwapBuffers() { w.swaps++ }
func (w *stillWindow) FramebufferSize() (int, int) { return 864, 864 }
func (w *stillWindow) Close() { w.closed++ }

func run(t *testing.T, hw homework.Homework, frames uint64) (*glwtest.Recorder, *stillWindow) {
	t.Helper()
	api := glwtest.NewRecorder()
	window := &stillWindow{}
	runner := homework.NewRunner(window, api, hw, homework.WithRefreshRate(1000), homework.WithMaxFrames(frames))
	require.NoError(t, runner.Run(context.Background()))
	return api, window
}

func TestTriangle_OneDrawOfThreeVertices(t *testing.T) {
	api, window := run(t, &demos.Triangle{}, 1)

	require.Len(t, api.Draws, 1)
	draw := api.Draws[0]
	assert.Equal(t, uint32(glw.TRIANGLES), draw.Mode)
	assert.Equal(t, int32(0), draw.First)
	assert.Equal(t, int32(3), draw.Count)
	assert.False(t, draw.Indexed)
	assert.NotZero(t, draw.Program)
	assert.Equal(t, 1, window.swaps)
	assert.Equal(t, [4]float32{0.2, 0.3, 0.3, 1.0}, api.ClearColorValue())
	assert.Zero(t, api.LiveTotal())
	assert.Empty(t, api.Misuse())
}

func TestEveryDemo_ReleasesWhatItCreates(t *testing.T) {
	registry := demos.Registry()
	for _, entry := range registry.Entries() {
		t.Run(entry.Name, func(t *testing.T) {
			api, window := run(t, entry.New(), 2)

			assert.Zero(t, api.LiveTotal(), "live objects after teardown")
			assert.Empty(t, api.Misuse())
			assert.Equal(t, 2, window.swaps)
			assert.Equal(t, 1, window.closed)
		})
	}
}

func TestQuad_IndexedWireframe(t *testing.T) {
	api, _ := run(t, &demos.Quad{}, 1)

	require.Len(t, api.Draws, 1)
	assert.True(t, api.Draws[0].Indexed)
	assert.Equal(t, int32(6), api.Draws[0].Count)
	assert.Contains(t, api.Calls, "PolygonMode(0x1B01)")
	assert.Equal(t, uint32(glw.FILL), api.PolygonModeValue(), "teardown restores fill mode")
}

func TestTwoTriangles_SixVertices(t *testing.T) {
	api, _ := run(t, &demos.TwoTriangles{}, 1)

	require.Len(t, api.Draws, 1)
	assert.Equal(t, int32(6), api.Draws[0].Count)
	assert.False(t, api.Draws[0].Indexed)
}

func TestShaderOffset_SetsUniform(t *testing.T) {
	api, _ := run(t, &demos.ShaderOffset{}, 1)

	require.Len(t, api.Uniforms, 1)
	assert.Equal(t, []float32{demos.XOffset}, api.Uniforms[0].Values)
	require.Len(t, api.Draws, 1)
	assert.Equal(t, int32(3), api.Draws[0].Count)
}

func TestTexturedQuad_BindsBothUnits(t *testing.T) {
	hw := &demos.TexturedQuad{}
	api, _ := run(t, hw, 1)

	require.Len(t, api.Uploads, 2)
	require.Len(t, api.Draws, 1)
	assert.Len(t, api.Draws[0].Textures, 2)
	assert.Equal(t, api.Uploads[0].Texture, api.Draws[0].Textures[0])
	assert.Equal(t, api.Uploads[1].Texture, api.Draws[0].Textures[1])

	hw.HandleEvent(nil, homework.KeyPress{Label: "Up"})
	assert.InDelta(t, 0.3, hw.Mix, 1e-6)
}

func TestCubes(t *testing.T) {
	hw := &demos.Cubes{}
	api, _ := run(t, hw, 2)

	assert.Len(t, api.Draws, 20, "ten cubes per frame")
	for _, draw := range api.Draws {
		assert.Equal(t, int32(demos.CubeVertexCount), draw.Count)
	}
	assert.Contains(t, api.Calls, "Enable(0xB71)")
	assert.False(t, api.IsEnabled(glw.DEPTH_TEST), "teardown disables depth testing")

	models := hw.Models()
	require.Len(t, models, 10)
	assert.Equal(t, mgl32.Translate3D(2.0, 5.0, -15.0), models[1], "cube 1 does not spin")
	assert.NotEqual(t, mgl32.Translate3D(0, 0, 0), models[0], "cube 0 spins")
}

func TestDemo_MissingShaderFails(t *testing.T) {
	api := glwtest.NewRecorder()
	window := &stillWindow{}
	runner := homework.NewRunner(window, api, &demos.Triangle{}, homework.WithAssets(fstest.MapFS{}))

	err := runner.Run(context.Background())

	assert.True(t, errors.Is(err, glw.ErrResourceLoad))
	assert.Equal(t, 1, window.closed)
	assert.Zero(t, api.LiveTotal())
}

func TestDemo_BrokenShaderFails(t *testing.T) {
	vertex, err := demos.Assets.ReadFile("shaders/basic.vert")
	require.NoError(t, err)
	fsys := fstest.MapFS{
		"shaders/basic.vert": {Data: vertex},
		"shaders/basic.frag": {Data: []byte("#version 330 core\n#error unfinished\n")},
	}
	api := glwtest.NewRecorder()
	runner := homework.NewRunner(&stillWindow{}, api, &demos.Triangle{}, homework.WithAssets(fsys))

	err = runner.Run(context.Background())

	assert.True(t, errors.Is(err, glw.ErrCompile))
	assert.Zero(t, api.LiveTotal())
	assert.Empty(t, api.Misuse())
}

func TestRegistry(t *testing.T) {
	assert.Equal(t,
		[]string{"clear", "cubes", "quad", "shader-offset", "textured-quad", "triangle", "two-triangles"},
		demos.Registry().Names())
}
