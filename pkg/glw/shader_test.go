package glw_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/glw/glwtest"
)

const passVertex = `#version 330 core
layout (location = 0) in vec3 aPos;
void main() {
	gl_Position = vec4(aPos, 1.0);
}
`

const passFragment = `#version 330 core
out vec4 FragColor;
uniform vec4 u_color;
void main() {
	FragColor = u_color;
}
`

const brokenFragment = `#version 330 core
#error missing semicolon
void main() { FragColor = vec4(1.0) }
`

func TestNewShader_ValidSources(t *testing.T) {
	cases := []struct {
		name   string
		stage  glw.ShaderStage
		source string
	}{
		{"vertex", glw.VertexStage, passVertex},
		{"fragment", glw.FragmentStage, passFragment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := glwtest.NewRecorder()
			shader, err := glw.NewShader(api, tc.stage, tc.source)
			require.NoError(t, err)

			assert.NotZero(t, shader.Handle())
			assert.True(t, shader.Compiled())
			assert.Equal(t, tc.stage, shader.Stage())
			assert.Equal(t, tc.source, api.ShaderSourceOf(shader.Handle()))
			assert.Equal(t, 1, api.Live(glwtest.ShaderObject))
		})
	}
}

func TestNewShader_InvalidSourceLeaksNothing(t *testing.T) {
	for _, source := range []string{brokenFragment, "", "   \n"} {
		api := glwtest.NewRecorder()
		before := api.LiveTotal()

		shader, err := glw.NewShader(api, glw.FragmentStage, source)

		require.Error(t, err)
		assert.Nil(t, shader)
		assert.True(t, errors.Is(err, glw.ErrCompile))
		assert.Equal(t, glw.KindCompile, glw.KindOf(err))
		assert.Equal(t, before, api.LiveTotal(), "failed compile must not leak a shader object")
		assert.Equal(t, 1, api.Created(glwtest.ShaderObject))
		assert.Empty(t, api.Misuse())
	}
}

func TestNewShader_CompileErrorCarriesLog(t *testing.T) {
	api := glwtest.NewRecorder()
	api.CompileLog = "0:3(35): error: syntax error, unexpected '}'\n"

	_, err := glw.NewShader(api, glw.FragmentStage, brokenFragment)

	var glErr *glw.Error
	require.True(t, errors.As(err, &glErr))
	assert.Equal(t, glw.FragmentStage, glErr.Stage)
	assert.Equal(t, "0:3(35): error: syntax error, unexpected '}'", glErr.Log)
	assert.Contains(t, err.Error(), "stage:fragment")
}

func TestNewShader_LogIsBounded(t *testing.T) {
	api := glwtest.NewRecorder()
	api.CompileLog = strings.Repeat("x", 4*glw.InfoLogSize)

	_, err := glw.NewShader(api, glw.VertexStage, "#error")

	var glErr *glw.Error
	require.True(t, errors.As(err, &glErr))
	assert.LessOrEqual(t, len(glErr.Log), glw.InfoLogSize)
	assert.NotEmpty(t, glErr.Log)
}

func TestNewShader_LogKeepsWholeRunes(t *testing.T) {
	for _, r := range []string{"é", "日", "🙂"} {
		t.Run(r, func(t *testing.T) {
			api := glwtest.NewRecorder()
			api.CompileLog = strings.Repeat(r, glw.InfoLogSize)

			_, err := glw.NewShader(api, glw.FragmentStage, "#error")

			var glErr *glw.Error
			require.True(t, errors.As(err, &glErr))
			assert.True(t, utf8.ValidString(glErr.Log), "log cut inside a rune")
			assert.LessOrEqual(t, len(glErr.Log), glw.InfoLogSize)
			assert.Equal(t, strings.Repeat(r, utf8.RuneCountInString(glErr.Log)), glErr.Log)
		})
	}
}

func TestNewShaderFromFile(t *testing.T) {
	fsys := fstest.MapFS{
		"shader/vertex.glsl": {Data: []byte(passVertex)},
	}

	t.Run("found", func(t *testing.T) {
		api := glwtest.NewRecorder()
		shader, err := glw.NewShaderFromFile(api, glw.VertexStage, fsys, "shader/vertex.glsl")
		require.NoError(t, err)
		defer shader.Delete()
		assert.NotZero(t, shader.Handle())
	})

	t.Run("missing file creates no object", func(t *testing.T) {
		api := glwtest.NewRecorder()
		_, err := glw.NewShaderFromFile(api, glw.VertexStage, fsys, "shader/missing.glsl")
		require.Error(t, err)
		assert.True(t, errors.Is(err, glw.ErrResourceLoad))
		assert.Zero(t, api.Created(glwtest.ShaderObject))
	})
}

func TestShaderDelete_ReleasesOnce(t *testing.T) {
	api := glwtest.NewRecorder()
	shader, err := glw.NewShader(api, glw.VertexStage, passVertex)
	require.NoError(t, err)
	handle := shader.Handle()

	shader.Delete()
	shader.Delete()

	assert.Zero(t, shader.Handle())
	assert.False(t, shader.Compiled())
	assert.Equal(t, 1, api.Deletes(handle))
	assert.Zero(t, api.LiveTotal())
	assert.Empty(t, api.Misuse())
}

func TestShaderStage_String(t *testing.T) {
	assert.Equal(t, "vertex", glw.VertexStage.String())
	assert.Equal(t, "fragment", glw.FragmentStage.String())
	assert.Equal(t, "geometry", glw.GeometryStage.String())
	assert.Equal(t, "compute", glw.ComputeStage.String())
	assert.Equal(t, "0x1234", glw.ShaderStage(0x1234).String())
}
