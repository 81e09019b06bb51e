package glw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/glw/glwtest"
)

func TestInterleaved(t *testing.T) {
	layout := glw.Interleaved(3, 3, 2)

	require.Len(t, layout.Attributes, 3)
	assert.Equal(t, glw.Attribute{Index: 0, Components: 3, Offset: 0}, layout.Attributes[0])
	assert.Equal(t, glw.Attribute{Index: 1, Components: 3, Offset: 3}, layout.Attributes[1])
	assert.Equal(t, glw.Attribute{Index: 2, Components: 2, Offset: 6}, layout.Attributes[2])
	assert.Equal(t, 8, layout.Floats())
	assert.Equal(t, int32(32), layout.Stride())
}

func TestBuffer_UploadAndDelete(t *testing.T) {
	api := glwtest.NewRecorder()
	buffer := glw.NewBuffer(api, glw.ARRAY_BUFFER, glw.STATIC_DRAW)
	handle := buffer.Handle()

	buffer.UploadFloat32([]float32{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 6, buffer.Len())
	assert.Contains(t, api.Calls, "BufferData(0x8892,6 floats)")

	buffer.Delete()
	buffer.Delete()
	buffer.UploadFloat32([]float32{1})

	assert.Equal(t, 1, api.Deletes(handle))
	assert.Equal(t, 6, buffer.Len(), "uploads after release are ignored")
	assert.Empty(t, api.Misuse())
}

func TestMesh_Arrays(t *testing.T) {
	api := glwtest.NewRecorder()
	vertices := []float32{
		0.5, -0.5, 0, 0, 1, 0,
		-0.5, -0.5, 0, 0, 0, 1,
		0, 0.5, 0, 1, 0, 0,
	}
	mesh := glw.NewMesh(api, vertices, nil, glw.Interleaved(3, 3))

	assert.Nil(t, mesh.EBO)
	assert.Equal(t, int32(3), mesh.VertexCount())
	assert.Zero(t, api.BoundVertexArray(), "construction leaves no vertex array bound")

	mesh.Draw(glw.TRIANGLES)
	require.Len(t, api.Draws, 1)
	draw := api.Draws[0]
	assert.Equal(t, uint32(glw.TRIANGLES), draw.Mode)
	assert.Equal(t, int32(3), draw.Count)
	assert.False(t, draw.Indexed)
	assert.Equal(t, mesh.VAO.Handle(), draw.VertexArray)

	assert.Contains(t, api.Calls, "VertexAttribPointer(0,3,24,0)")
	assert.Contains(t, api.Calls, "VertexAttribPointer(1,3,24,12)")
}

func TestMesh_Indexed(t *testing.T) {
	api := glwtest.NewRecorder()
	vertices := []float32{
		0.5, 0.5, 0,
		0.5, -0.5, 0,
		-0.5, -0.5, 0,
		-0.5, 0.5, 0,
	}
	indices := []uint32{0, 1, 3, 1, 2, 3}
	mesh := glw.NewMesh(api, vertices, indices, glw.Interleaved(3))

	require.NotNil(t, mesh.EBO)
	assert.Equal(t, 6, mesh.EBO.Len())
	assert.Equal(t, int32(4), mesh.VertexCount())

	mesh.Draw(glw.TRIANGLES)
	require.Len(t, api.Draws, 1)
	assert.True(t, api.Draws[0].Indexed)
	assert.Equal(t, int32(6), api.Draws[0].Count)
}

func TestMesh_DeleteReleasesEverythingOnce(t *testing.T) {
	api := glwtest.NewRecorder()
	mesh := glw.NewMesh(api, []float32{0, 0, 0, 1, 1, 1}, []uint32{0, 1}, glw.Interleaved(3))
	assert.Equal(t, 3, api.LiveTotal())

	mesh.Delete()
	mesh.Delete()

	assert.Zero(t, api.LiveTotal())
	assert.Empty(t, api.Misuse())
	assert.Equal(t, 1, api.Created(glwtest.VertexArrayObject))
	assert.Equal(t, 2, api.Created(glwtest.BufferObject))
}
