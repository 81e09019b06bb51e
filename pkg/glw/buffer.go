package glw

import "log/slog"

const floatSize = 4

// Buffer owns one buffer object bound to a fixed target.
type Buffer struct {
	api    API
	target uint32
	usage  uint32
	handle uint32
	length int
}

func NewBuffer(api API, target, usage uint32) *Buffer {
	handle := api.GenBuffer()
	Logger().Debug("buffer created", slog.Uint64("handle", uint64(handle)))
	return &Buffer{api: api, target: target, usage: usage, handle: handle}
}

func (b *Buffer) Handle() uint32 {
	if b == nil {
		return 0
	}
	return b.handle
}

// Len is the element count of the last upload.
func (b *Buffer) Len() int {
	return b.length
}

func (b *Buffer) Bind() {
	if b == nil || b.handle == 0 {
		return
	}
	b.api.BindBuffer(b.target, b.handle)
}

// UploadFloat32 binds the buffer and replaces its store with data.
func (b *Buffer) UploadFloat32(data []float32) {
	if b == nil || b.handle == 0 {
		return
	}
	b.api.BindBuffer(b.target, b.handle)
	b.api.BufferDataFloat32(b.target, data, b.usage)
	b.length = len(data)
}

func (b *Buffer) UploadUint32(data []uint32) {
	if b == nil || b.handle == 0 {
		return
	}
	b.api.BindBuffer(b.target, b.handle)
	b.api.BufferDataUint32(b.target, data, b.usage)
	b.length = len(data)
}

func (b *Buffer) Delete() {
	if b == nil || b.handle == 0 {
		return
	}
	b.api.DeleteBuffer(b.handle)
	Logger().Debug("buffer deleted", slog.Uint64("handle", uint64(b.handle)))
	b.handle = 0
}

// Attribute is one float vertex attribute inside an interleaved vertex.
type Attribute struct {
	Index      uint32
	Components int32
	Offset     int // in floats
}

// VertexLayout describes an interleaved float vertex.
type VertexLayout struct {
	Attributes []Attribute
}

// Interleaved lays attributes out back to back at indices 0..n-1, so
// Interleaved(3, 2) is position followed by texture coordinates.
func Interleaved(components ...int32) VertexLayout {
	layout := VertexLayout{Attributes: make([]Attribute, 0, len(components))}
	offset := 0
	for i, c := range components {
		layout.Attributes = append(layout.Attributes, Attribute{Index: uint32(i), Components: c, Offset: offset})
		offset += int(c)
	}
	return layout
}

// Floats is the number of floats in one vertex.
func (l VertexLayout) Floats() int {
	n := 0
	for _, a := range l.Attributes {
		if end := a.Offset + int(a.Components); end > n {
			n = end
		}
	}
	return n
}

// Stride is the byte size of one vertex.
func (l VertexLayout) Stride() int32 {
	return int32(l.Floats() * floatSize)
}

// VertexArray owns one vertex array object recording a layout over a vertex
// buffer and an optional element buffer.
type VertexArray struct {
	api    API
	handle uint32
}

// NewVertexArray records layout over vbo (and ebo when non-nil). The VAO and
// the array buffer binding are reset afterwards; the element binding stays
// part of the VAO state.
func NewVertexArray(api API, vbo, ebo *Buffer, layout VertexLayout) *VertexArray {
	handle := api.GenVertexArray()
	api.BindVertexArray(handle)
	vbo.Bind()
	if ebo != nil {
		ebo.Bind()
	}
	stride := layout.Stride()
	for _, a := range layout.Attributes {
		api.VertexAttribPointer(a.Index, a.Components, FLOAT, false, stride, a.Offset*floatSize)
		api.EnableVertexAttribArray(a.Index)
	}
	api.BindBuffer(ARRAY_BUFFER, 0)
	api.BindVertexArray(0)

	Logger().Debug("vertex array created", slog.Uint64("handle", uint64(handle)), slog.Int("attributes", len(layout.Attributes)))
	return &VertexArray{api: api, handle: handle}
}

func (v *VertexArray) Handle() uint32 {
	if v == nil {
		return 0
	}
	return v.handle
}

func (v *VertexArray) Bind() {
	if v == nil || v.handle == 0 {
		return
	}
	v.api.BindVertexArray(v.handle)
}

func (v *VertexArray) DrawArrays(mode uint32, first, count int32) {
	if v == nil || v.handle == 0 {
		return
	}
	v.api.BindVertexArray(v.handle)
	v.api.DrawArrays(mode, first, count)
}

// DrawElements draws count uint32 indices from the bound element buffer.
func (v *VertexArray) DrawElements(mode uint32, count int32) {
	if v == nil || v.handle == 0 {
		return
	}
	v.api.BindVertexArray(v.handle)
	v.api.DrawElements(mode, count, UNSIGNED_INT, 0)
}

func (v *VertexArray) Delete() {
	if v == nil || v.handle == 0 {
		return
	}
	v.api.DeleteVertexArray(v.handle)
	Logger().Debug("vertex array deleted", slog.Uint64("handle", uint64(v.handle)))
	v.handle = 0
}

// Mesh bundles a static vertex buffer, an optional index buffer and the
// vertex array describing them.
type Mesh struct {
	VBO    *Buffer
	EBO    *Buffer
	VAO    *VertexArray
	layout VertexLayout
}

// NewMesh uploads vertices (and indices when non-empty) and records layout.
func NewMesh(api API, vertices []float32, indices []uint32, layout VertexLayout) *Mesh {
	m := &Mesh{layout: layout}
	m.VBO = NewBuffer(api, ARRAY_BUFFER, STATIC_DRAW)
	m.VBO.UploadFloat32(vertices)
	if len(indices) > 0 {
		m.EBO = NewBuffer(api, ELEMENT_ARRAY_BUFFER, STATIC_DRAW)
		m.VAO = NewVertexArray(api, m.VBO, m.EBO, layout)
		// The element buffer is bound while the VAO records it.
		api.BindVertexArray(m.VAO.Handle())
		m.EBO.UploadUint32(indices)
		api.BindVertexArray(0)
	} else {
		m.VAO = NewVertexArray(api, m.VBO, nil, layout)
	}
	return m
}

// VertexCount is the number of vertices in the vertex buffer.
func (m *Mesh) VertexCount() int32 {
	floats := m.layout.Floats()
	if floats == 0 {
		return 0
	}
	return int32(m.VBO.Len() / floats)
}

// Draw issues one draw call: indexed when the mesh has indices.
func (m *Mesh) Draw(mode uint32) {
	if m.EBO != nil {
		m.VAO.DrawElements(mode, int32(m.EBO.Len()))
		return
	}
	m.VAO.DrawArrays(mode, 0, m.VertexCount())
}

// Delete releases the VAO first, then its buffers.
func (m *Mesh) Delete() {
	if m == nil {
		return
	}
	m.VAO.Delete()
	m.EBO.Delete()
	m.VBO.Delete()
}
