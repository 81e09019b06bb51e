//go:build !js

// Package glcore binds glw.API to the OpenGL 3.3 core driver. Every call must
// come from the thread that owns the current context.
package glcore

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/kjkrol/gohw/pkg/glw"
)

// API is the driver-backed glw.API.
type API struct{}

var _ glw.API = (*API)(nil)

// New loads the GL function pointers for the current context. It fails with
// glw.KindInitialization when no context is current or the driver lacks 3.3.
func New() (*API, error) {
	if err := gl.Init(); err != nil {
		return nil, glw.NewError(glw.KindInitialization, "load gl functions", err)
	}
	return &API{}, nil
}

// Info reports the driver strings for the startup log.
func (a *API) Info() glw.DriverInfo {
	return glw.QueryDriverInfo(a)
}

func (a *API) CreateShader(stage uint32) uint32 {
	return gl.CreateShader(stage)
}

func (a *API) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (a *API) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (a *API) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (a *API) GetShaderInfoLog(shader uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(bufSize))
	var length int32
	gl.GetShaderInfoLog(shader, bufSize, &length, gl.Str(log))
	return log[:length]
}

func (a *API) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (a *API) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (a *API) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (a *API) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (a *API) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (a *API) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (a *API) GetProgramInfoLog(program uint32, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(bufSize))
	var length int32
	gl.GetProgramInfoLog(program, bufSize, &length, gl.Str(log))
	return log[:length]
}

func (a *API) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (a *API) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (a *API) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (a *API) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (a *API) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (a *API) Uniform3f(location int32, v0, v1, v2 float32) {
	gl.Uniform3f(location, v0, v1, v2)
}

func (a *API) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (a *API) UniformMatrix4fv(location int32, transpose bool, value [16]float32) {
	gl.UniformMatrix4fv(location, 1, transpose, &value[0])
}

func (a *API) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (a *API) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (a *API) BindBuffer(target, buffer uint32) {
	gl.BindBuffer(target, buffer)
}

func (a *API) BufferDataFloat32(target uint32, data []float32, usage uint32) {
	gl.BufferData(target, len(data)*4, ptr(data), usage)
}

func (a *API) BufferDataUint32(target uint32, data []uint32, usage uint32) {
	gl.BufferData(target, len(data)*4, ptr(data), usage)
}

func (a *API) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (a *API) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (a *API) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (a *API) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (a *API) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (a *API) GenTexture() uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	return texture
}

func (a *API) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (a *API) BindTexture(target, texture uint32) {
	gl.BindTexture(target, texture)
}

func (a *API) ActiveTexture(unit uint32) {
	gl.ActiveTexture(unit)
}

func (a *API) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (a *API) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, ptr(pixels))
}

func (a *API) GenerateMipmap(target uint32) {
	gl.GenerateMipmap(target)
}

func (a *API) PixelStorei(pname uint32, param int32) {
	gl.PixelStorei(pname, param)
}

func (a *API) ClearColor(r, g, b, alpha float32) {
	gl.ClearColor(r, g, b, alpha)
}

func (a *API) Clear(mask uint32) {
	gl.Clear(mask)
}

func (a *API) Enable(capability uint32) {
	gl.Enable(capability)
}

func (a *API) Disable(capability uint32) {
	gl.Disable(capability)
}

func (a *API) PolygonMode(face, mode uint32) {
	gl.PolygonMode(face, mode)
}

func (a *API) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (a *API) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (a *API) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	gl.DrawElements(mode, count, xtype, gl.PtrOffset(offset))
}

func (a *API) GetError() uint32 {
	return gl.GetError()
}

func (a *API) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

// ptr is gl.Ptr that accepts empty slices.
func ptr[T float32 | uint32 | byte](data []T) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
