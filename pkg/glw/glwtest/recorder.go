// Package glwtest provides a fake glw.API that counts GPU objects and records
// draw calls, for tests that cannot open a GL context.
package glwtest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/kjkrol/gohw/pkg/glw"
)

// ObjectKind groups handles by the glGen*/glCreate* family that made them.
type ObjectKind int

const (
	ShaderObject ObjectKind = iota
	ProgramObject
	BufferObject
	VertexArrayObject
	TextureObject
)

func (k ObjectKind) String() string {
	return [...]string{"shader", "program", "buffer", "vertex array", "texture"}[k]
}

// DrawCall is one recorded glDrawArrays or glDrawElements.
type DrawCall struct {
	Mode        uint32
	First       int32
	Count       int32
	Indexed     bool
	Program     uint32
	VertexArray uint32
	Textures    map[uint32]uint32 // unit -> texture
}

// TexUpload is one recorded glTexImage2D.
type TexUpload struct {
	Texture uint32
	Width   int32
	Height  int32
	Format  uint32
	Bytes   int
}

// UniformSet is one recorded glUniform* call.
type UniformSet struct {
	Program  uint32
	Location int32
	Values   []float32
}

type shaderState struct {
	stage    uint32
	source   string
	compiled bool
	log      string
}

type programState struct {
	attached map[uint32]bool
	linked   bool
	log      string
	uniforms map[string]int32
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

// Recorder implements glw.API in memory. Handles start at 1 and are never
// reused, so a stale handle is always detectable.
type Recorder struct {
	// FailCompile, when set, decides compile failure instead of the default
	// rule (empty source or an #error directive).
	FailCompile func(stage uint32, source string) bool
	// FailLink forces every link to fail.
	FailLink bool
	// CompileLog replaces the generated compile diagnostic.
	CompileLog string
	// LinkLog replaces the generated link diagnostic.
	LinkLog string
	// Errors is the queue glGetError pops from.
	Errors []uint32
	// Strings answers glGetString.
	Strings map[uint32]string

	next     uint32
	kinds    map[uint32]ObjectKind
	live     map[uint32]bool
	created  map[ObjectKind]int
	deletes  map[uint32]int
	invalid  []string
	shaders  map[uint32]*shaderState
	programs map[uint32]*programState

	current      uint32
	nextLocation int32
	locationOf   map[int32]uint32 // uniform location -> program
	boundVAO     uint32
	activeUnit   uint32
	unitTextures map[uint32]uint32
	enabled      map[uint32]bool
	polygonMode  uint32
	clearColor   [4]float32
	viewport     [4]int32
	pixelStore   map[uint32]int32

	Draws    []DrawCall
	Uploads  []TexUpload
	Uniforms []UniformSet
	Clears   []uint32
	Calls    []string
}

var _ glw.API = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		kinds:        make(map[uint32]ObjectKind),
		live:         make(map[uint32]bool),
		created:      make(map[ObjectKind]int),
		deletes:      make(map[uint32]int),
		shaders:      make(map[uint32]*shaderState),
		programs:     make(map[uint32]*programState),
		locationOf:   make(map[int32]uint32),
		unitTextures: make(map[uint32]uint32),
		enabled:      make(map[uint32]bool),
		pixelStore:   map[uint32]int32{glw.UNPACK_ALIGNMENT: 4},
		polygonMode:  glw.FILL,
		Strings: map[uint32]string{
			glw.VENDOR:   "glwtest",
			glw.RENDERER: "glwtest recorder",
			glw.VERSION:  "3.3.0 glwtest",
		},
	}
}

// Live reports the number of undeleted objects of kind.
func (r *Recorder) Live(kind ObjectKind) int {
	n := 0
	for h, ok := range r.live {
		if ok && r.kinds[h] == kind {
			n++
		}
	}
	return n
}

// LiveTotal reports the number of undeleted objects of every kind.
func (r *Recorder) LiveTotal() int {
	n := 0
	for _, ok := range r.live {
		if ok {
			n++
		}
	}
	return n
}

// Created reports how many objects of kind were ever made.
func (r *Recorder) Created(kind ObjectKind) int {
	return r.created[kind]
}

// Deletes reports how many times handle was passed to a delete call.
func (r *Recorder) Deletes(handle uint32) int {
	return r.deletes[handle]
}

// Misuse lists calls that a real driver would reject or that point at an
// ownership bug: double deletes, deletes of unknown handles, binds of dead
// objects.
func (r *Recorder) Misuse() []string {
	return r.invalid
}

// IsLive reports whether handle exists and has not been deleted.
func (r *Recorder) IsLive(handle uint32) bool {
	return r.live[handle]
}

func (r *Recorder) CurrentProgram() uint32 {
	return r.current
}

func (r *Recorder) BoundVertexArray() uint32 {
	return r.boundVAO
}

func (r *Recorder) IsEnabled(capability uint32) bool {
	return r.enabled[capability]
}

func (r *Recorder) PolygonModeValue() uint32 {
	return r.polygonMode
}

func (r *Recorder) ClearColorValue() [4]float32 {
	return r.clearColor
}

func (r *Recorder) ViewportValue() [4]int32 {
	return r.viewport
}

// ShaderSourceOf returns the source last uploaded to a shader.
func (r *Recorder) ShaderSourceOf(handle uint32) string {
	if s := r.shaders[handle]; s != nil {
		return s.source
	}
	return ""
}

// Reset forgets recorded draws, uploads, uniforms, clears and calls but keeps
// object state.
func (r *Recorder) Reset() {
	r.Draws = nil
	r.Uploads = nil
	r.Uniforms = nil
	r.Clears = nil
	r.Calls = nil
}

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) misuse(format string, args ...any) {
	r.invalid = append(r.invalid, fmt.Sprintf(format, args...))
}

func (r *Recorder) alloc(kind ObjectKind) uint32 {
	r.next++
	h := r.next
	r.kinds[h] = kind
	r.live[h] = true
	r.created[kind]++
	return h
}

func (r *Recorder) release(kind ObjectKind, handle uint32, call string) bool {
	r.record("%s(%d)", call, handle)
	if handle == 0 {
		return false
	}
	r.deletes[handle]++
	k, known := r.kinds[handle]
	switch {
	case !known || k != kind:
		r.misuse("%s on unknown %s %d", call, kind, handle)
		return false
	case !r.live[handle]:
		r.misuse("%s on deleted %s %d", call, kind, handle)
		return false
	}
	r.live[handle] = false
	return true
}

func (r *Recorder) checkBind(kind ObjectKind, handle uint32, call string) {
	if handle == 0 {
		return
	}
	if k, ok := r.kinds[handle]; !ok || k != kind || !r.live[handle] {
		r.misuse("%s on dead or foreign %s %d", call, kind, handle)
	}
}

// shaders

func (r *Recorder) CreateShader(stage uint32) uint32 {
	h := r.alloc(ShaderObject)
	r.shaders[h] = &shaderState{stage: stage}
	r.record("CreateShader(0x%X)=%d", stage, h)
	return h
}

func (r *Recorder) ShaderSource(shader uint32, source string) {
	r.record("ShaderSource(%d)", shader)
	if s := r.shaders[shader]; s != nil {
		s.source = source
	}
}

func (r *Recorder) CompileShader(shader uint32) {
	r.record("CompileShader(%d)", shader)
	s := r.shaders[shader]
	if s == nil {
		r.misuse("CompileShader on unknown shader %d", shader)
		return
	}
	failed := false
	if r.FailCompile != nil {
		failed = r.FailCompile(s.stage, s.source)
	} else {
		failed = strings.TrimSpace(s.source) == "" || strings.Contains(s.source, "#error")
	}
	s.compiled = !failed
	s.log = ""
	if failed {
		s.log = r.CompileLog
		if s.log == "" {
			s.log = "0:1(1): error: syntax error, unexpected end of file\n"
		}
	}
}

func (r *Recorder) GetShaderiv(shader, pname uint32) int32 {
	s := r.shaders[shader]
	if s == nil {
		return 0
	}
	switch pname {
	case glw.COMPILE_STATUS:
		if s.compiled {
			return glw.TRUE
		}
		return glw.FALSE
	case glw.INFO_LOG_LENGTH:
		if s.log == "" {
			return 0
		}
		return int32(len(s.log) + 1)
	}
	return 0
}

func (r *Recorder) GetShaderInfoLog(shader uint32, bufSize int32) string {
	s := r.shaders[shader]
	if s == nil {
		return ""
	}
	return truncate(s.log, bufSize)
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.release(ShaderObject, shader, "DeleteShader")
}

// programs

func (r *Recorder) CreateProgram() uint32 {
	h := r.alloc(ProgramObject)
	r.programs[h] = &programState{attached: make(map[uint32]bool), uniforms: make(map[string]int32)}
	r.record("CreateProgram()=%d", h)
	return h
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.record("AttachShader(%d,%d)", program, shader)
	r.checkBind(ShaderObject, shader, "AttachShader")
	if p := r.programs[program]; p != nil {
		p.attached[shader] = true
	}
}

func (r *Recorder) DetachShader(program, shader uint32) {
	r.record("DetachShader(%d,%d)", program, shader)
	if p := r.programs[program]; p != nil {
		delete(p.attached, shader)
	}
}

func (r *Recorder) LinkProgram(program uint32) {
	r.record("LinkProgram(%d)", program)
	p := r.programs[program]
	if p == nil {
		r.misuse("LinkProgram on unknown program %d", program)
		return
	}
	p.linked = false
	p.uniforms = make(map[string]int32)
	p.log = ""

	reason := ""
	switch {
	case r.FailLink:
		reason = "error: linking forced to fail"
	case len(p.attached) == 0:
		reason = "error: no shaders attached"
	}
	var sources []string
	for h := range p.attached {
		s := r.shaders[h]
		if s == nil || !s.compiled {
			reason = fmt.Sprintf("error: shader %d is not compiled", h)
			break
		}
		sources = append(sources, s.source)
	}
	if reason != "" {
		p.log = r.LinkLog
		if p.log == "" {
			p.log = reason + "\n"
		}
		return
	}

	p.linked = true
	// Locations follow declaration order within a shader; shader order is by
	// handle so the assignment is deterministic. They are unique across
	// programs, which lets setUniform tell whose location it was given.
	ordered := make([]uint32, 0, len(p.attached))
	for h := range p.attached {
		ordered = append(ordered, h)
	}
	slices.Sort(ordered)
	for _, h := range ordered {
		for _, m := range uniformDecl.FindAllStringSubmatch(r.shaders[h].source, -1) {
			if _, dup := p.uniforms[m[1]]; !dup {
				p.uniforms[m[1]] = r.nextLocation
				r.locationOf[r.nextLocation] = program
				r.nextLocation++
			}
		}
	}
}

func (r *Recorder) GetProgramiv(program, pname uint32) int32 {
	p := r.programs[program]
	if p == nil {
		return 0
	}
	switch pname {
	case glw.LINK_STATUS:
		if p.linked {
			return glw.TRUE
		}
		return glw.FALSE
	case glw.INFO_LOG_LENGTH:
		if p.log == "" {
			return 0
		}
		return int32(len(p.log) + 1)
	}
	return 0
}

func (r *Recorder) GetProgramInfoLog(program uint32, bufSize int32) string {
	p := r.programs[program]
	if p == nil {
		return ""
	}
	return truncate(p.log, bufSize)
}

func (r *Recorder) DeleteProgram(program uint32) {
	if r.release(ProgramObject, program, "DeleteProgram") && r.current == program {
		// A deleted program stays current until another one is used; the
		// recorder drops it right away to expose stale Use calls.
		r.current = 0
	}
}

func (r *Recorder) UseProgram(program uint32) {
	r.record("UseProgram(%d)", program)
	r.checkBind(ProgramObject, program, "UseProgram")
	if p := r.programs[program]; program != 0 && (p == nil || !p.linked) {
		r.misuse("UseProgram on unlinked program %d", program)
	}
	r.current = program
}

// uniforms

func (r *Recorder) GetUniformLocation(program uint32, name string) int32 {
	r.record("GetUniformLocation(%d,%s)", program, name)
	p := r.programs[program]
	if p == nil || !p.linked {
		return -1
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// UniformLocations returns the locations assigned at link time.
func (r *Recorder) UniformLocations(program uint32) map[string]int32 {
	if p := r.programs[program]; p != nil {
		return p.uniforms
	}
	return nil
}

func (r *Recorder) setUniform(location int32, values ...float32) {
	if r.current == 0 {
		r.misuse("glUniform* with no program in use")
	} else if owner, ok := r.locationOf[location]; ok && owner != r.current {
		r.misuse("glUniform* at location %d of program %d while program %d is in use", location, owner, r.current)
	}
	r.Uniforms = append(r.Uniforms, UniformSet{Program: r.current, Location: location, Values: values})
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.record("Uniform1i(%d,%d)", location, v)
	r.setUniform(location, float32(v))
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.record("Uniform1f(%d,%g)", location, v)
	r.setUniform(location, v)
}

func (r *Recorder) Uniform3f(location int32, v0, v1, v2 float32) {
	r.record("Uniform3f(%d)", location)
	r.setUniform(location, v0, v1, v2)
}

func (r *Recorder) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	r.record("Uniform4f(%d)", location)
	r.setUniform(location, v0, v1, v2, v3)
}

func (r *Recorder) UniformMatrix4fv(location int32, transpose bool, value [16]float32) {
	r.record("UniformMatrix4fv(%d)", location)
	r.setUniform(location, value[:]...)
}

// LastUniform returns the most recent values set at location on program.
func (r *Recorder) LastUniform(program uint32, location int32) ([]float32, bool) {
	for i := len(r.Uniforms) - 1; i >= 0; i-- {
		u := r.Uniforms[i]
		if u.Program == program && u.Location == location {
			return u.Values, true
		}
	}
	return nil, false
}

// buffers and vertex arrays

func (r *Recorder) GenBuffer() uint32 {
	h := r.alloc(BufferObject)
	r.record("GenBuffer()=%d", h)
	return h
}

func (r *Recorder) DeleteBuffer(buffer uint32) {
	r.release(BufferObject, buffer, "DeleteBuffer")
}

func (r *Recorder) BindBuffer(target, buffer uint32) {
	r.record("BindBuffer(0x%X,%d)", target, buffer)
	r.checkBind(BufferObject, buffer, "BindBuffer")
}

func (r *Recorder) BufferDataFloat32(target uint32, data []float32, usage uint32) {
	r.record("BufferData(0x%X,%d floats)", target, len(data))
}

func (r *Recorder) BufferDataUint32(target uint32, data []uint32, usage uint32) {
	r.record("BufferData(0x%X,%d uints)", target, len(data))
}

func (r *Recorder) GenVertexArray() uint32 {
	h := r.alloc(VertexArrayObject)
	r.record("GenVertexArray()=%d", h)
	return h
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	if r.release(VertexArrayObject, vao, "DeleteVertexArray") && r.boundVAO == vao {
		r.boundVAO = 0
	}
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray(%d)", vao)
	r.checkBind(VertexArrayObject, vao, "BindVertexArray")
	r.boundVAO = vao
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer(%d,%d,%d,%d)", index, size, stride, offset)
	if r.boundVAO == 0 {
		r.misuse("VertexAttribPointer with no vertex array bound")
	}
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray(%d)", index)
}

// textures

func (r *Recorder) GenTexture() uint32 {
	h := r.alloc(TextureObject)
	r.record("GenTexture()=%d", h)
	return h
}

func (r *Recorder) DeleteTexture(texture uint32) {
	if r.release(TextureObject, texture, "DeleteTexture") {
		for unit, t := range r.unitTextures {
			if t == texture {
				delete(r.unitTextures, unit)
			}
		}
	}
}

func (r *Recorder) BindTexture(target, texture uint32) {
	r.record("BindTexture(0x%X,%d)", target, texture)
	r.checkBind(TextureObject, texture, "BindTexture")
	if texture == 0 {
		delete(r.unitTextures, r.activeUnit)
		return
	}
	r.unitTextures[r.activeUnit] = texture
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture(%d)", unit-glw.TEXTURE0)
	r.activeUnit = unit - glw.TEXTURE0
}

func (r *Recorder) TexParameteri(target, pname uint32, param int32) {
	r.record("TexParameteri(0x%X,0x%X)", pname, param)
}

func (r *Recorder) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte) {
	r.record("TexImage2D(%dx%d)", width, height)
	texture := r.unitTextures[r.activeUnit]
	if texture == 0 {
		r.misuse("TexImage2D with no texture bound")
	}
	r.Uploads = append(r.Uploads, TexUpload{Texture: texture, Width: width, Height: height, Format: format, Bytes: len(pixels)})
}

func (r *Recorder) GenerateMipmap(target uint32) {
	r.record("GenerateMipmap")
}

func (r *Recorder) PixelStorei(pname uint32, param int32) {
	r.record("PixelStorei(0x%X,%d)", pname, param)
	r.pixelStore[pname] = param
}

// PixelStore returns the current glPixelStorei value for pname.
func (r *Recorder) PixelStore(pname uint32) int32 {
	return r.pixelStore[pname]
}

// state

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.clearColor = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear(mask uint32) {
	r.record("Clear(0x%X)", mask)
	r.Clears = append(r.Clears, mask)
}

func (r *Recorder) Enable(capability uint32) {
	r.record("Enable(0x%X)", capability)
	r.enabled[capability] = true
}

func (r *Recorder) Disable(capability uint32) {
	r.record("Disable(0x%X)", capability)
	r.enabled[capability] = false
}

func (r *Recorder) PolygonMode(face, mode uint32) {
	r.record("PolygonMode(0x%X)", mode)
	r.polygonMode = mode
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport(%d,%d,%d,%d)", x, y, width, height)
	r.viewport = [4]int32{x, y, width, height}
}

// draws

func (r *Recorder) draw(mode uint32, first, count int32, indexed bool) {
	if r.current == 0 {
		r.misuse("draw with no program in use")
	}
	if r.boundVAO == 0 {
		r.misuse("draw with no vertex array bound")
	}
	textures := make(map[uint32]uint32, len(r.unitTextures))
	for unit, t := range r.unitTextures {
		textures[unit] = t
	}
	r.Draws = append(r.Draws, DrawCall{
		Mode:        mode,
		First:       first,
		Count:       count,
		Indexed:     indexed,
		Program:     r.current,
		VertexArray: r.boundVAO,
		Textures:    textures,
	})
}

func (r *Recorder) DrawArrays(mode uint32, first, count int32) {
	r.record("DrawArrays(0x%X,%d,%d)", mode, first, count)
	r.draw(mode, first, count, false)
}

func (r *Recorder) DrawElements(mode uint32, count int32, xtype uint32, offset int) {
	r.record("DrawElements(0x%X,%d)", mode, count)
	r.draw(mode, int32(offset), count, true)
}

func (r *Recorder) GetError() uint32 {
	if len(r.Errors) == 0 {
		return glw.NO_ERROR
	}
	code := r.Errors[0]
	r.Errors = r.Errors[1:]
	return code
}

func (r *Recorder) GetString(name uint32) string {
	return r.Strings[name]
}

// truncate mimics glGet*InfoLog: at most bufSize-1 characters are written.
func truncate(log string, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	if int32(len(log)) > bufSize-1 {
		return log[:bufSize-1]
	}
	return log
}
