package glw

import (
	"io/fs"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformNotFound is the location GL reports for a name the linked program
// does not use.
const UniformNotFound int32 = -1

// Program owns one linked program object. It does not own the shaders it was
// linked from.
type Program struct {
	api      API
	handle   uint32
	uniforms map[string]int32
}

// NewProgram links the given compiled shaders. On failure the program object
// is deleted before the *Error is returned. The shaders are detached after a
// successful link and stay owned by the caller.
func NewProgram(api API, shaders ...*Shader) (*Program, error) {
	if len(shaders) == 0 {
		return nil, &Error{Kind: KindLink, Op: "link program", Log: "no shaders"}
	}
	for _, shader := range shaders {
		if !shader.Compiled() {
			return nil, &Error{Kind: KindLink, Op: "link program", Log: "shader not compiled or already deleted"}
		}
	}

	handle := api.CreateProgram()
	if handle == 0 {
		return nil, &Error{Kind: KindLink, Op: "create program", Log: "glCreateProgram returned 0"}
	}
	for _, shader := range shaders {
		api.AttachShader(handle, shader.handle)
	}
	api.LinkProgram(handle)

	if api.GetProgramiv(handle, LINK_STATUS) == FALSE {
		log := trimInfoLog(api.GetProgramInfoLog(handle, InfoLogSize))
		api.DeleteProgram(handle)
		return nil, &Error{Kind: KindLink, Op: "link program", Log: log}
	}
	for _, shader := range shaders {
		api.DetachShader(handle, shader.handle)
	}

	Logger().Debug("program linked", slog.Uint64("handle", uint64(handle)), slog.Int("shaders", len(shaders)))
	return &Program{api: api, handle: handle, uniforms: make(map[string]int32)}, nil
}

// BuildProgram compiles a vertex/fragment pair from fsys and links it. The
// intermediate shaders are always released.
func BuildProgram(api API, fsys fs.FS, vertexPath, fragmentPath string) (*Program, error) {
	vertex, err := NewShaderFromFile(api, VertexStage, fsys, vertexPath)
	if err != nil {
		return nil, err
	}
	defer vertex.Delete()

	fragment, err := NewShaderFromFile(api, FragmentStage, fsys, fragmentPath)
	if err != nil {
		return nil, err
	}
	defer fragment.Delete()

	return NewProgram(api, vertex, fragment)
}

func (p *Program) Handle() uint32 {
	if p == nil {
		return 0
	}
	return p.handle
}

// Use makes p the current rendering program.
func (p *Program) Use() error {
	if p == nil || p.handle == 0 {
		return &Error{Kind: KindInvalidProgram, Op: "use program"}
	}
	p.api.UseProgram(p.handle)
	return nil
}

// UniformLocation resolves name once and caches the answer, including
// UniformNotFound. An unknown name is not an error.
func (p *Program) UniformLocation(name string) (int32, error) {
	if p == nil || p.handle == 0 {
		return UniformNotFound, &Error{Kind: KindInvalidProgram, Op: "uniform location " + name}
	}
	if location, ok := p.uniforms[name]; ok {
		return location, nil
	}
	location := p.api.GetUniformLocation(p.handle, name)
	p.uniforms[name] = location
	return location, nil
}

// location resolves name and makes p current, so the following glUniform*
// call lands in p and not in whatever program was bound before.
func (p *Program) location(name string) (int32, bool, error) {
	location, err := p.UniformLocation(name)
	if err != nil || location == UniformNotFound {
		return location, false, err
	}
	p.api.UseProgram(p.handle)
	return location, true, nil
}

// SetInt sets an int or sampler uniform. Every setter leaves p bound.
func (p *Program) SetInt(name string, v int32) error {
	location, ok, err := p.location(name)
	if ok {
		p.api.Uniform1i(location, v)
	}
	return err
}

func (p *Program) SetFloat(name string, v float32) error {
	location, ok, err := p.location(name)
	if ok {
		p.api.Uniform1f(location, v)
	}
	return err
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) error {
	location, ok, err := p.location(name)
	if ok {
		p.api.Uniform3f(location, v[0], v[1], v[2])
	}
	return err
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) error {
	location, ok, err := p.location(name)
	if ok {
		p.api.Uniform4f(location, v[0], v[1], v[2], v[3])
	}
	return err
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) error {
	location, ok, err := p.location(name)
	if ok {
		p.api.UniformMatrix4fv(location, false, [16]float32(m))
	}
	return err
}

// Delete releases the program object. Only the first call reaches the driver.
func (p *Program) Delete() {
	if p == nil || p.handle == 0 {
		return
	}
	p.api.DeleteProgram(p.handle)
	Logger().Debug("program deleted", slog.Uint64("handle", uint64(p.handle)))
	p.handle = 0
	p.uniforms = nil
}
