package glw

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// InfoLogSize bounds the diagnostic text read back from the driver.
const InfoLogSize = 512

// ShaderStage is the GL shader type of a compiled unit.
type ShaderStage uint32

const (
	VertexStage   ShaderStage = VERTEX_SHADER
	FragmentStage ShaderStage = FRAGMENT_SHADER
	GeometryStage ShaderStage = GEOMETRY_SHADER
	ComputeStage  ShaderStage = COMPUTE_SHADER
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	case GeometryStage:
		return "geometry"
	case ComputeStage:
		return "compute"
	}
	return fmt.Sprintf("0x%X", uint32(s))
}

// Shader owns one compiled shader object.
type Shader struct {
	api    API
	stage  ShaderStage
	handle uint32
}

// NewShader compiles source for the given stage. On failure the shader
// object is deleted before the *Error is returned.
func NewShader(api API, stage ShaderStage, source string) (*Shader, error) {
	handle := api.CreateShader(uint32(stage))
	if handle == 0 {
		return nil, &Error{Kind: KindCompile, Op: "create shader", Stage: stage, Log: "glCreateShader returned 0"}
	}
	api.ShaderSource(handle, source)
	api.CompileShader(handle)

	if api.GetShaderiv(handle, COMPILE_STATUS) == FALSE {
		log := trimInfoLog(api.GetShaderInfoLog(handle, InfoLogSize))
		api.DeleteShader(handle)
		return nil, &Error{Kind: KindCompile, Op: "compile shader", Stage: stage, Log: log}
	}

	Logger().Debug("shader compiled", slog.String("stage", stage.String()), slog.Uint64("handle", uint64(handle)))
	return &Shader{api: api, stage: stage, handle: handle}, nil
}

// NewShaderFromFile reads path from fsys and compiles it. A read failure
// creates no GL object.
func NewShaderFromFile(api API, stage ShaderStage, fsys fs.FS, path string) (*Shader, error) {
	source, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, &Error{Kind: KindResourceLoad, Op: "read shader " + path, Stage: stage, Err: err}
	}
	shader, err := NewShader(api, stage, string(source))
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.Op += " " + path
		}
		return nil, err
	}
	return shader, nil
}

func (s *Shader) Handle() uint32 {
	if s == nil {
		return 0
	}
	return s.handle
}

func (s *Shader) Stage() ShaderStage {
	return s.stage
}

func (s *Shader) Compiled() bool {
	return s != nil && s.handle != 0
}

// Delete releases the shader object. Only the first call reaches the driver.
func (s *Shader) Delete() {
	if s == nil || s.handle == 0 {
		return
	}
	s.api.DeleteShader(s.handle)
	Logger().Debug("shader deleted", slog.String("stage", s.stage.String()), slog.Uint64("handle", uint64(s.handle)))
	s.handle = 0
}

// trimInfoLog bounds log to InfoLogSize bytes without splitting a rune. The
// driver cuts at its buffer size too, so a partial rune at the end is dropped.
func trimInfoLog(log string) string {
	if i := strings.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	if len(log) > InfoLogSize {
		n := InfoLogSize
		for n > 0 && !utf8.RuneStart(log[n]) {
			n--
		}
		log = log[:n]
	}
	for i := 0; i < utf8.UTFMax-1 && len(log) > 0; i++ {
		if r, size := utf8.DecodeLastRuneInString(log); r != utf8.RuneError || size != 1 {
			break
		}
		log = log[:len(log)-1]
	}
	return strings.TrimRight(log, " \t\r\n")
}
