package glw

// API is the slice of OpenGL 3.3 core the wrappers and homework programs call.
// internal/glcore binds it to the driver, glwtest binds it to a counting fake.
type API interface {
	CreateShader(stage uint32) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32) int32
	GetShaderInfoLog(shader uint32, bufSize int32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32) int32
	GetProgramInfoLog(program uint32, bufSize int32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	UniformMatrix4fv(location int32, transpose bool, value [16]float32)

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	BindBuffer(target, buffer uint32)
	BufferDataFloat32(target uint32, data []float32, usage uint32)
	BufferDataUint32(target uint32, data []uint32, usage uint32)

	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	GenTexture() uint32
	DeleteTexture(texture uint32)
	BindTexture(target, texture uint32)
	ActiveTexture(unit uint32)
	TexParameteri(target, pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, pixels []byte)
	GenerateMipmap(target uint32)
	PixelStorei(pname uint32, param int32)

	ClearColor(r, g, b, a float32)
	Clear(mask uint32)
	Enable(capability uint32)
	Disable(capability uint32)
	PolygonMode(face, mode uint32)
	Viewport(x, y, width, height int32)

	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset int)

	GetError() uint32
	GetString(name uint32) string
}

// GL enum values, mirrored so that callers never import a driver package.
const (
	FALSE = 0
	TRUE  = 1

	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30
	GEOMETRY_SHADER = 0x8DD9
	COMPUTE_SHADER  = 0x91B9

	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82
	INFO_LOG_LENGTH = 0x8B84

	ARRAY_BUFFER         = 0x8892
	ELEMENT_ARRAY_BUFFER = 0x8893
	STATIC_DRAW          = 0x88E4
	DYNAMIC_DRAW         = 0x88E8

	UNSIGNED_BYTE = 0x1401
	UNSIGNED_INT  = 0x1405
	FLOAT         = 0x1406

	POINTS    = 0x0000
	LINES     = 0x0001
	TRIANGLES = 0x0004

	TEXTURE_2D            = 0x0DE1
	TEXTURE0              = 0x84C0
	TEXTURE_MAG_FILTER    = 0x2800
	TEXTURE_MIN_FILTER    = 0x2801
	TEXTURE_WRAP_S        = 0x2802
	TEXTURE_WRAP_T        = 0x2803
	NEAREST               = 0x2600
	LINEAR                = 0x2601
	LINEAR_MIPMAP_LINEAR  = 0x2703
	REPEAT                = 0x2901
	CLAMP_TO_EDGE         = 0x812F
	UNPACK_ALIGNMENT      = 0x0CF5
	RED                   = 0x1903
	RGB                   = 0x1907
	RGBA                  = 0x1908
	COLOR_BUFFER_BIT      = 0x00004000
	DEPTH_BUFFER_BIT      = 0x00000100
	STENCIL_BUFFER_BIT    = 0x00000400
	DEPTH_TEST            = 0x0B71
	BLEND                 = 0x0BE2
	FRONT_AND_BACK        = 0x0408
	LINE                  = 0x1B01
	FILL                  = 0x1B02
	VENDOR                = 0x1F00
	RENDERER              = 0x1F01
	VERSION               = 0x1F02

	SHADING_LANGUAGE_VERSION = 0x8B8C

	NO_ERROR                      = 0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	STACK_OVERFLOW                = 0x0503
	STACK_UNDERFLOW               = 0x0504
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506
)
