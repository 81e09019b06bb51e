package demos

import (
	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/homework"
)

// XOffset is how far ShaderOffset moves its triangle along x.
const XOffset = 0.5

var coloredTriangleVertices = []float32{
	// x, y, z, r, g, b
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0,
	-0.5, -0.5, 0.0, 0.0, 0.0, 1.0,
	0.0, 0.5, 0.0, 1.0, 0.0, 0.0,
}

// ShaderOffset draws a triangle with per-vertex colors, shifted right by a
// uniform.
type ShaderOffset struct {
	scope   glw.Scope
	program *glw.Program
	mesh    *glw.Mesh
}

func (s *ShaderOffset) Init(ctx *homework.Context) error {
	program, err := glw.BuildProgram(ctx.API, assets(ctx), "shaders/offset.vert", "shaders/offset.frag")
	if err != nil {
		return err
	}
	s.program = program
	s.scope.Add(program)

	s.mesh = glw.NewMesh(ctx.API, coloredTriangleVertices, nil, glw.Interleaved(3, 3))
	s.scope.Add(s.mesh)
	return nil
}

func (s *ShaderOffset) Render(ctx *homework.Context) error {
	clearBackground(ctx.API, glw.COLOR_BUFFER_BIT|glw.DEPTH_BUFFER_BIT)
	if err := s.program.Use(); err != nil {
		return err
	}
	if err := s.program.SetFloat("x_pos_offset", XOffset); err != nil {
		return err
	}
	s.mesh.Draw(glw.TRIANGLES)
	return nil
}

func (s *ShaderOffset) Delete() {
	s.scope.Delete()
}
