package demos

import (
	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/homework"
)

var triangleVertices = []float32{
	0.0, 0.5, 0.0,
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
}

// Triangle draws one triangle with pass-through shaders.
type Triangle struct {
	scope   glw.Scope
	program *glw.Program
	mesh    *glw.Mesh
}

func (t *Triangle) Init(ctx *homework.Context) error {
	program, err := glw.BuildProgram(ctx.API, assets(ctx), "shaders/basic.vert", "shaders/basic.frag")
	if err != nil {
		return err
	}
	t.program = program
	t.scope.Add(program)

	t.mesh = glw.NewMesh(ctx.API, triangleVertices, nil, glw.Interleaved(3))
	t.scope.Add(t.mesh)
	return nil
}

func (t *Triangle) Render(ctx *homework.Context) error {
	clearBackground(ctx.API, glw.COLOR_BUFFER_BIT|glw.DEPTH_BUFFER_BIT)
	if err := t.program.Use(); err != nil {
		return err
	}
	t.mesh.Draw(glw.TRIANGLES)
	return nil
}

func (t *Triangle) Delete() {
	t.scope.Delete()
}
