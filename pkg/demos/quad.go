package demos

import (
	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/homework"
)

var (
	quadVertices = []float32{
		0.5, 0.5, 0.0,   // top right
		0.5, -0.5, 0.0,  // bottom right
		-0.5, -0.5, 0.0, // bottom left
		-0.5, 0.5, 0.0,  // top left
	}
	quadIndices = []uint32{
		0, 1, 3,
		1, 2, 3,
	}
)

// Quad draws an indexed rectangle as a wireframe.
type Quad struct {
	api     glw.API
	scope   glw.Scope
	program *glw.Program
	mesh    *glw.Mesh
}

func (q *Quad) Init(ctx *homework.Context) error {
	q.api = ctx.API
	program, err := glw.BuildProgram(ctx.API, assets(ctx), "shaders/basic.vert", "shaders/basic.frag")
	if err != nil {
		return err
	}
	q.program = program
	q.scope.Add(program)

	q.mesh = glw.NewMesh(ctx.API, quadVertices, quadIndices, glw.Interleaved(3))
	q.scope.Add(q.mesh)

	ctx.API.PolygonMode(glw.FRONT_AND_BACK, glw.LINE)
	return nil
}

func (q *Quad) Render(ctx *homework.Context) error {
	clearBackground(ctx.API, glw.COLOR_BUFFER_BIT|glw.DEPTH_BUFFER_BIT)
	if err := q.program.Use(); err != nil {
		return err
	}
	q.mesh.Draw(glw.TRIANGLES)
	return nil
}

func (q *Quad) Delete() {
	q.scope.Delete()
	if q.api != nil {
		q.api.PolygonMode(glw.FRONT_AND_BACK, glw.FILL)
	}
}

var twoTrianglesVertices = []float32{
	-0.5, -0.5, 0.0, // bottom left
	0.0, -0.5, 0.0,  // bottom middle
	0.0, 0.5, 0.0,   // top middle

	0.0, -0.5, 0.0, // bottom middle
	0.0, 0.5, 0.0,  // top middle
	0.5, 0.5, 0.0,  // top right
}

// TwoTriangles draws two adjacent triangles with one glDrawArrays.
type TwoTriangles struct {
	scope   glw.Scope
	program *glw.Program
	mesh    *glw.Mesh
}

func (t *TwoTriangles) Init(ctx *homework.Context) error {
	program, err := glw.BuildProgram(ctx.API, assets(ctx), "shaders/basic.vert", "shaders/basic.frag")
	if err != nil {
		return err
	}
	t.program = program
	t.scope.Add(program)

	t.mesh = glw.NewMesh(ctx.API, twoTrianglesVertices, nil, glw.Interleaved(3))
	t.scope.Add(t.mesh)
	return nil
}

func (t *TwoTriangles) Render(ctx *homework.Context) error {
	clearBackground(ctx.API, glw.COLOR_BUFFER_BIT|glw.DEPTH_BUFFER_BIT)
	if err := t.program.Use(); err != nil {
		return err
	}
	t.mesh.Draw(glw.TRIANGLES)
	return nil
}

func (t *TwoTriangles) Delete() {
	t.scope.Delete()
}
