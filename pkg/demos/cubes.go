package demos

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/homework"
)

// CubeVertexCount is the number of vertices one cube is drawn with.
const CubeVertexCount = 36

var cubeVertices = []float32{
	// x, y, z, u, v
	-0.5, -0.5, -0.5, 0.0, 0.0,
	0.5, -0.5, -0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0,

	-0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,

	-0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 0.0,

	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,

	-0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,

	-0.5, 0.5, -0.5, 0.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
}

var cubePositions = []mgl32.Vec3{
	{0.0, 0.0, 0.0},
	{2.0, 5.0, -15.0},
	{-1.5, -2.2, -2.5},
	{-3.8, -2.0, -12.3},
	{2.4, -0.4, -3.5},
	{-1.7, 3.0, -7.5},
	{1.3, -2.0, -2.5},
	{1.5, 2.0, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1.0, -1.5},
}

var spinAxis = mgl32.Vec3{1.0, 0.3, 0.5}.Normalize()

// Cubes draws ten textured cubes with a perspective camera. Every third cube
// turns a little further each frame.
type Cubes struct {
	api      glw.API
	scope    glw.Scope
	program  *glw.Program
	mesh     *glw.Mesh
	textures [2]*glw.Texture
	models   []mgl32.Mat4
	aspect   float32
}

func (c *Cubes) Init(ctx *homework.Context) error {
	c.api = ctx.API
	ctx.API.Enable(glw.DEPTH_TEST)

	program, err := glw.BuildProgram(ctx.API, assets(ctx), "shaders/cube.vert", "shaders/cube.frag")
	if err != nil {
		return err
	}
	c.program = program
	c.scope.Add(program)

	if c.textures, err = loadTextures(ctx, &c.scope, program); err != nil {
		return err
	}
	c.mesh = glw.NewMesh(ctx.API, cubeVertices, nil, glw.Interleaved(3, 2))
	c.scope.Add(c.mesh)

	c.models = make([]mgl32.Mat4, len(cubePositions))
	for i, position := range cubePositions {
		c.models[i] = mgl32.Translate3D(position.X(), position.Y(), position.Z())
	}

	view := mgl32.Translate3D(0, 0, -3)
	if err := program.SetMat4("u_view_mat", view); err != nil {
		return err
	}
	return c.setProjection(ctx.Aspect())
}

func (c *Cubes) setProjection(aspect float32) error {
	c.aspect = aspect
	projection := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
	return c.program.SetMat4("u_projection_mat", projection)
}

func (c *Cubes) Render(ctx *homework.Context) error {
	clearBackground(ctx.API, glw.COLOR_BUFFER_BIT|glw.DEPTH_BUFFER_BIT)
	if err := c.program.Use(); err != nil {
		return err
	}
	if aspect := ctx.Aspect(); aspect != c.aspect {
		if err := c.setProjection(aspect); err != nil {
			return err
		}
	}
	for unit, texture := range c.textures {
		texture.Bind(uint32(unit))
	}
	for i := range c.models {
		if i%3 == 0 {
			angle := mgl32.DegToRad(20*float32(i)+10) * 0.01
			c.models[i] = c.models[i].Mul4(mgl32.HomogRotate3D(angle, spinAxis))
		}
		if err := c.program.SetMat4("u_model_mat", c.models[i]); err != nil {
			return err
		}
		c.mesh.Draw(glw.TRIANGLES)
	}
	return nil
}

// Models returns the current model matrix of every cube.
func (c *Cubes) Models() []mgl32.Mat4 {
	return c.models
}

func (c *Cubes) Delete() {
	c.scope.Delete()
	if c.api != nil {
		c.api.Disable(glw.DEPTH_TEST)
	}
}
