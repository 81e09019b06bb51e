package demos

import (
	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/homework"
)

const (
	backendTexture  = "textures/preview-backend.png"
	frontendTexture = "textures/preview-frontend.png"
)

var texturedQuadVertices = []float32{
	// x, y, z, r, g, b, u, v
	0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 1.0, 1.0,
	0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 1.0, 0.0,
	-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0,
	-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, 0.0, 1.0,
}

// loadTextures loads the two preview images and binds them to units 0 and 1 of
// program. Both land in scope.
func loadTextures(ctx *homework.Context, scope *glw.Scope, program *glw.Program) ([2]*glw.Texture, error) {
	var textures [2]*glw.Texture
	for unit, path := range []string{backendTexture, frontendTexture} {
		texture, err := glw.LoadTexture2D(ctx.API, assets(ctx), path, ctx.FlipTextures, glw.DefaultTextureParams())
		if err != nil {
			return textures, err
		}
		scope.Add(texture)
		textures[unit] = texture
	}
	if err := program.Use(); err != nil {
		return textures, err
	}
	if err := program.SetInt("u_backend_tex0", 0); err != nil {
		return textures, err
	}
	if err := program.SetInt("u_frontend_tex1", 1); err != nil {
		return textures, err
	}
	return textures, nil
}

// TexturedQuad blends two textures on a vertex-colored quad.
type TexturedQuad struct {
	scope    glw.Scope
	program  *glw.Program
	mesh     *glw.Mesh
	textures [2]*glw.Texture
	// Mix is the frontend texture weight; arrow keys change it.
	Mix float32
}

func (q *TexturedQuad) Init(ctx *homework.Context) error {
	if q.Mix == 0 {
		q.Mix = 0.2
	}
	program, err := glw.BuildProgram(ctx.API, assets(ctx), "shaders/textured.vert", "shaders/textured.frag")
	if err != nil {
		return err
	}
	q.program = program
	q.scope.Add(program)

	if q.textures, err = loadTextures(ctx, &q.scope, program); err != nil {
		return err
	}
	q.mesh = glw.NewMesh(ctx.API, texturedQuadVertices, quadIndices, glw.Interleaved(3, 3, 2))
	q.scope.Add(q.mesh)
	return nil
}

func (q *TexturedQuad) Render(ctx *homework.Context) error {
	clearBackground(ctx.API, glw.COLOR_BUFFER_BIT|glw.DEPTH_BUFFER_BIT)
	if err := q.program.Use(); err != nil {
		return err
	}
	if err := q.program.SetFloat("u_mix", q.Mix); err != nil {
		return err
	}
	for unit, texture := range q.textures {
		texture.Bind(uint32(unit))
	}
	q.mesh.Draw(glw.TRIANGLES)
	return nil
}

func (q *TexturedQuad) HandleEvent(_ *homework.Context, event homework.Event) {
	if key, ok := event.(homework.KeyPress); ok {
		switch key.Label {
		case "Up":
			q.Mix = min(q.Mix+0.1, 1)
		case "Down":
			q.Mix = max(q.Mix-0.1, 0)
		}
	}
}

func (q *TexturedQuad) Delete() {
	q.scope.Delete()
}
