// Package demos is the homework set: each demo is one OpenGL exercise, from
// clearing the screen to textured cubes in perspective.
package demos

import (
	"embed"
	"io/fs"

	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/homework"
)

// Assets holds the GLSL sources under shaders/ and the images under
// textures/.
//
//go:embed shaders textures
var Assets embed.FS

// Background is the clear color every demo starts a frame with.
var Background = [4]float32{0.2, 0.3, 0.3, 1.0}

// Register adds every demo to r.
func Register(r *homework.Registry) {
	r.MustRegister("clear", "window and clear color only", func() homework.Homework { return &Clear{} })
	r.MustRegister("triangle", "pass-through shaders drawing one triangle", func() homework.Homework { return &Triangle{} })
	r.MustRegister("quad", "indexed rectangle in wireframe mode", func() homework.Homework { return &Quad{} })
	r.MustRegister("two-triangles", "two adjacent triangles from one vertex array", func() homework.Homework { return &TwoTriangles{} })
	r.MustRegister("shader-offset", "per-vertex colors shifted by a uniform", func() homework.Homework { return &ShaderOffset{} })
	r.MustRegister("textured-quad", "a quad blending two textures", func() homework.Homework { return &TexturedQuad{} })
	r.MustRegister("cubes", "ten textured cubes in perspective", func() homework.Homework { return &Cubes{} })
}

// Registry returns a registry holding every demo.
func Registry() *homework.Registry {
	r := homework.NewRegistry()
	Register(r)
	return r
}

func assets(ctx *homework.Context) fs.FS {
	if ctx.Assets != nil {
		return ctx.Assets
	}
	return Assets
}

func clearBackground(api glw.API, mask uint32) {
	api.ClearColor(Background[0], Background[1], Background[2], Background[3])
	api.Clear(mask)
}

// Clear only clears the window.
type Clear struct{}

func (*Clear) Init(*homework.Context) error {
	return nil
}

func (*Clear) Render(ctx *homework.Context) error {
	clearBackground(ctx.API, glw.COLOR_BUFFER_BIT|glw.DEPTH_BUFFER_BIT)
	return nil
}

func (*Clear) Delete() {}
