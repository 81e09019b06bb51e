// Package homework runs one GL program (a homework) inside a platform window:
// it owns the event loop, frame pacing and the teardown order.
package homework

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/kjkrol/gohw/pkg/glw"
)

// Homework is one exercise. Init creates its GPU objects, Render draws one
// frame and Delete releases everything Init created. Delete is called once,
// also after a failed Init, so it must cope with a partial setup.
type Homework interface {
	Init(ctx *Context) error
	Render(ctx *Context) error
	Delete()
}

// EventHandler is implemented by homeworks that react to input. Events reach
// it after the runner's own handling.
type EventHandler interface {
	HandleEvent(ctx *Context, event Event)
}

// Context is what a homework sees of the running program.
type Context struct {
	API    glw.API
	Assets fs.FS
	Logger *slog.Logger
	// FlipTextures asks loaders to put the first image row at the bottom, as
	// GL texture coordinates expect.
	FlipTextures bool

	width   int
	height  int
	frame   uint64
	started time.Time
	now     time.Time
}

// FramebufferSize is the drawable size in pixels.
func (c *Context) FramebufferSize() (int, int) {
	return c.width, c.height
}

// Aspect is width over height, or 1 before the first size is known.
func (c *Context) Aspect() float32 {
	if c.width <= 0 || c.height <= 0 {
		return 1
	}
	return float32(c.width) / float32(c.height)
}

// Frame counts rendered frames; it is 1 during the first Render.
func (c *Context) Frame() uint64 {
	return c.frame
}

// Elapsed is the time since the loop started, sampled once per frame.
func (c *Context) Elapsed() time.Duration {
	return c.now.Sub(c.started)
}
