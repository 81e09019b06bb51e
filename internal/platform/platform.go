// Package platform describes the native window and GL context a homework
// renders into. The backends live in glfwwindow and sdlwindow.
package platform

import "github.com/pkg/errors"

type WindowConfig struct {
	Width  int
	Height int
	Title  string

	// GLMajor and GLMinor select the context version.
	GLMajor     int
	GLMinor     int
	CoreProfile bool
	Debug       bool

	VSync        bool
	DoubleBuffer bool
	ColorBits    int // per channel, RGBA
	DepthBits    int
	StencilBits  int
	Resizable    bool
	HighDPI      bool
}

// DefaultWindowConfig is an 864x864 double buffered RGBA8 window with a
// 24-bit depth and 8-bit stencil buffer and a 3.3 core context.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:        864,
		Height:       864,
		Title:        "gohw",
		GLMajor:      3,
		GLMinor:      3,
		CoreProfile:  true,
		Debug:        true,
		VSync:        true,
		DoubleBuffer: true,
		ColorBits:    8,
		DepthBits:    24,
		StencilBits:  8,
		Resizable:    true,
	}
}

func (c WindowConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.GLMajor < 3 || (c.GLMajor == 3 && c.GLMinor < 3) {
		return errors.Errorf("gl %d.%d is older than 3.3", c.GLMajor, c.GLMinor)
	}
	if c.ColorBits < 0 || c.DepthBits < 0 || c.StencilBits < 0 {
		return errors.New("negative buffer bits")
	}
	return nil
}

// GLWindow is a native window with a current GL context. All methods must be
// called from the goroutine that created it.
type GLWindow interface {
	Show()
	// NextEventTimeout waits at most timeoutMs for an event and returns
	// TimeoutEvent when none arrived.
	NextEventTimeout(timeoutMs int) Event
	SwapBuffers()
	// FramebufferSize is the drawable size in pixels, which differs from the
	// window size on high-DPI screens.
	FramebufferSize() (int, int)
	// Close destroys the context and then the window. Later calls do nothing.
	Close()
}
