//go:build cgo

// Package glfwwindow is the GLFW backend of platform.GLWindow.
package glfwwindow

import (
	"runtime"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/kjkrol/gohw/internal/platform"
	"github.com/kjkrol/gohw/pkg/glw"
)

type window struct {
	window *glfw.Window
	queue  []platform.Event
	closed bool
}

var _ platform.GLWindow = (*window)(nil)

// New creates a hidden window with a current context. The calling goroutine
// stays locked to its OS thread until Close.
func New(conf platform.WindowConfig) (platform.GLWindow, error) {
	if err := conf.Validate(); err != nil {
		return nil, glw.NewError(glw.KindInitialization, "window config", err)
	}
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, glw.NewError(glw.KindInitialization, "glfw init", err)
	}

	hints(conf)
	win, err := glfw.CreateWindow(conf.Width, conf.Height, conf.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, glw.NewError(glw.KindInitialization, "glfw create window", err)
	}
	win.MakeContextCurrent()
	if conf.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &window{window: win}
	w.listen()
	return w, nil
}

func hints(conf platform.WindowConfig) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, boolHint(conf.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, conf.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, conf.GLMinor)
	if conf.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.OpenGLDebugContext, boolHint(conf.Debug))
	glfw.WindowHint(glfw.DoubleBuffer, boolHint(conf.DoubleBuffer))
	glfw.WindowHint(glfw.RedBits, conf.ColorBits)
	glfw.WindowHint(glfw.GreenBits, conf.ColorBits)
	glfw.WindowHint(glfw.BlueBits, conf.ColorBits)
	glfw.WindowHint(glfw.AlphaBits, conf.ColorBits)
	glfw.WindowHint(glfw.DepthBits, conf.DepthBits)
	glfw.WindowHint(glfw.StencilBits, conf.StencilBits)
	glfw.WindowHint(glfw.ScaleToMonitor, boolHint(conf.HighDPI))
	glfw.WindowHint(glfw.CocoaRetinaFramebuffer, boolHint(conf.HighDPI))
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

// listen turns GLFW callbacks into queued platform events.
func (w *window) listen() {
	w.window.SetRefreshCallback(func(*glfw.Window) {
		w.push(platform.Expose{})
	})
	w.window.SetCloseCallback(func(*glfw.Window) {
		w.push(platform.DestroyNotify{})
	})
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(platform.Resize{Width: width, Height: height})
	})
	w.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
		label := keyLabel(key, scancode)
		switch action {
		case glfw.Press, glfw.Repeat:
			w.push(platform.KeyPress{Code: uint64(scancode), Label: label})
		case glfw.Release:
			w.push(platform.KeyRelease{Code: uint64(scancode), Label: label})
		}
	})
	w.window.SetMouseButtonCallback(func(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		x, y := gw.GetCursorPos()
		if action == glfw.Press {
			w.push(platform.ButtonPress{Button: mouseButton(button), X: int(x), Y: int(y)})
			return
		}
		w.push(platform.ButtonRelease{Button: mouseButton(button), X: int(x), Y: int(y)})
	})
	w.window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(platform.MotionNotify{X: int(x), Y: int(y)})
	})
	w.window.SetScrollCallback(func(gw *glfw.Window, dx, dy float64) {
		x, y := gw.GetCursorPos()
		w.push(platform.MouseWheel{DeltaX: dx, DeltaY: dy, X: int(x), Y: int(y)})
	})
	w.window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if entered {
			w.push(platform.EnterNotify{})
			return
		}
		w.push(platform.LeaveNotify{})
	})
}

func (w *window) push(e platform.Event) {
	w.queue = append(w.queue, e)
}

func (w *window) Show() {
	w.window.Show()
}

func (w *window) NextEventTimeout(timeoutMs int) platform.Event {
	if w.closed {
		return platform.DestroyNotify{}
	}
	if len(w.queue) == 0 {
		if timeoutMs > 0 {
			glfw.WaitEventsTimeout(float64(timeoutMs) / 1000)
		} else {
			glfw.PollEvents()
		}
	}
	if len(w.queue) == 0 {
		return platform.TimeoutEvent{}
	}
	e := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return e
}

func (w *window) SwapBuffers() {
	if w.closed {
		return
	}
	w.window.SwapBuffers()
}

func (w *window) FramebufferSize() (int, int) {
	if w.closed {
		return 0, 0
	}
	return w.window.GetFramebufferSize()
}

func (w *window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	glfw.DetachCurrentContext()
	w.window.Destroy()
	glfw.Terminate()
	runtime.UnlockOSThread()
}

func mouseButton(b glfw.MouseButton) uint32 {
	switch b {
	case glfw.MouseButtonLeft:
		return platform.ButtonLeft
	case glfw.MouseButtonMiddle:
		return platform.ButtonMiddle
	case glfw.MouseButtonRight:
		return platform.ButtonRight
	}
	return uint32(b) + 1
}

// keyLabel names keys the way SDL_GetKeyName does, so both backends report
// "Escape" for the escape key.
func keyLabel(key glfw.Key, scancode int) string {
	switch key {
	case glfw.KeyEscape:
		return "Escape"
	case glfw.KeyEnter:
		return "Return"
	case glfw.KeySpace:
		return "Space"
	case glfw.KeyTab:
		return "Tab"
	case glfw.KeyBackspace:
		return "Backspace"
	case glfw.KeyUp:
		return "Up"
	case glfw.KeyDown:
		return "Down"
	case glfw.KeyLeft:
		return "Left"
	case glfw.KeyRight:
		return "Right"
	}
	if name := glfw.GetKeyName(key, scancode); name != "" {
		return strings.ToUpper(name)
	}
	return ""
}
