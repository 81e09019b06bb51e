//go:build sdl && cgo

// Package sdlwindow is the SDL2 backend of platform.GLWindow. Build with
// -tags sdl; it links against the system SDL2 through pkg-config.
package sdlwindow

/*
#cgo pkg-config: sdl2
#include <stdlib.h>
#include <SDL2/SDL.h>
*/
import "C"
import (
	"runtime"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/kjkrol/gohw/internal/platform"
	"github.com/kjkrol/gohw/pkg/glw"
)

type window struct {
	window  *C.SDL_Window
	context C.SDL_GLContext
	closed  bool
}

var _ platform.GLWindow = (*window)(nil)

func sdlError(op string) error {
	return glw.NewError(glw.KindInitialization, op, errors.New(C.GoString(C.SDL_GetError())))
}

// New creates a hidden window with a current context. The calling goroutine
// stays locked to its OS thread until Close.
func New(conf platform.WindowConfig) (platform.GLWindow, error) {
	if err := conf.Validate(); err != nil {
		return nil, glw.NewError(glw.KindInitialization, "window config", err)
	}
	runtime.LockOSThread()
	if C.SDL_Init(C.SDL_INIT_VIDEO) != 0 {
		err := sdlError("SDL_Init")
		runtime.UnlockOSThread()
		return nil, err
	}

	attributes(conf)

	cTitle := C.CString(conf.Title)
	defer C.free(unsafe.Pointer(cTitle))

	flags := C.Uint32(C.SDL_WINDOW_OPENGL | C.SDL_WINDOW_HIDDEN)
	if conf.Resizable {
		flags |= C.SDL_WINDOW_RESIZABLE
	}
	if conf.HighDPI {
		flags |= C.SDL_WINDOW_ALLOW_HIGHDPI
	}
	win := C.SDL_CreateWindow(cTitle, C.SDL_WINDOWPOS_CENTERED, C.SDL_WINDOWPOS_CENTERED,
		C.int(conf.Width), C.int(conf.Height), flags)
	if win == nil {
		err := sdlError("SDL_CreateWindow")
		C.SDL_Quit()
		runtime.UnlockOSThread()
		return nil, err
	}

	ctx := C.SDL_GL_CreateContext(win)
	if ctx == nil {
		err := sdlError("SDL_GL_CreateContext")
		C.SDL_DestroyWindow(win)
		C.SDL_Quit()
		runtime.UnlockOSThread()
		return nil, err
	}
	if C.SDL_GL_MakeCurrent(win, ctx) != 0 {
		err := sdlError("SDL_GL_MakeCurrent")
		C.SDL_GL_DeleteContext(ctx)
		C.SDL_DestroyWindow(win)
		C.SDL_Quit()
		runtime.UnlockOSThread()
		return nil, err
	}
	interval := C.int(0)
	if conf.VSync {
		interval = 1
	}
	C.SDL_GL_SetSwapInterval(interval)

	return &window{window: win, context: ctx}, nil
}

func attributes(conf platform.WindowConfig) {
	C.SDL_GL_SetAttribute(C.SDL_GL_DOUBLEBUFFER, boolAttr(conf.DoubleBuffer))
	C.SDL_GL_SetAttribute(C.SDL_GL_RED_SIZE, C.int(conf.ColorBits))
	C.SDL_GL_SetAttribute(C.SDL_GL_GREEN_SIZE, C.int(conf.ColorBits))
	C.SDL_GL_SetAttribute(C.SDL_GL_BLUE_SIZE, C.int(conf.ColorBits))
	C.SDL_GL_SetAttribute(C.SDL_GL_ALPHA_SIZE, C.int(conf.ColorBits))
	C.SDL_GL_SetAttribute(C.SDL_GL_DEPTH_SIZE, C.int(conf.DepthBits))
	C.SDL_GL_SetAttribute(C.SDL_GL_STENCIL_SIZE, C.int(conf.StencilBits))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_MAJOR_VERSION, C.int(conf.GLMajor))
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_MINOR_VERSION, C.int(conf.GLMinor))
	if conf.CoreProfile {
		C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_PROFILE_MASK, C.SDL_GL_CONTEXT_PROFILE_CORE)
	}
	var contextFlags C.int = C.SDL_GL_CONTEXT_FORWARD_COMPATIBLE_FLAG
	if conf.Debug {
		contextFlags |= C.SDL_GL_CONTEXT_DEBUG_FLAG
	}
	C.SDL_GL_SetAttribute(C.SDL_GL_CONTEXT_FLAGS, contextFlags)
}

func boolAttr(v bool) C.int {
	if v {
		return 1
	}
	return 0
}

func (w *window) Show() {
	C.SDL_ShowWindow(w.window)
	C.SDL_EventState(C.SDL_QUIT, C.SDL_ENABLE)
}

func (w *window) NextEventTimeout(timeoutMs int) platform.Event {
	if w.closed {
		return platform.DestroyNotify{}
	}
	var e C.SDL_Event
	if C.SDL_WaitEventTimeout(&e, C.int(timeoutMs)) == 0 {
		return platform.TimeoutEvent{}
	}
	event := convert(e)
	if _, ok := event.(platform.Resize); ok {
		width, height := w.FramebufferSize()
		return platform.Resize{Width: width, Height: height}
	}
	return event
}

func (w *window) SwapBuffers() {
	if w.closed {
		return
	}
	C.SDL_GL_SwapWindow(w.window)
}

func (w *window) FramebufferSize() (int, int) {
	if w.closed {
		return 0, 0
	}
	var width, height C.int
	C.SDL_GL_GetDrawableSize(w.window, &width, &height)
	return int(width), int(height)
}

func (w *window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	C.SDL_GL_MakeCurrent(w.window, nil)
	C.SDL_GL_DeleteContext(w.context)
	C.SDL_DestroyWindow(w.window)
	C.SDL_Quit()
	runtime.UnlockOSThread()
}

func convert(event C.SDL_Event) platform.Event {
	switch eventType := (*(*C.Uint32)(unsafe.Pointer(&event))); eventType {
	case C.SDL_QUIT:
		return platform.DestroyNotify{}
	case C.SDL_KEYDOWN:
		keyEvent := (*C.SDL_KeyboardEvent)(unsafe.Pointer(&event))
		code := uint64(keyEvent.keysym.scancode)
		label := C.GoString(C.SDL_GetKeyName(keyEvent.keysym.sym))
		return platform.KeyPress{Code: code, Label: label}
	case C.SDL_KEYUP:
		keyEvent := (*C.SDL_KeyboardEvent)(unsafe.Pointer(&event))
		code := uint64(keyEvent.keysym.scancode)
		label := C.GoString(C.SDL_GetKeyName(keyEvent.keysym.sym))
		return platform.KeyRelease{Code: code, Label: label}
	case C.SDL_MOUSEBUTTONDOWN:
		mouseEvent := (*C.SDL_MouseButtonEvent)(unsafe.Pointer(&event))
		return platform.ButtonPress{
			Button: uint32(mouseEvent.button),
			X:      int(mouseEvent.x),
			Y:      int(mouseEvent.y),
		}
	case C.SDL_MOUSEBUTTONUP:
		mouseEvent := (*C.SDL_MouseButtonEvent)(unsafe.Pointer(&event))
		return platform.ButtonRelease{
			Button: uint32(mouseEvent.button),
			X:      int(mouseEvent.x),
			Y:      int(mouseEvent.y),
		}
	case C.SDL_MOUSEMOTION:
		mouseEvent := (*C.SDL_MouseMotionEvent)(unsafe.Pointer(&event))
		return platform.MotionNotify{
			X: int(mouseEvent.x),
			Y: int(mouseEvent.y),
		}
	case C.SDL_MOUSEWHEEL:
		wheelEvent := (*C.SDL_MouseWheelEvent)(unsafe.Pointer(&event))
		dx := float64(wheelEvent.x)
		dy := float64(wheelEvent.y)
		if wheelEvent.direction == C.SDL_MOUSEWHEEL_FLIPPED {
			dx = -dx
			dy = -dy
		}
		var mx, my C.int
		C.SDL_GetMouseState(&mx, &my)
		return platform.MouseWheel{
			DeltaX: dx,
			DeltaY: dy,
			X:      int(mx),
			Y:      int(my),
		}
	case C.SDL_WINDOWEVENT:
		windowEvent := (*C.SDL_WindowEvent)(unsafe.Pointer(&event))
		switch windowEvent.event {
		case C.SDL_WINDOWEVENT_EXPOSED:
			return platform.Expose{}
		case C.SDL_WINDOWEVENT_ENTER:
			return platform.EnterNotify{}
		case C.SDL_WINDOWEVENT_LEAVE:
			return platform.LeaveNotify{}
		case C.SDL_WINDOWEVENT_SIZE_CHANGED:
			// Filled with the drawable size by the caller.
			return platform.Resize{}
		case C.SDL_WINDOWEVENT_CLOSE:
			return platform.DestroyNotify{}
		}
	}
	return platform.UnexpectedEvent{}
}
