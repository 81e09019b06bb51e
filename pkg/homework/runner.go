package homework

import (
	"context"
	"io/fs"
	"log/slog"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/kjkrol/gohw/internal/platform"
	"github.com/kjkrol/gohw/pkg/glw"
)

const (
	maxEventWait = 50 * time.Millisecond
	defaultFPS   = 60
)

// ErrClosed is returned by Run on a runner that was already closed.
var ErrClosed = errors.New("runner closed")

type Option func(*Runner)

// WithRefreshRate sets the target frame rate. fps below 1 means 60.
func WithRefreshRate(fps int) Option {
	return func(r *Runner) {
		if fps <= 0 {
			fps = defaultFPS
		}
		r.refreshDelay = time.Second / time.Duration(fps)
	}
}

func WithStrategy(strategy EventsConsumerStrategy) Option {
	return func(r *Runner) {
		if strategy != nil {
			r.strategy = strategy
		}
	}
}

func WithAssets(fsys fs.FS) Option {
	return func(r *Runner) {
		r.ctx.Assets = fsys
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.ctx.Logger = logger
		}
	}
}

func WithFlipTextures(flip bool) Option {
	return func(r *Runner) {
		r.ctx.FlipTextures = flip
	}
}

// WithMaxFrames stops the loop after n rendered frames. 0 runs until stopped.
func WithMaxFrames(n uint64) Option {
	return func(r *Runner) {
		r.maxFrames = n
	}
}

// WithCheckErrors drains the driver error queue after every frame and logs
// what it finds.
func WithCheckErrors(check bool) Option {
	return func(r *Runner) {
		r.checkErrors = check
	}
}

// Runner drives one homework in one window. It is single threaded: every
// method except Stop must be called from the goroutine that created the
// window.
type Runner struct {
	window   platform.GLWindow
	homework Homework
	ctx      *Context
	strategy EventsConsumerStrategy

	refreshDelay time.Duration
	maxFrames    uint64
	checkErrors  bool

	done   context.Context
	cancel context.CancelFunc

	initialized bool
	closed      bool
}

// NewRunner takes ownership of window: Close destroys it.
func NewRunner(window platform.GLWindow, api glw.API, hw Homework, opts ...Option) *Runner {
	r := &Runner{
		window:       window,
		homework:     hw,
		ctx:          &Context{API: api, Logger: glw.Logger()},
		strategy:     DrainAll(),
		refreshDelay: time.Second / defaultFPS,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.done, r.cancel = context.WithCancel(context.Background())
	return r
}

// Context is the context handed to the homework.
func (r *Runner) Context() *Context {
	return r.ctx
}

// Stop asks the loop to return after the current iteration. It is safe to
// call from any goroutine.
func (r *Runner) Stop() {
	r.cancel()
}

// Run shows the window, initializes the homework and loops until Stop, a
// DestroyNotify or Escape key, ctx cancellation or an error from the
// homework. The runner is closed when Run returns.
func (r *Runner) Run(ctx context.Context) error {
	if r.closed {
		return ErrClosed
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer r.Close()

	r.window.Show()
	r.resize(r.window.FramebufferSize())

	r.ctx.started = time.Now()
	r.ctx.now = r.ctx.started
	r.initialized = true
	if err := r.homework.Init(r.ctx); err != nil {
		return errors.Wrap(err, "homework init")
	}
	r.ctx.Logger.Info("homework ready", slog.Int("width", r.ctx.width), slog.Int("height", r.ctx.height))

	poll := func(timeoutMs int) (Event, bool) {
		platformEvent := r.window.NextEventTimeout(timeoutMs)
		if _, ok := platformEvent.(platform.TimeoutEvent); ok {
			return nil, false
		}
		return convert(platformEvent), true
	}

	nextRender := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.done.Done():
			return nil
		default:
		}

		timeout := time.Until(nextRender)
		if timeout < 0 {
			timeout = 0
		}
		if timeout > maxEventWait {
			timeout = maxEventWait
		}
		timeoutMs := int(timeout / time.Millisecond)
		if timeout > 0 && timeoutMs == 0 {
			timeoutMs = 1
		}
		r.strategy.Consume(poll, r.handle, timeoutMs)
		if r.done.Err() != nil {
			return nil
		}

		now := time.Now()
		if now.Before(nextRender) {
			continue
		}
		if err := r.renderFrame(now); err != nil {
			return err
		}
		nextRender = now.Add(r.refreshDelay)
		if r.maxFrames > 0 && r.ctx.frame >= r.maxFrames {
			return nil
		}
	}
}

func (r *Runner) renderFrame(now time.Time) error {
	r.ctx.frame++
	r.ctx.now = now
	if err := r.homework.Render(r.ctx); err != nil {
		return errors.Wrapf(err, "render frame %d", r.ctx.frame)
	}
	if r.checkErrors {
		if err := glw.CheckError(r.ctx.API, "frame"); err != nil {
			r.ctx.Logger.Warn("driver reported errors", slog.Uint64("frame", r.ctx.frame), slog.Any("error", err))
		}
	}
	r.window.SwapBuffers()
	return nil
}

func (r *Runner) handle(event Event) {
	switch e := event.(type) {
	case DestroyNotify:
		r.Stop()
	case KeyPress:
		if e.Label == EscapeKey {
			r.Stop()
		}
	case Resize:
		r.resize(e.Width, e.Height)
	}
	if h, ok := r.homework.(EventHandler); ok {
		h.HandleEvent(r.ctx, event)
	}
}

func (r *Runner) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.ctx.width, r.ctx.height = width, height
	r.ctx.API.Viewport(0, 0, int32(width), int32(height))
}

// Close releases the homework's GPU objects and then the window with its
// context. Only the first call does anything.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.cancel()
	if r.initialized {
		r.homework.Delete()
	}
	r.window.Close()
	r.ctx.Logger.Debug("runner closed", slog.Uint64("frames", r.ctx.frame))
}
