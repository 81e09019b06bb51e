// Package config reads the TOML file that tunes the window, the frame loop,
// asset lookup and logging.
package config

import (
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/kjkrol/gohw/internal/platform"
	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/homework"
)

type Config struct {
	Window Window `toml:"window"`
	Render Render `toml:"render"`
	Assets Assets `toml:"assets"`
	Log    Log    `toml:"log"`
}

type Window struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Title       string `toml:"title"`
	GLMajor     int    `toml:"gl_major"`
	GLMinor     int    `toml:"gl_minor"`
	Debug       bool   `toml:"debug"`
	VSync       bool   `toml:"vsync"`
	Resizable   bool   `toml:"resizable"`
	HighDPI     bool   `toml:"high_dpi"`
	DepthBits   int    `toml:"depth_bits"`
	StencilBits int    `toml:"stencil_bits"`
}

type Render struct {
	FPS int `toml:"fps"`
	// DrainMax caps the events handled per frame; 0 handles all of them.
	DrainMax    int    `toml:"drain_max"`
	CheckErrors bool   `toml:"check_errors"`
	MaxFrames   uint64 `toml:"max_frames"`
}

type Assets struct {
	// Dir replaces the embedded shaders and textures when set.
	Dir          string `toml:"dir"`
	FlipTextures bool   `toml:"flip_textures"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

func Default() Config {
	win := platform.DefaultWindowConfig()
	return Config{
		Window: Window{
			Width:       win.Width,
			Height:      win.Height,
			Title:       win.Title,
			GLMajor:     win.GLMajor,
			GLMinor:     win.GLMinor,
			Debug:       win.Debug,
			VSync:       win.VSync,
			Resizable:   win.Resizable,
			HighDPI:     win.HighDPI,
			DepthBits:   win.DepthBits,
			StencilBits: win.StencilBits,
		},
		Render: Render{FPS: 60},
		Assets: Assets{FlipTextures: true},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load overlays the file at path on Default. A missing or unreadable file is
// a glw.KindResourceLoad error; unknown keys are rejected.
func Load(path string) (Config, error) {
	conf := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, glw.NewError(glw.KindResourceLoad, "read config "+path, err)
	}
	if err := conf.decode(string(data)); err != nil {
		return conf, glw.NewError(glw.KindResourceLoad, "parse config "+path, err)
	}
	return conf, nil
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Config, error) {
	conf := Default()
	err := conf.decode(doc)
	return conf, err
}

func (c *Config) decode(doc string) error {
	md, err := toml.Decode(doc, c)
	if err != nil {
		return errors.Wrap(err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return c.Validate()
}

func (c Config) Validate() error {
	if err := c.WindowConfig().Validate(); err != nil {
		return errors.Wrap(err, "window")
	}
	if c.Render.FPS < 0 || c.Render.DrainMax < 0 {
		return errors.New("render: fps and drain_max must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if !slices.Contains([]string{"text", "json"}, c.Log.Format) {
		return errors.Errorf("log: unknown format %q", c.Log.Format)
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func (c Config) WindowConfig() platform.WindowConfig {
	win := platform.DefaultWindowConfig()
	win.Width = c.Window.Width
	win.Height = c.Window.Height
	win.Title = c.Window.Title
	win.GLMajor = c.Window.GLMajor
	win.GLMinor = c.Window.GLMinor
	win.Debug = c.Window.Debug
	win.VSync = c.Window.VSync
	win.Resizable = c.Window.Resizable
	win.HighDPI = c.Window.HighDPI
	win.DepthBits = c.Window.DepthBits
	win.StencilBits = c.Window.StencilBits
	return win
}

func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return level, errors.Wrapf(err, "log: level %q", c.Log.Level)
	}
	return level, nil
}

// Logger builds the slog logger described by the [log] section.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// AssetsFS returns the configured asset directory, or embedded when none is
// set.
func (c Config) AssetsFS(embedded fs.FS) fs.FS {
	if c.Assets.Dir == "" {
		return embedded
	}
	return os.DirFS(c.Assets.Dir)
}

// RunnerOptions translates the [render] and [assets] sections.
func (c Config) RunnerOptions(embedded fs.FS) []homework.Option {
	strategy := homework.DrainAll()
	if c.Render.DrainMax > 0 {
		strategy = homework.DrainMax(c.Render.DrainMax)
	}
	return []homework.Option{
		homework.WithRefreshRate(c.Render.FPS),
		homework.WithStrategy(strategy),
		homework.WithMaxFrames(c.Render.MaxFrames),
		homework.WithCheckErrors(c.Render.CheckErrors),
		homework.WithAssets(c.AssetsFS(embedded)),
		homework.WithFlipTextures(c.Assets.FlipTextures),
	}
}
