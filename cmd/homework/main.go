package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/tdewolff/argp"

	"github.com/kjkrol/gohw/internal/config"
	"github.com/kjkrol/gohw/internal/glcore"
	"github.com/kjkrol/gohw/pkg/demos"
	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/homework"
)

func init() {
	// GL and the window system must stay on the main thread.
	runtime.LockOSThread()
}

type Homework struct{}

type List struct{}

type Run struct {
	Config string `short:"c" default:"" desc:"TOML config file"`
	Level  string `short:"l" default:"" desc:"Log level: debug, info, warn or error"`
	Frames int    `short:"n" default:"0" desc:"Stop after this many frames"`
	Name   string `index:"0" desc:"Homework to run"`
}

type Config struct {
	Config string `short:"c" default:"" desc:"TOML config file to check"`
}

func main() {
	root := argp.NewCmd(&Homework{}, "OpenGL homework runner")
	root.AddCmd(&List{}, "list", "List the homework set")
	root.AddCmd(&Run{}, "run", "Open a window and run one homework")
	root.AddCmd(&Config{}, "config", "Print the effective configuration")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Homework) Run() error {
	return argp.ShowUsage
}

func (cmd *List) Run() error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, entry := range demos.Registry().Entries() {
		fmt.Fprintf(w, "%s\t%s\n", entry.Name, entry.Description)
	}
	return w.Flush()
}

func (cmd *Config) Run() error {
	conf, err := loadConfig(cmd.Config)
	if err != nil {
		return err
	}
	return conf.Encode(os.Stdout)
}

func (cmd *Run) Run() error {
	if cmd.Name == "" {
		return argp.ShowUsage
	}
	if err := cmd.execute(os.Stderr); err != nil {
		os.Exit(1)
	}
	return nil
}

// execute logs every failure to stderr, through the default logger until the
// configured one is built.
func (cmd *Run) execute(stderr io.Writer) error {
	logger, err := config.Default().Logger(stderr)
	if err != nil {
		return err
	}
	conf, err := loadConfig(cmd.Config)
	if err == nil {
		if cmd.Level != "" {
			conf.Log.Level = cmd.Level
		}
		if cmd.Frames > 0 {
			conf.Render.MaxFrames = uint64(cmd.Frames)
		}
		var configured *slog.Logger
		if configured, err = conf.Logger(stderr); err == nil {
			logger = configured
		}
	}
	if err == nil {
		glw.SetLogger(logger)
		err = run(cmd.Name, conf, logger)
	}
	if err != nil {
		logger.Error("homework failed", slog.String("homework", cmd.Name), slog.String("kind", kindName(err)), slog.Any("error", err))
	}
	return err
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func run(name string, conf config.Config, logger *slog.Logger) error {
	entry, ok := demos.Registry().Lookup(name)
	if !ok {
		return errors.Errorf("unknown homework %q, try one of: %s", name, strings.Join(demos.Registry().Names(), ", "))
	}

	winConf := conf.WindowConfig()
	if winConf.Title == config.Default().Window.Title {
		winConf.Title += " - " + name
	}
	window, err := newWindow(winConf)
	if err != nil {
		return err
	}
	api, err := glcore.New()
	if err != nil {
		window.Close()
		return err
	}
	logger.Info("gl ready", slog.Any("driver", api.Info()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := append(conf.RunnerOptions(demos.Assets), homework.WithLogger(logger))
	runner := homework.NewRunner(window, api, entry.New(), opts...)
	return runner.Run(ctx)
}

func kindName(err error) string {
	if kind := glw.KindOf(err); kind != 0 {
		return kind.String()
	}
	return "error"
}
