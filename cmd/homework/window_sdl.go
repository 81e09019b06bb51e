//go:build sdl

package main

import (
	"github.com/kjkrol/gohw/internal/platform"
	"github.com/kjkrol/gohw/internal/platform/sdlwindow"
)

func newWindow(conf platform.WindowConfig) (platform.GLWindow, error) {
	return sdlwindow.New(conf)
}
