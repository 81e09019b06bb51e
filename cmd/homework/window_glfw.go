//go:build !sdl

package main

import (
	"github.com/kjkrol/gohw/internal/platform"
	"github.com/kjkrol/gohw/internal/platform/glfwwindow"
)

func newWindow(conf platform.WindowConfig) (platform.GLWindow, error) {
	return glfwwindow.New(conf)
}
