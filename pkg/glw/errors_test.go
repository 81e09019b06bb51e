package glw_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjkrol/gohw/pkg/glw"
)

func TestError_Format(t *testing.T) {
	err := &glw.Error{Kind: glw.KindCompile, Op: "compile shader", Stage: glw.VertexStage, Log: "0:1(1): error"}
	assert.Equal(t, "compile shader: shader compilation failed stage:vertex what:0:1(1): error", err.Error())

	wrapped := glw.NewError(glw.KindResourceLoad, "open texture a.png", fs.ErrNotExist)
	assert.Equal(t, "open texture a.png: resource load failed: file does not exist", wrapped.Error())
}

func TestError_Matching(t *testing.T) {
	inner := glw.NewError(glw.KindResourceLoad, "read shader x.glsl", fs.ErrNotExist)
	err := fmt.Errorf("homework init: %w", inner)

	assert.True(t, errors.Is(err, glw.ErrResourceLoad))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, glw.ErrCompile))
	assert.Equal(t, glw.KindResourceLoad, glw.KindOf(err))
	assert.Zero(t, glw.KindOf(errors.New("plain")))
}
