package glw_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kjkrol/gohw/pkg/glw"
	"github.com/kjkrol/gohw/pkg/glw/glwtest"
)

func TestScope_ReleasesInReverseOrderOnce(t *testing.T) {
	var order []string
	var scope glw.Scope
	scope.Add(glw.DeleterFunc(func() { order = append(order, "first") }))
	scope.Add(nil)
	scope.Add(glw.DeleterFunc(func() { order = append(order, "second") }))
	assert.Equal(t, 2, scope.Len())

	scope.Delete()
	scope.Delete()

	assert.Equal(t, []string{"second", "first"}, order)
	assert.Zero(t, scope.Len())
}

func TestScope_PartialConstruction(t *testing.T) {
	api := glwtest.NewRecorder()
	var scope glw.Scope

	vertex, err := glw.NewShader(api, glw.VertexStage, passVertex)
	assert.NoError(t, err)
	scope.Add(vertex)
	scope.Add(glw.NewBuffer(api, glw.ARRAY_BUFFER, glw.STATIC_DRAW))

	_, err = glw.NewShader(api, glw.FragmentStage, brokenFragment)
	assert.Error(t, err)
	scope.Delete()

	assert.Zero(t, api.LiveTotal())
	assert.Empty(t, api.Misuse())
}
