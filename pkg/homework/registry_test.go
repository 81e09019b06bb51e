package homework_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjkrol/gohw/pkg/homework"
)

func TestRegistry(t *testing.T) {
	registry := homework.NewRegistry()
	factory := func() homework.Homework { return &clearWork{} }

	require.NoError(t, registry.Register("triangle", "one triangle", factory))
	require.NoError(t, registry.Register("clear", "clear only", factory))
	assert.Error(t, registry.Register("clear", "again", factory))
	assert.Error(t, registry.Register("", "nameless", factory))
	assert.Error(t, registry.Register("nil", "no factory", nil))

	assert.Equal(t, []string{"clear", "triangle"}, registry.Names())
	entry, ok := registry.Lookup("triangle")
	require.True(t, ok)
	assert.Equal(t, "one triangle", entry.Description)
	assert.NotNil(t, entry.New())
	_, ok = registry.Lookup("cube")
	assert.False(t, ok)
	assert.Equal(t, "clear", registry.Entries()[0].Name)

	assert.Panics(t, func() { registry.MustRegister("clear", "", factory) })
}
