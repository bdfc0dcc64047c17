package hobbes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dminor/hobbes/pkg/hm"
)

func TestScopeLookup(t *testing.T) {
	env := NewTypeEnv()
	_, ok := env.Lookup("x")
	assert.False(t, ok)

	env.Bind("x", hm.NumType)
	typ, ok := env.Lookup("x")
	require.True(t, ok)
	assert.True(t, typ.Eq(hm.NumType))
}

func TestScopeShadowing(t *testing.T) {
	env := NewTypeEnv()
	env.Bind("x", hm.NumType)
	env.Bind("x", hm.BoolType)

	typ, ok := env.Lookup("x")
	require.True(t, ok)
	assert.True(t, typ.Eq(hm.BoolType), "innermost binding wins")
}

func TestScopeBindAll(t *testing.T) {
	env := NewEnv()
	env.BindAll(map[string]Value{
		"a": NumValue{Val: 1},
		"b": BoolValue{Val: true},
	})

	a, ok := env.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, NumValue{Val: 1}, a)
	b, ok := env.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, BoolValue{Val: true}, b)
}

func TestScopeForkIsolation(t *testing.T) {
	env := NewEnv()
	env.Bind("x", NumValue{Val: 1})

	fork := env.Fork()
	fork.Bind("x", NumValue{Val: 2})
	fork.Bind("y", NumValue{Val: 3})

	// The fork sees its own bindings over the shared chain.
	x, ok := fork.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, NumValue{Val: 2}, x)

	// The original never sees bindings made through the fork.
	x, ok = env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, NumValue{Val: 1}, x)
	_, ok = env.Lookup("y")
	assert.False(t, ok)
}

func TestScopeForkUnaffectedByLaterOuterBindings(t *testing.T) {
	// A fork shares the chain as of the fork point; frames pushed onto
	// the original afterwards are invisible to it.
	env := NewEnv()
	env.Bind("x", NumValue{Val: 1})
	fork := env.Fork()

	env.Bind("x", NumValue{Val: 10})

	x, ok := fork.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, NumValue{Val: 1}, x)
}
