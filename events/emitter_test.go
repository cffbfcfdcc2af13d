package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitterTrigger(t *testing.T) {
	cases := []struct {
		name      string
		register  int
		triggers  int
		wantCalls int
	}{
		{"no_listeners", 0, 1, 0},
		{"single", 1, 1, 1},
		{"registered_twice", 2, 1, 2},
		{"registered_twice_triggered_thrice", 2, 3, 6},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e := NewEmitter()
			calls := 0
			fn := func(args ...any) { calls++ }
			for i := 0; i < c.register; i++ {
				e.On("tick", fn)
			}
			for i := 0; i < c.triggers; i++ {
				e.Trigger("tick")
			}
			assert.Equal(t, c.wantCalls, calls)
		})
	}
}

func TestEmitterOrderAndArgs(t *testing.T) {
	e := NewEmitter()
	var order []string
	e.On("resize", func(args ...any) {
		require.Len(t, args, 2)
		order = append(order, "first")
		assert.Equal(t, 800, args[0])
		assert.Equal(t, 600, args[1])
	})
	e.On("resize", func(args ...any) { order = append(order, "second") })
	e.On("resize", func(args ...any) { order = append(order, "third") })

	e.Trigger("resize", 800, 600)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestEmitterOff(t *testing.T) {
	t.Run("by_name", func(t *testing.T) {
		e := NewEmitter()
		var ticks, resizes int
		e.On("tick", func(args ...any) { ticks++ })
		e.On("tick", func(args ...any) { ticks++ })
		e.On("resize", func(args ...any) { resizes++ })

		e.Off("tick")
		e.Trigger("tick")
		e.Trigger("resize")

		assert.Equal(t, 0, ticks)
		assert.Equal(t, 1, resizes)
		assert.Equal(t, 0, e.Count("tick"))
		assert.Equal(t, 1, e.Count("resize"))
	})

	t.Run("all", func(t *testing.T) {
		e := NewEmitter()
		calls := 0
		e.On("tick", func(args ...any) { calls++ })
		e.On("resize", func(args ...any) { calls++ })

		e.Off()
		e.Trigger("tick")
		e.Trigger("resize")

		assert.Equal(t, 0, calls)
	})

	t.Run("unknown_name", func(t *testing.T) {
		e := NewEmitter()
		e.Off("missing")
		e.Trigger("missing")
	})
}

func TestEmitterMutationDuringTrigger(t *testing.T) {
	e := NewEmitter()
	late := 0
	e.On("ready", func(args ...any) {
		e.On("ready", func(args ...any) { late++ })
	})

	e.Trigger("ready")
	assert.Equal(t, 0, late, "listener added during trigger must not run in the same trigger")

	e.Trigger("ready")
	assert.Equal(t, 1, late)
}

func TestEmitterZeroValueAndNil(t *testing.T) {
	var e Emitter
	called := false
	e.On("x", func(args ...any) { called = true })
	e.Trigger("x")
	assert.True(t, called)

	var nilEmitter *Emitter
	nilEmitter.On("x", func(args ...any) {})
	nilEmitter.Trigger("x")
	nilEmitter.Off()
	assert.Equal(t, 0, nilEmitter.Count("x"))
}
