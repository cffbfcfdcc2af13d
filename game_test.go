package main

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestGameStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &Game{ctx: ctx}
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}
