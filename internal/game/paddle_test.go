package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaddleSpan(t *testing.T) {
	p := NewPaddle(Left, 5, 50, 20)
	assert.Equal(t, Span{X: 5, Bottom: 40, Top: 60}, p.Span)
	assert.True(t, p.Covers(40))
	assert.True(t, p.Covers(60))
	assert.False(t, p.Covers(60.01))

	p.Shrink(3, 4)
	assert.Equal(t, 17.0, p.Length)
	assert.Equal(t, Span{X: 5, Bottom: 41.5, Top: 58.5}, p.Span)

	p.Shrink(100, 4)
	assert.Equal(t, 4.0, p.Length)
}

func TestPaddleChase(t *testing.T) {
	board := Board{Width: 200, Height: 100}
	phys := DefaultConfig().Physics

	tests := []struct {
		name  string
		side  Side
		x     float64
		ball  Ball
		wantY float64
	}{
		{"left chases up", Left, 5, Ball{X: 50, Y: 60, VX: -1}, 50.6},
		{"left chases down", Left, 5, Ball{X: 50, Y: 40, VX: -1}, 49.4},
		{"left snaps to stop", Left, 5, Ball{X: 50, Y: 50.5, VX: -1}, 50},
		{"left ignores far half", Left, 5, Ball{X: 150, Y: 60, VX: -1}, 50},
		{"left ignores outgoing ball", Left, 5, Ball{X: 50, Y: 60, VX: 1}, 50},
		{"right chases up", Right, 195, Ball{X: 150, Y: 60, VX: 1}, 50.6},
		{"right snaps to stop", Right, 195, Ball{X: 150, Y: 49.5, VX: 1}, 50},
		{"right ignores far half", Right, 195, Ball{X: 50, Y: 60, VX: 1}, 50},
		{"right ignores outgoing ball", Right, 195, Ball{X: 150, Y: 60, VX: -1}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaddle(tt.side, tt.x, 50, 20)
			ball := tt.ball
			p.Update(1.5, &ball, board, phys)
			assert.InDelta(t, tt.wantY, p.Y, 1e-9)
			assert.InDelta(t, p.Y-10, p.Span.Bottom, 1e-9)
			assert.InDelta(t, p.Y+10, p.Span.Top, 1e-9)
		})
	}
}

func TestPaddleStaysOnBoard(t *testing.T) {
	board := Board{Width: 200, Height: 100}
	phys := DefaultConfig().Physics

	t.Run("top", func(t *testing.T) {
		p := NewPaddle(Left, 5, 50, 20)
		ball := Ball{X: 50, Y: 99, VX: -1}
		for i := 0; i < 200; i++ {
			p.Update(1.5, &ball, board, phys)
			assert.LessOrEqual(t, p.Y+p.Length/2, board.Height)
		}
		assert.Greater(t, p.Y, 89.0)
	})

	t.Run("bottom", func(t *testing.T) {
		p := NewPaddle(Right, 195, 50, 20)
		ball := Ball{X: 150, Y: 1, VX: 1}
		for i := 0; i < 200; i++ {
			p.Update(1.5, &ball, board, phys)
			assert.GreaterOrEqual(t, p.Y-p.Length/2, 0.0)
		}
		assert.Less(t, p.Y, 11.0)
	})

	t.Run("parked at the edge", func(t *testing.T) {
		p := NewPaddle(Left, 5, 89.5, 20)
		ball := Ball{X: 50, Y: 99, VX: -1}
		p.Update(1.5, &ball, board, phys)
		assert.Equal(t, 89.5, p.Y)
	})
}

func TestPaddleEdgeGuardIsHeuristic(t *testing.T) {
	board := Board{Width: 200, Height: 100}
	phys := DefaultConfig().Physics
	phys.PaddleSpeed = 10

	// A paddle sitting exactly at height-length is not treated as parked, so
	// a step larger than the remaining room carries it past the wall.
	p := NewPaddle(Left, 5, 80, 20)
	ball := Ball{X: 50, Y: 99, VX: -1}
	p.Update(1.5, &ball, board, phys)
	assert.Equal(t, 95.0, p.Y)
	assert.Greater(t, p.Span.Top, board.Height)
}
