package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateLayout(t *testing.T) {
	s := NewState(DefaultConfig(), 0)

	assert.Equal(t, Ball{X: 100, Y: 50, VX: 1.2, VY: 0}, s.Ball)
	assert.Equal(t, NewPaddle(Left, 5, 50, 20), s.Left)
	assert.Equal(t, NewPaddle(Right, 195, 50, 20), s.Right)
}

func TestStepMovesBallThenPaddles(t *testing.T) {
	s := NewState(DefaultConfig(), 0)
	s.Ball.VY = 1

	Step(&s, 1.5)

	assert.InDelta(t, 101.8, s.Ball.X, 1e-9)
	assert.InDelta(t, 51.5, s.Ball.Y, 1e-9)
	// The right paddle reacts to the ball's new position within the same step.
	assert.InDelta(t, 50.6, s.Right.Y, 1e-9)
	assert.Equal(t, 50.0, s.Left.Y)
}

// Run a long seeded match and check the board invariants after every tick.
func TestMatchInvariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxScore = 0
	m := NewMatch(cfg, NewRandomAngles(42))
	const eps = 1e-9

	for i := 0; i < 20000; i++ {
		prevVY := m.State.Ball.VY
		prevY := m.State.Ball.Y
		_, ended := m.Advance()
		s := m.State

		require.GreaterOrEqual(t, s.Ball.Y, 0.0, "tick %d", m.Tick)
		require.LessOrEqual(t, s.Ball.Y, cfg.Board.Height, "tick %d", m.Tick)

		for _, p := range []Paddle{s.Left, s.Right} {
			require.GreaterOrEqual(t, p.Y-p.Length/2, -eps, "tick %d %s", m.Tick, p.Side)
			require.LessOrEqual(t, p.Y+p.Length/2, cfg.Board.Height+eps, "tick %d %s", m.Tick, p.Side)
			require.GreaterOrEqual(t, p.Length, cfg.MinPaddleLength)
		}

		if ended || m.Warmup() {
			continue
		}
		// A ball that stepped past a wall margin towards the wall must come
		// back with its vertical velocity flipped.
		crossedTop := prevVY > 0 && s.Ball.Y+cfg.Physics.BallMargin >= cfg.Board.Height
		crossedBottom := prevVY < 0 && s.Ball.Y-cfg.Physics.BallMargin <= 0
		if (crossedTop || crossedBottom) && prevY != s.Ball.Y {
			require.Equal(t, -prevVY, s.Ball.VY, "tick %d", m.Tick)
		}
	}
	assert.Equal(t, m.Round, m.Score.Left+m.Score.Right)
}
