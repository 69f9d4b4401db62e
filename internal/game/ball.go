package game

import "math"

type Ball struct {
	X, Y   float64
	VX, VY float64
}

// LaunchBall places a ball at (x, y) moving at speed along angle degrees.
func LaunchBall(x, y, speed, degrees float64) Ball {
	rad := degrees * math.Pi / 180
	return Ball{
		X:  x,
		Y:  y,
		VX: speed * math.Cos(rad),
		VY: speed * math.Sin(rad),
	}
}

func (b *Ball) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Update advances the ball by one explicit Euler step and reflects it off the
// walls and paddles. Reflection only inverts velocity; position is never
// clamped, so the ball may overshoot a wall by up to one step.
func (b *Ball) Update(dt float64, board Board, phys Physics, left, right *Paddle) {
	b.X += b.VX * dt
	b.Y += b.VY * dt

	// Only reflect while heading into the wall, otherwise a slow ball sitting
	// inside the margin would flip every tick.
	if (b.Y+phys.BallMargin >= board.Height && b.VY > 0) ||
		(b.Y-phys.BallMargin <= 0 && b.VY < 0) {
		b.VY = -b.VY
	}

	if b.X < right.X-phys.PaddleReach && b.X > left.X+phys.PaddleReach {
		return
	}
	if !right.Covers(b.Y) && !left.Covers(b.Y) {
		return
	}
	// Still inside the band after a bounce: the ball is already heading back
	// to the centre and must not be flipped again.
	mid := board.CenterX()
	if (b.X > mid && b.VX > 0) || (b.X < mid && b.VX < 0) {
		b.VX = -b.VX
	}
}
