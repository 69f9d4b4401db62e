package game

import "math"

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Span is the vertical segment a paddle occupies on the board. Ball reads it
// as the paddle's collision band.
type Span struct {
	X      float64
	Bottom float64
	Top    float64
}

type Paddle struct {
	Side   Side
	X, Y   float64
	Length float64
	Span   Span
}

func NewPaddle(side Side, x, y, length float64) Paddle {
	p := Paddle{Side: side, X: x, Y: y, Length: length}
	p.refreshSpan()
	return p
}

// Covers reports whether y lies inside the paddle band.
func (p *Paddle) Covers(y float64) bool {
	return y >= p.Span.Bottom && y <= p.Span.Top
}

// Shrink reduces the paddle length by step without going below floor.
func (p *Paddle) Shrink(step, floor float64) {
	p.Length = math.Max(p.Length-step, floor)
	p.refreshSpan()
}

func (p *Paddle) refreshSpan() {
	p.Span = Span{
		X:      p.X,
		Bottom: p.Y - p.Length/2,
		Top:    p.Y + p.Length/2,
	}
}

// Update moves the paddle one chase step towards the ball.
func (p *Paddle) Update(dt float64, ball *Ball, board Board, phys Physics) {
	defer p.refreshSpan()

	step := phys.PaddleSpeed * dt

	// Next step in either direction would leave the board: hold still while
	// both the ball and the paddle are parked at the same edge.
	if p.Y+step+p.Length/2 >= board.Height || p.Y-step-p.Length/2 <= 0 {
		nearTop := board.Height - p.Length
		if (ball.Y > nearTop && p.Y > nearTop) || (ball.Y < p.Length && p.Y < p.Length) {
			return
		}
	}

	if !p.tracks(ball, board) {
		return
	}

	diff := ball.Y - p.Y
	if math.Abs(diff) <= step {
		return
	}
	if diff > 0 {
		p.Y += step
	} else {
		p.Y -= step
	}
}

// tracks reports whether the ball is on this paddle's half and still
// travelling towards it.
func (p *Paddle) tracks(ball *Ball, board Board) bool {
	mid := board.CenterX()
	switch p.Side {
	case Left:
		return ball.X <= mid && ball.VX <= 0
	default:
		return ball.X >= mid && ball.VX >= 0
	}
}
