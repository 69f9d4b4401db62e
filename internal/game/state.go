package game

// State is everything that moves during a round. The tick driver owns it and
// passes it to Step by reference.
type State struct {
	Board   Board
	Physics Physics
	Ball    Ball
	Left    Paddle
	Right   Paddle
}

// NewState builds the start-of-round layout: ball at the centre launched at
// the given angle, paddles centred vertically and inset from each side.
func NewState(cfg Config, degrees float64) State {
	b := cfg.Board
	return State{
		Board:   b,
		Physics: cfg.Physics,
		Ball:    LaunchBall(b.CenterX(), b.CenterY(), cfg.Physics.BallSpeed, degrees),
		Left:    NewPaddle(Left, cfg.PaddleInset, b.CenterY(), cfg.PaddleLength),
		Right:   NewPaddle(Right, b.Width-cfg.PaddleInset, b.CenterY(), cfg.PaddleLength),
	}
}

// Step advances the ball and both paddles by dt.
func Step(s *State, dt float64) {
	s.Ball.Update(dt, s.Board, s.Physics, &s.Left, &s.Right)
	s.Right.Update(dt, &s.Ball, s.Board, s.Physics)
	s.Left.Update(dt, &s.Ball, s.Board, s.Physics)
}

// RoundOutcome reports which side won once the ball has left the range
// between the two paddles.
func RoundOutcome(s *State) (RoundState, bool) {
	switch {
	case s.Ball.X > s.Right.X:
		return RoundLeftWins, true
	case s.Ball.X < s.Left.X:
		return RoundRightWins, true
	}
	return RoundInit, false
}
