package game

const (
	DefaultBoardWidth      = 200.0
	DefaultBoardHeight     = 100.0
	DefaultPaddleLength    = 20.0
	DefaultPaddleSpeed     = 0.4 // units per dt
	DefaultBallSpeed       = 1.2 // units per dt
	DefaultDT              = 1.5
	DefaultWarmupTicks     = 50
	DefaultBallMargin      = 2.0
	DefaultPaddleReach     = 3.0
	DefaultPaddleInset     = 5.0
	DefaultShrinkEvery     = 5
	DefaultShrinkStep      = 0.05
	DefaultMinPaddleLength = 4.0
	DefaultMaxScore        = 99
)

// Board is the fixed play area. Origin is the bottom-left corner.
type Board struct {
	Width  float64
	Height float64
}

func (b Board) CenterX() float64 { return b.Width / 2 }
func (b Board) CenterY() float64 { return b.Height / 2 }

// Physics holds the per-tick movement constants shared by Ball and Paddle.
type Physics struct {
	PaddleSpeed float64 // paddle chase speed
	BallSpeed   float64 // launch speed of a fresh ball
	BallMargin  float64 // distance from a wall at which the ball reflects
	PaddleReach float64 // x distance from a paddle inside which reflection is tested
}

type Config struct {
	Board           Board
	Physics         Physics
	PaddleLength    float64
	PaddleInset     float64 // distance of each paddle from its side wall
	DT              float64
	WarmupTicks     int
	ShrinkEvery     int     // 0 disables shrinking
	ShrinkStep      float64 // length lost on every shrink tick
	MinPaddleLength float64
	MaxScore        int // 0 means unbounded
}

func DefaultConfig() Config {
	return Config{
		Board: Board{Width: DefaultBoardWidth, Height: DefaultBoardHeight},
		Physics: Physics{
			PaddleSpeed: DefaultPaddleSpeed,
			BallSpeed:   DefaultBallSpeed,
			BallMargin:  DefaultBallMargin,
			PaddleReach: DefaultPaddleReach,
		},
		PaddleLength:    DefaultPaddleLength,
		PaddleInset:     DefaultPaddleInset,
		DT:              DefaultDT,
		WarmupTicks:     DefaultWarmupTicks,
		ShrinkEvery:     DefaultShrinkEvery,
		ShrinkStep:      DefaultShrinkStep,
		MinPaddleLength: DefaultMinPaddleLength,
		MaxScore:        DefaultMaxScore,
	}
}
