package game

import "math/rand"

// RoundState records how the previous round ended.
type RoundState int

const (
	RoundInit RoundState = iota
	RoundLeftWins
	RoundRightWins
)

func (r RoundState) String() string {
	switch r {
	case RoundLeftWins:
		return "leftWins"
	case RoundRightWins:
		return "rightWins"
	default:
		return "init"
	}
}

// AngleSource picks the launch angle, in degrees, of each new ball.
type AngleSource interface {
	LaunchAngle() float64
}

// RandomAngles launches either rightwards in [320, 400) or leftwards in
// [140, 220), each cone picked with equal probability.
type RandomAngles struct {
	rng *rand.Rand
}

func NewRandomAngles(seed int64) *RandomAngles {
	return &RandomAngles{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomAngles) LaunchAngle() float64 {
	lo := 320.0
	if r.rng.Intn(2) == 1 {
		lo = 140.0
	}
	return lo + r.rng.Float64()*80
}

// FixedAngle always launches at the same angle.
type FixedAngle float64

func (f FixedAngle) LaunchAngle() float64 { return float64(f) }

type Score struct {
	Left  int
	Right int
}

type RoundResult struct {
	Round   int
	Outcome RoundState
	Score   Score
	Tick    uint32
}

// Snapshot is a value copy of a match, safe to hand to other goroutines.
type Snapshot struct {
	Tick      uint32
	RoundTick int
	Round     int
	Warmup    bool
	Last      RoundState
	Score     Score
	State     State
}

// Match drives rounds: warm-up, periodic paddle shrink, round-end detection,
// reset and scoring. It is not safe for concurrent use.
type Match struct {
	cfg    Config
	angles AngleSource

	State     State
	Tick      uint32 // ticks since the match began
	RoundTick int    // ticks since the current round began
	Round     int    // rounds completed
	Last      RoundState
	Score     Score
}

func NewMatch(cfg Config, angles AngleSource) *Match {
	m := &Match{cfg: cfg, angles: angles, Last: RoundInit}
	m.reset()
	return m
}

func (m *Match) Config() Config { return m.cfg }

func (m *Match) reset() {
	m.State = NewState(m.cfg, m.angles.LaunchAngle())
	m.RoundTick = 0
}

func (m *Match) Warmup() bool {
	return m.RoundTick <= m.cfg.WarmupTicks
}

// Advance runs one tick. Nothing moves during the warm-up of each round.
// When the ball has left the field the round is scored and a fresh layout is
// put in place; the result is returned with ended set.
func (m *Match) Advance() (res RoundResult, ended bool) {
	m.Tick++
	m.RoundTick++
	if m.Warmup() {
		return res, false
	}

	if m.cfg.ShrinkEvery > 0 && m.RoundTick%m.cfg.ShrinkEvery == 0 {
		m.State.Left.Shrink(m.cfg.ShrinkStep, m.cfg.MinPaddleLength)
		m.State.Right.Shrink(m.cfg.ShrinkStep, m.cfg.MinPaddleLength)
	}

	if outcome, over := RoundOutcome(&m.State); over {
		m.Last = outcome
		m.Round++
		m.award(outcome)
		m.reset()
		return RoundResult{Round: m.Round, Outcome: outcome, Score: m.Score, Tick: m.Tick}, true
	}

	Step(&m.State, m.cfg.DT)
	return res, false
}

// ResetScore zeroes both counters without touching the running round.
func (m *Match) ResetScore() {
	m.Score = Score{}
}

func (m *Match) award(outcome RoundState) {
	counter := &m.Score.Left
	if outcome == RoundRightWins {
		counter = &m.Score.Right
	}
	if m.cfg.MaxScore > 0 && *counter >= m.cfg.MaxScore {
		return
	}
	*counter++
}

func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Tick:      m.Tick,
		RoundTick: m.RoundTick,
		Round:     m.Round,
		Warmup:    m.Warmup(),
		Last:      m.Last,
		Score:     m.Score,
		State:     m.State,
	}
}
