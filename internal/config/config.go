package config

import (
	"hash/fnv"
	"os"
	"pongsim/internal/game"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration of a pong server.
//
// File location defaults to data/pong.yaml. Any field left out of the file
// keeps its value from Default().
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Physics PhysicsConfig `yaml:"physics"`
	Match   MatchConfig   `yaml:"match"`
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
}

type BoardConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	PaddleInset float64 `yaml:"paddleInset"`
}

type PhysicsConfig struct {
	PaddleLength float64 `yaml:"paddleLength"`
	PaddleSpeed  float64 `yaml:"paddleSpeed"` // units per dt
	BallSpeed    float64 `yaml:"ballSpeed"`   // units per dt
	BallMargin   float64 `yaml:"ballMargin"`
	PaddleReach  float64 `yaml:"paddleReach"`
	DT           float64 `yaml:"dt"`
}

type MatchConfig struct {
	WarmupTicks     int     `yaml:"warmupTicks"`
	ShrinkEvery     int     `yaml:"shrinkEvery"`
	ShrinkStep      float64 `yaml:"shrinkStep"`
	MinPaddleLength float64 `yaml:"minPaddleLength"`
	MaxScore        int     `yaml:"maxScore"`
	Seed            int64   `yaml:"seed"` // 0 seeds from the clock
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	TickRate     int    `yaml:"tickRate"`     // match ticks per second
	SnapshotRate int    `yaml:"snapshotRate"` // snapshots per second per spectator
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	AppName string `yaml:"appName"`
}

// DefaultPath is where programs embedding the server look for the shipped
// configuration, relative to the repository root.
const DefaultPath = "data/pong.yaml"

func Default() *Config {
	g := game.DefaultConfig()
	return &Config{
		Board: BoardConfig{
			Width:       g.Board.Width,
			Height:      g.Board.Height,
			PaddleInset: g.PaddleInset,
		},
		Physics: PhysicsConfig{
			PaddleLength: g.PaddleLength,
			PaddleSpeed:  g.Physics.PaddleSpeed,
			BallSpeed:    g.Physics.BallSpeed,
			BallMargin:   g.Physics.BallMargin,
			PaddleReach:  g.Physics.PaddleReach,
			DT:           g.DT,
		},
		Match: MatchConfig{
			WarmupTicks:     g.WarmupTicks,
			ShrinkEvery:     g.ShrinkEvery,
			ShrinkStep:      g.ShrinkStep,
			MinPaddleLength: g.MinPaddleLength,
			MaxScore:        g.MaxScore,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			TickRate:     30,
			SnapshotRate: 30,
		},
		Store: StoreConfig{
			Enabled: true,
			AppName: "pongsim",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// ApplyEnv overrides the listen address and tick rate from PONG_ADDR and
// PONG_TICK_RATE when they are set.
func (c *Config) ApplyEnv() error {
	if addr := os.Getenv("PONG_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if rate := os.Getenv("PONG_TICK_RATE"); rate != "" {
		n, err := strconv.Atoi(rate)
		if err != nil {
			return errors.Wrapf(err, "PONG_TICK_RATE %q", rate)
		}
		c.Server.TickRate = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return errors.Errorf("board size must be positive, got %.1fx%.1f", c.Board.Width, c.Board.Height)
	}
	if c.Board.PaddleInset < 0 || c.Board.PaddleInset*2 >= c.Board.Width {
		return errors.Errorf("board.paddleInset %.1f does not fit width %.1f", c.Board.PaddleInset, c.Board.Width)
	}
	if c.Physics.PaddleLength <= 0 || c.Physics.PaddleLength >= c.Board.Height {
		return errors.Errorf("physics.paddleLength %.1f must be in (0, %.1f)", c.Physics.PaddleLength, c.Board.Height)
	}
	if c.Physics.DT <= 0 {
		return errors.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Physics.BallSpeed <= 0 || c.Physics.PaddleSpeed < 0 {
		return errors.New("physics speeds must not be negative and ballSpeed must be positive")
	}
	if c.Physics.BallMargin < 0 || c.Physics.PaddleReach < 0 {
		return errors.Errorf("physics.ballMargin and physics.paddleReach must not be negative, got %v and %v",
			c.Physics.BallMargin, c.Physics.PaddleReach)
	}
	if c.Match.WarmupTicks < 0 || c.Match.ShrinkEvery < 0 || c.Match.MaxScore < 0 {
		return errors.New("match tick counts must not be negative")
	}
	if c.Match.ShrinkStep < 0 {
		return errors.Errorf("match.shrinkStep must not be negative, got %v", c.Match.ShrinkStep)
	}
	if c.Match.MinPaddleLength <= 0 || c.Match.MinPaddleLength > c.Physics.PaddleLength {
		return errors.Errorf("match.minPaddleLength %v must be in (0, %v]", c.Match.MinPaddleLength, c.Physics.PaddleLength)
	}
	if c.Server.TickRate <= 0 || c.Server.SnapshotRate <= 0 {
		return errors.Errorf("server rates must be positive, got tick=%d snapshot=%d", c.Server.TickRate, c.Server.SnapshotRate)
	}
	if c.Store.Enabled && c.Store.AppName == "" {
		return errors.New("store.appName is required when the store is enabled")
	}
	return nil
}

// Game converts the file layout into the simulation's configuration.
func (c *Config) Game() game.Config {
	return game.Config{
		Board: game.Board{Width: c.Board.Width, Height: c.Board.Height},
		Physics: game.Physics{
			PaddleSpeed: c.Physics.PaddleSpeed,
			BallSpeed:   c.Physics.BallSpeed,
			BallMargin:  c.Physics.BallMargin,
			PaddleReach: c.Physics.PaddleReach,
		},
		PaddleLength:    c.Physics.PaddleLength,
		PaddleInset:     c.Board.PaddleInset,
		DT:              c.Physics.DT,
		WarmupTicks:     c.Match.WarmupTicks,
		ShrinkEvery:     c.Match.ShrinkEvery,
		ShrinkStep:      c.Match.ShrinkStep,
		MinPaddleLength: c.Match.MinPaddleLength,
		MaxScore:        c.Match.MaxScore,
	}
}

func (c *Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.Server.TickRate)
}

func (c *Config) SnapshotInterval() time.Duration {
	return time.Second / time.Duration(c.Server.SnapshotRate)
}

// Angles returns the launch angle source for the match in roomID. A fixed
// seed is mixed with the room id so rooms replay distinct sequences.
func (c *Config) Angles(roomID string) game.AngleSource {
	seed := c.Match.Seed
	if seed == 0 {
		return game.NewRandomAngles(time.Now().UnixNano())
	}
	h := fnv.New64a()
	h.Write([]byte(roomID))
	return game.NewRandomAngles(seed + int64(h.Sum64()))
}
