package net

// Client → Server messages

type HelloMessage struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// Server → Client messages

type Board struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type WelcomeMessage struct {
	Type        string `json:"type"`
	SpectatorID int    `json:"spectatorId"`
	RoomID      string `json:"roomId"`
	Board       Board  `json:"board"`
	TickRate    int    `json:"tickRate"`
}

type BallState struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

type PaddleState struct {
	Side   string  `json:"side"` // "left", "right"
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Length float64 `json:"length"`
}

type Score struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

type RoundState struct {
	State  string `json:"state"` // "warmup", "playing"
	Number int    `json:"number"`
	Last   string `json:"last"` // "init", "leftWins", "rightWins"
}

type SnapMessage struct {
	Type    string         `json:"type"`
	RoomID  string         `json:"roomId"`
	Tick    uint32         `json:"tick"`
	Ball    BallState      `json:"ball"`
	Paddles [2]PaddleState `json:"paddles"`
	Score   Score          `json:"score"`
	Round   RoundState     `json:"round"`
}

type RoundEndMessage struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Round   int    `json:"round"`
	Outcome string `json:"outcome"`
	Score   Score  `json:"score"`
	Tick    uint32 `json:"tick"`
}

// HTTP responses

type RoomSummary struct {
	ID         string      `json:"id"`
	Spectators int         `json:"spectators"`
	Snap       SnapMessage `json:"snap"`
	Persisted  Score       `json:"persisted"`
	Rounds     int         `json:"rounds"`
}
