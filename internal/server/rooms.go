package server

import (
	"context"
	"log"
	"pongsim/internal/config"
	"pongsim/internal/game"
	"pongsim/internal/net"
	"pongsim/internal/store"
	"sort"
	"sync"
	"time"
)

// Room is one running match and the spectators watching it.
type Room struct {
	ID         string
	match      *game.Match
	spectators map[int]*Connection
}

// Rooms owns every match and ticks them all from a single ticker.
type Rooms struct {
	cfg             *config.Config
	scores          *store.Scores
	rooms           map[string]*Room
	nextSpectatorID int
	mu              sync.Mutex
}

func NewRooms(cfg *config.Config, scores *store.Scores) *Rooms {
	return &Rooms{
		cfg:             cfg,
		scores:          scores,
		rooms:           make(map[string]*Room),
		nextSpectatorID: 1,
	}
}

// Open returns the room with the given id, starting a new match if needed.
func (m *Rooms) Open(roomID string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openUnlocked(roomID)
}

func (m *Rooms) openUnlocked(roomID string) *Room {
	if room, ok := m.rooms[roomID]; ok {
		return room
	}
	room := &Room{
		ID:         roomID,
		match:      game.NewMatch(m.cfg.Game(), m.cfg.Angles(roomID)),
		spectators: make(map[int]*Connection),
	}
	m.rooms[roomID] = room
	log.Printf("[Room] Started match in room %s", roomID)
	return room
}

// Join attaches a spectator to a room and greets it with the board layout.
func (m *Rooms) Join(roomID string, c *Connection) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	room := m.openUnlocked(roomID)
	id := m.nextSpectatorID
	m.nextSpectatorID++
	room.spectators[id] = c
	c.roomID = roomID
	c.spectatorID = id

	board := room.match.Config().Board
	c.SendMessage(net.WelcomeMessage{
		Type:        "welcome",
		SpectatorID: id,
		RoomID:      roomID,
		Board:       net.Board{Width: board.Width, Height: board.Height},
		TickRate:    m.cfg.Server.TickRate,
	})
	log.Printf("[Room] Spectator %d joined room %s (%d watching)", id, roomID, len(room.spectators))
	return id
}

func (m *Rooms) Leave(roomID string, spectatorID int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := room.spectators[spectatorID]; ok {
		delete(room.spectators, spectatorID)
		log.Printf("[Room] Spectator %d left room %s (%d watching)", spectatorID, roomID, len(room.spectators))
	}
}

func (m *Rooms) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.rooms))
	for id := range m.rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Rooms) Snapshot(roomID string) (net.SnapMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.rooms[roomID]
	if !ok {
		return net.SnapMessage{}, false
	}
	return snapMessage(roomID, room.match.Snapshot()), true
}

// Summary combines the live match with the persisted score history.
func (m *Rooms) Summary(roomID string) (net.RoomSummary, bool) {
	m.mu.Lock()
	room, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return net.RoomSummary{}, false
	}
	summary := net.RoomSummary{
		ID:         roomID,
		Spectators: len(room.spectators),
		Snap:       snapMessage(roomID, room.match.Snapshot()),
	}
	m.mu.Unlock()

	history, err := m.scores.Load(roomID)
	if err != nil {
		log.Printf("[Room] Failed to load score history for %s: %v", roomID, err)
		return summary, true
	}
	left, right := history.Totals()
	summary.Persisted = net.Score{Left: left, Right: right}
	summary.Rounds = len(history.Results)
	return summary, true
}

// ResetScores clears the room's history and its live score.
func (m *Rooms) ResetScores(roomID string) error {
	m.mu.Lock()
	if room, ok := m.rooms[roomID]; ok {
		room.match.ResetScore()
	}
	m.mu.Unlock()
	return m.scores.Reset(roomID)
}

type finishedRound struct {
	roomID string
	result game.RoundResult
}

// Tick advances every match by one tick. Round ends are pushed to the room's
// spectators and then recorded in the score store outside the lock.
func (m *Rooms) Tick() {
	var finished []finishedRound

	m.mu.Lock()
	for id, room := range m.rooms {
		res, ended := room.match.Advance()
		if !ended {
			continue
		}
		msg := net.RoundEndMessage{
			Type:    "roundEnd",
			RoomID:  id,
			Round:   res.Round,
			Outcome: res.Outcome.String(),
			Score:   net.Score{Left: res.Score.Left, Right: res.Score.Right},
			Tick:    res.Tick,
		}
		for _, c := range room.spectators {
			c.SendMessage(msg)
		}
		finished = append(finished, finishedRound{roomID: id, result: res})
	}
	m.mu.Unlock()

	for _, f := range finished {
		log.Printf("[Room] Room %s round %d: %s (%d-%d)",
			f.roomID, f.result.Round, f.result.Outcome, f.result.Score.Left, f.result.Score.Right)
		err := m.scores.Append(f.roomID, store.Result{
			Round:   f.result.Round,
			Outcome: f.result.Outcome.String(),
			Left:    f.result.Score.Left,
			Right:   f.result.Score.Right,
			At:      time.Now(),
		})
		if err != nil {
			log.Printf("[Store] Failed to record round for room %s: %v", f.roomID, err)
		}
	}
}

func (m *Rooms) StartRoomTicks(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.TickDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick()
		}
	}
}

func snapMessage(roomID string, s game.Snapshot) net.SnapMessage {
	state := "playing"
	if s.Warmup {
		state = "warmup"
	}
	return net.SnapMessage{
		Type:   "snap",
		RoomID: roomID,
		Tick:   s.Tick,
		Ball: net.BallState{
			X:  s.State.Ball.X,
			Y:  s.State.Ball.Y,
			VX: s.State.Ball.VX,
			VY: s.State.Ball.VY,
		},
		Paddles: [2]net.PaddleState{
			paddleState(s.State.Left),
			paddleState(s.State.Right),
		},
		Score: net.Score{Left: s.Score.Left, Right: s.Score.Right},
		Round: net.RoundState{
			State:  state,
			Number: s.Round + 1,
			Last:   s.Last.String(),
		},
	}
}

func paddleState(p game.Paddle) net.PaddleState {
	return net.PaddleState{
		Side:   p.Side.String(),
		X:      p.X,
		Y:      p.Y,
		Length: p.Length,
	}
}
