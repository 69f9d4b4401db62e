package store

import (
	"log"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const scoresObject = "scores"

// Result is one finished round as persisted for a room.
type Result struct {
	Round   int       `yaml:"round" json:"round"`
	Outcome string    `yaml:"outcome" json:"outcome"`
	Left    int       `yaml:"left" json:"left"`
	Right   int       `yaml:"right" json:"right"`
	At      time.Time `yaml:"at" json:"at"`
}

type History struct {
	Room    string   `yaml:"room" json:"room"`
	Results []Result `yaml:"results" json:"results"`
}

// Totals counts the rounds each side has won over the whole history.
func (h History) Totals() (left, right int) {
	for _, r := range h.Results {
		switch r.Outcome {
		case "leftWins":
			left++
		case "rightWins":
			right++
		}
	}
	return left, right
}

// Scores keeps per-room round history. A Scores with a nil manager runs in
// memory only and forgets everything on restart.
type Scores struct {
	manager *gdata.Manager
	memory  map[string]*History
	mu      sync.Mutex
}

func New(manager *gdata.Manager) *Scores {
	return &Scores{
		manager: manager,
		memory:  make(map[string]*History),
	}
}

// Open creates a gdata-backed store for appName. If gdata is unavailable the
// store falls back to memory and the error is logged.
func Open(appName string) *Scores {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Store] Warning: gdata unavailable: %v (scores kept in memory)", err)
		return New(nil)
	}
	return New(manager)
}

func (s *Scores) Persistent() bool {
	return s.manager != nil
}

// Load returns a copy of the room's history.
func (s *Scores) Load(room string) (History, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.loadUnlocked(room)
	if err != nil {
		return History{}, err
	}
	out := History{Room: h.Room, Results: make([]Result, len(h.Results))}
	copy(out.Results, h.Results)
	return out, nil
}

func (s *Scores) loadUnlocked(room string) (*History, error) {
	if h, ok := s.memory[room]; ok {
		return h, nil
	}

	h := &History{Room: room}
	if s.manager == nil || !s.manager.ObjectPropExists(scoresObject, room) {
		s.memory[room] = h
		return h, nil
	}

	data, err := s.manager.LoadObjectProp(scoresObject, room)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load scores for room %s", room)
	}
	if err := yaml.Unmarshal(data, h); err != nil {
		return nil, errors.Wrapf(err, "failed to decode scores for room %s", room)
	}
	h.Room = room
	s.memory[room] = h
	return h, nil
}

// Append records a finished round and writes the room's history back.
func (s *Scores) Append(room string, r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.loadUnlocked(room)
	if err != nil {
		return err
	}
	h.Results = append(h.Results, r)
	return s.saveUnlocked(h)
}

// Reset clears a room's history.
func (s *Scores) Reset(room string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &History{Room: room}
	s.memory[room] = h
	return s.saveUnlocked(h)
}

func (s *Scores) saveUnlocked(h *History) error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(h)
	if err != nil {
		return errors.Wrap(err, "failed to encode scores")
	}
	if err := s.manager.SaveObjectProp(scoresObject, h.Room, data); err != nil {
		return errors.Wrapf(err, "failed to save scores for room %s", h.Room)
	}
	return nil
}
