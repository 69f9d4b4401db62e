package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"pongsim/internal/config"
	"pongsim/internal/store"
	"time"
)

const shutdownTimeout = 5 * time.Second

// Server runs the room ticker and serves spectators over HTTP.
type Server struct {
	cfg   *config.Config
	rooms *Rooms
}

func New(cfg *config.Config) *Server {
	scores := store.New(nil)
	if cfg.Store.Enabled {
		scores = store.Open(cfg.Store.AppName)
	}
	return NewWithStore(cfg, scores)
}

func NewWithStore(cfg *config.Config, scores *store.Scores) *Server {
	return &Server{
		cfg:   cfg,
		rooms: NewRooms(cfg, scores),
	}
}

func (s *Server) Rooms() *Rooms { return s.rooms }

func (s *Server) Handler() http.Handler {
	return Handler(s.rooms, s.cfg.SnapshotInterval(), os.Stdout)
}

// Run ticks every room and serves HTTP on the configured address until ctx
// is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.rooms.StartRoomTicks(ctx)

	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Server] Listening on %s (%d ticks/s)", s.cfg.Server.Addr, s.cfg.Server.TickRate)
		log.Printf("[Server] Spectate at ws://localhost%s/rooms/{id}/ws", s.cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		log.Printf("[Server] Shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
