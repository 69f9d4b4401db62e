package client

import (
	"context"
	"encoding/json"
	"log"
	"pongsim/internal/net"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// NetClient is a spectator connection to one room.
type NetClient struct {
	conn        *websocket.Conn
	send        chan []byte
	snapshot    chan net.SnapMessage
	welcome     chan net.WelcomeMessage
	roundEnd    chan net.RoundEndMessage
	done        chan struct{}
	closeOnce   sync.Once
	mu          sync.Mutex
	SpectatorID int
	RoomID      string
}

// Dial connects to a room's websocket, e.g. ws://host:8080/rooms/lobby/ws.
func Dial(ctx context.Context, url, name string) (*NetClient, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", url)
	}

	nc := &NetClient{
		conn:     conn,
		send:     make(chan []byte, 256),
		snapshot: make(chan net.SnapMessage, 10),
		welcome:  make(chan net.WelcomeMessage, 1),
		roundEnd: make(chan net.RoundEndMessage, 10),
		done:     make(chan struct{}),
	}

	go nc.readPump()
	go nc.writePump()

	nc.SendMessage(net.HelloMessage{
		Type:    "hello",
		Name:    name,
		Version: 1,
	})

	return nc, nil
}

func (nc *NetClient) SendMessage(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case nc.send <- data:
	default:
	}
}

func (nc *NetClient) readPump() {
	defer nc.Close()

	for {
		_, message, err := nc.conn.ReadMessage()
		if err != nil {
			select {
			case <-nc.done:
			default:
				log.Printf("[Client] Read error: %v", err)
			}
			return
		}

		var baseMsg map[string]interface{}
		if err := json.Unmarshal(message, &baseMsg); err != nil {
			continue
		}

		msgType, ok := baseMsg["type"].(string)
		if !ok {
			continue
		}

		switch msgType {
		case "welcome":
			var welcome net.WelcomeMessage
			if err := json.Unmarshal(message, &welcome); err == nil {
				nc.mu.Lock()
				nc.SpectatorID = welcome.SpectatorID
				nc.RoomID = welcome.RoomID
				nc.mu.Unlock()
				select {
				case nc.welcome <- welcome:
				default:
				}
			}

		case "snap":
			var snap net.SnapMessage
			if err := json.Unmarshal(message, &snap); err == nil {
				select {
				case nc.snapshot <- snap:
				default:
					// Drop if buffer full
				}
			}

		case "roundEnd":
			var end net.RoundEndMessage
			if err := json.Unmarshal(message, &end); err == nil {
				select {
				case nc.roundEnd <- end:
				default:
				}
			}
		}
	}
}

func (nc *NetClient) writePump() {
	defer nc.conn.Close()

	for {
		select {
		case <-nc.done:
			nc.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case message := <-nc.send:
			if err := nc.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}
}

// GetSnapshot returns the oldest buffered snapshot, or nil if none arrived.
func (nc *NetClient) GetSnapshot() *net.SnapMessage {
	select {
	case snap := <-nc.snapshot:
		return &snap
	default:
		return nil
	}
}

func (nc *NetClient) WaitWelcome(ctx context.Context) (net.WelcomeMessage, error) {
	select {
	case welcome := <-nc.welcome:
		return welcome, nil
	case <-ctx.Done():
		return net.WelcomeMessage{}, errors.Wrap(ctx.Err(), "waiting for welcome")
	}
}

func (nc *NetClient) WaitSnapshot(ctx context.Context) (net.SnapMessage, error) {
	select {
	case snap := <-nc.snapshot:
		return snap, nil
	case <-ctx.Done():
		return net.SnapMessage{}, errors.Wrap(ctx.Err(), "waiting for snapshot")
	}
}

func (nc *NetClient) WaitRoundEnd(ctx context.Context) (net.RoundEndMessage, error) {
	select {
	case end := <-nc.roundEnd:
		return end, nil
	case <-ctx.Done():
		return net.RoundEndMessage{}, errors.Wrap(ctx.Err(), "waiting for round end")
	}
}

// Close asks the write pump to send a close frame and drop the connection.
func (nc *NetClient) Close() {
	nc.closeOnce.Do(func() {
		close(nc.done)
	})
}
