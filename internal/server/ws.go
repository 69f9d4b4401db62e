package server

import (
	"encoding/json"
	"log"
	"net/http"
	"pongsim/internal/net"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	writeWait  = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Spectators may watch from any origin
	},
}

// Connection is one spectator's websocket.
type Connection struct {
	conn        *websocket.Conn
	send        chan []byte
	rooms       *Rooms
	roomID      string
	spectatorID int
	name        string
	done        chan struct{}
	closeOnce   sync.Once
}

func NewConnection(conn *websocket.Conn, rooms *Rooms) *Connection {
	return &Connection{
		conn:  conn,
		send:  make(chan []byte, 256),
		rooms: rooms,
		done:  make(chan struct{}),
	}
}

func (c *Connection) SendMessage(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Server] Error marshaling message: %v", err)
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[Server] Send buffer full for spectator %d", c.spectatorID)
	}
}

// close detaches the spectator and tells writePump to say goodbye. The
// socket itself is closed by writePump.
func (c *Connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.rooms.Leave(c.roomID, c.spectatorID)
	})
}

func (c *Connection) readPump() {
	defer c.close()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Server] WebSocket error: %v", err)
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
		case "hello":
			var hello net.HelloMessage
			if err := json.Unmarshal(message, &hello); err == nil {
				c.name = hello.Name
				log.Printf("[Server] Spectator %d in room %s is %q", c.spectatorID, c.roomID, hello.Name)
			}
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// StartSnapshotLoop pushes the room's state to the spectator until the
// connection closes.
func (c *Connection) StartSnapshotLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if snap, ok := c.rooms.Snapshot(c.roomID); ok {
				c.SendMessage(snap)
			}
		}
	}
}

func HandleWebSocket(rooms *Rooms, snapshotInterval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := mux.Vars(r)["id"]

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[Server] WebSocket upgrade error: %v", err)
			return
		}

		c := NewConnection(conn, rooms)
		rooms.Join(roomID, c)
		go c.writePump()
		go c.readPump()
		go c.StartSnapshotLoop(snapshotInterval)
	}
}
