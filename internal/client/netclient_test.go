package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"pongsim/internal/net"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedServer greets with a welcome, a snapshot and a round end, then
// echoes the hello it received back to the test.
func scriptedServer(t *testing.T, hellos chan<- net.HelloMessage) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		for _, msg := range []interface{}{
			net.WelcomeMessage{Type: "welcome", SpectatorID: 3, RoomID: "lobby", Board: net.Board{Width: 200, Height: 100}},
			net.SnapMessage{Type: "snap", RoomID: "lobby", Tick: 7, Ball: net.BallState{X: 100, Y: 50}},
			net.RoundEndMessage{Type: "roundEnd", RoomID: "lobby", Round: 1, Outcome: "leftWins", Score: net.Score{Left: 1}},
		} {
			data, _ := json.Marshal(msg)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var hello net.HelloMessage
		if json.Unmarshal(data, &hello) == nil {
			hellos <- hello
		}
		conn.ReadMessage()
	}))
}

func TestNetClientReceivesMessages(t *testing.T) {
	hellos := make(chan net.HelloMessage, 1)
	srv := scriptedServer(t, hellos)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	nc, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), "watcher")
	require.NoError(t, err)
	defer nc.Close()

	welcome, err := nc.WaitWelcome(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, welcome.SpectatorID)
	assert.Equal(t, 200.0, welcome.Board.Width)

	snap, err := nc.WaitSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), snap.Tick)

	end, err := nc.WaitRoundEnd(ctx)
	require.NoError(t, err)
	assert.Equal(t, "leftWins", end.Outcome)
	assert.Equal(t, 1, end.Score.Left)

	select {
	case hello := <-hellos:
		assert.Equal(t, "watcher", hello.Name)
		assert.Equal(t, "hello", hello.Type)
	case <-ctx.Done():
		t.Fatal("server never received hello")
	}

	nc.mu.Lock()
	assert.Equal(t, "lobby", nc.RoomID)
	nc.mu.Unlock()
}

func TestDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), "watcher")
	assert.Error(t, err)
}

func TestGetSnapshotDoesNotBlock(t *testing.T) {
	nc := &NetClient{snapshot: make(chan net.SnapMessage, 1)}
	assert.Nil(t, nc.GetSnapshot())

	nc.snapshot <- net.SnapMessage{Type: "snap", Tick: 4}
	snap := nc.GetSnapshot()
	require.NotNil(t, snap)
	assert.Equal(t, uint32(4), snap.Tick)
	assert.Nil(t, nc.GetSnapshot())
}

func TestWaitTimesOut(t *testing.T) {
	nc := &NetClient{snapshot: make(chan net.SnapMessage)}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := nc.WaitSnapshot(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
