package live

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeeba-codes/wood-block-puzzle/internal/domain"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMsg(t *testing.T, conn *websocket.Conn) leaderboardMsg {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg leaderboardMsg
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

func TestHubBroadcastsToConnectedClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)

	hub.BroadcastLeaderboard([]domain.LeaderboardEntry{
		{Name: "Ada", HighScore: 120},
		{Name: "Beth", HighScore: 90},
	})

	msg := readMsg(t, conn)
	assert.Equal(t, "leaderboard", msg.Type)
	require.Len(t, msg.Entries, 2)
	assert.Equal(t, "Ada", msg.Entries[0].Name)
}

func TestHubReplaysLastBoardToLateJoiners(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	hub.BroadcastLeaderboard([]domain.LeaderboardEntry{{Name: "Ada", HighScore: 50}})

	conn := dial(t, srv)
	msg := readMsg(t, conn)
	assert.Equal(t, "leaderboard", msg.Type)
	require.Len(t, msg.Entries, 1)
	assert.Equal(t, 50, msg.Entries[0].HighScore)
}

func TestHubSurvivesDisconnectedClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	gone := dial(t, srv)
	gone.Close()

	stay := dial(t, srv)

	// Give the hub a moment to reap the closed connection, then broadcast.
	time.Sleep(50 * time.Millisecond)
	hub.BroadcastLeaderboard([]domain.LeaderboardEntry{{Name: "Ada", HighScore: 10}})

	msg := readMsg(t, stay)
	assert.Equal(t, "leaderboard", msg.Type)
}
