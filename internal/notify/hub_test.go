package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brainink/arena/internal/model"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, h *Hub) string {
	t.Helper()
	s := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(s.Close)
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d", n)
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub(zap.NewNop())
	defer h.Close()
	url := newTestServer(t, h)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitClients(t, h, 1)

	h.Broadcast(model.LedgerEvent{
		Type:         model.EventPlayerJoined,
		TournamentID: 3,
		Player:       "0x1111111111111111111111111111111111111111",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Type != model.EventPlayerJoined {
		t.Errorf("type = %s, want PlayerJoined", env.Type)
	}
	if env.Data.TournamentID != 3 {
		t.Errorf("tournamentId = %d, want 3", env.Data.TournamentID)
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	h := NewHub(zap.NewNop())
	defer h.Close()
	url := newTestServer(t, h)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	waitClients(t, h, 1)

	conn.Close()
	waitClients(t, h, 0)

	// Broadcasting into an empty hub is a no-op, not a panic.
	h.Broadcast(model.LedgerEvent{Type: model.EventTournamentEnded, TournamentID: 1})
}

func TestHubCloseIdempotent(t *testing.T) {
	h := NewHub(zap.NewNop())
	h.Close()
	h.Close()
	h.Broadcast(model.LedgerEvent{Type: model.EventTournamentCreated})
}
