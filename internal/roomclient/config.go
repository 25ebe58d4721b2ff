package roomclient

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tanutb/ManhwaQuiz/internal/room"
)

// Config holds everything needed to join and follow one room.
type Config struct {
	// WSBaseURL is the server root, e.g. "ws://localhost:8000". An http
	// or https scheme is accepted and rewritten to ws/wss.
	WSBaseURL string

	// RoomCode identifies the room; normalized to upper case.
	RoomCode string

	// PlayerName is the display name presented to the server.
	PlayerName string

	// PlayerID is the session-stable identity from the identity store.
	// The server uses it to restore score and answered-state on rejoin.
	PlayerID string

	// OwnerID is the owner credential from room creation, empty for
	// regular players. Ownership only takes effect if the server's
	// joined event reports the same id.
	OwnerID string

	// ReconnectDelay is the fixed backoff between an unexpected closure
	// and the next connection attempt.
	ReconnectDelay time.Duration

	// HandshakeTimeout bounds the WebSocket dial.
	HandshakeTimeout time.Duration

	// Clock drives the reconnect timer and the countdown estimate; nil
	// means the real clock.
	Clock clockwork.Clock

	// OnUpdate receives a view snapshot after every state-changing event,
	// called from the event-processing goroutine in arrival order.
	OnUpdate func(room.View)

	// OnAnswerReceived fires when the server acknowledges a submitted
	// answer. No state changes.
	OnAnswerReceived func()

	// OnFatal fires once when a fatal server error permanently ends the
	// session.
	OnFatal func(message string)
}

// DefaultReconnectDelay matches the backoff every deployed client uses.
const DefaultReconnectDelay = 2 * time.Second

// DefaultHandshakeTimeout bounds how long a dial may hang before it is
// treated as a failed attempt.
const DefaultHandshakeTimeout = 5 * time.Second

func (c *Config) validate() error {
	code := strings.ToUpper(strings.TrimSpace(c.RoomCode))
	if code == "" {
		return fmt.Errorf("room code is empty")
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return fmt.Errorf("room code must be alphanumeric: %q", c.RoomCode)
		}
	}
	c.RoomCode = code

	c.PlayerName = strings.TrimSpace(c.PlayerName)
	if c.PlayerName == "" {
		return fmt.Errorf("player name is empty")
	}

	if c.WSBaseURL == "" {
		return fmt.Errorf("websocket base URL is empty")
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = DefaultReconnectDelay
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return nil
}
