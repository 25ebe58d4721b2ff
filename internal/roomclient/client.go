package roomclient

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/tanutb/ManhwaQuiz/internal/protocol"
	"github.com/tanutb/ManhwaQuiz/internal/room"
)

var (
	// ErrSessionClosed is returned once Close has been called or a fatal
	// server error ended the session.
	ErrSessionClosed = errors.New("roomclient: session closed")

	// ErrNotConnected is returned when a command is sent while no
	// connection is open.
	ErrNotConnected = errors.New("roomclient: not connected")
)

// Client owns the single live connection to a room and keeps a local view of
// its state synchronized with the server. All state transitions happen on
// the connection's event-processing goroutine; other goroutines observe the
// client through snapshot accessors.
type Client struct {
	cfg    Config
	clock  clockwork.Clock
	dialer *websocket.Dialer

	mu             sync.Mutex
	status         Status
	active         bool
	fatal          bool
	dialing        bool
	conn           *websocket.Conn
	gen            uint64
	reconnectTimer clockwork.Timer
	view           room.View

	writeMu sync.Mutex
}

// New validates the configuration and returns a client in the connecting
// state. No network activity happens until Connect.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:   cfg,
		clock: cfg.Clock,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		status: StatusConnecting,
		active: true,
	}, nil
}

// Connect establishes the connection. It is idempotent: calling it while an
// attempt is in progress or a connection is open is a no-op, so manual
// retries and the automatic reconnect path can never stack connections.
func (c *Client) Connect() error {
	c.mu.Lock()
	if !c.active || c.fatal {
		c.mu.Unlock()
		return ErrSessionClosed
	}
	if c.dialing || c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.dialing = true
	if c.status != StatusConnected {
		c.status = StatusConnecting
	}
	target := c.wsURL()
	c.mu.Unlock()

	log.Debug().Str("room_code", c.cfg.RoomCode).Str("url", target).Msg("dialing room")

	conn, _, err := c.dialer.Dial(target, nil)

	c.mu.Lock()
	c.dialing = false
	if err != nil {
		log.Warn().Err(err).Str("room_code", c.cfg.RoomCode).Msg("dial failed")
		if c.active && !c.fatal {
			c.status = StatusReconnecting
			c.scheduleReconnectLocked()
		}
		c.mu.Unlock()
		return nil
	}
	if !c.active {
		// Torn down while the handshake was in flight.
		c.mu.Unlock()
		conn.Close()
		return ErrSessionClosed
	}
	c.conn = conn
	c.gen++
	gen := c.gen
	c.status = StatusConnected
	c.mu.Unlock()

	log.Info().Str("room_code", c.cfg.RoomCode).Msg("connected to room")

	go c.readPump(conn, gen)
	return nil
}

// Reconnect is the manual retry entry point. It behaves exactly like the
// automatic path.
func (c *Client) Reconnect() error {
	return c.Connect()
}

// Close permanently tears the session down: it cancels any pending reconnect
// timer and closes the connection without re-entering the reconnect loop.
func (c *Client) Close() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	c.active = false
	c.status = StatusDisconnected
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	conn := c.conn
	c.conn = nil
	c.gen++
	c.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
	log.Info().Str("room_code", c.cfg.RoomCode).Msg("room session closed")
}

// Status returns the current connection lifecycle state.
func (c *Client) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Snapshot returns a copy of the current view.
func (c *Client) Snapshot() room.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// StartGame asks the server to begin the quiz. The server only honors it
// from the room owner.
func (c *Client) StartGame() error {
	return c.send(protocol.StartGame())
}

// SubmitAnswer submits a title guess for the current round. Resubmitting
// replaces the previous guess server-side.
func (c *Client) SubmitAnswer(answer string) error {
	return c.send(protocol.SubmitAnswer(answer))
}

func (c *Client) send(cmd protocol.Command) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteJSON(cmd); err != nil {
		// The read pump observes the closure and drives reconnection;
		// a write error never changes status by itself.
		log.Warn().Err(err).Str("command", string(cmd.Type)).Msg("failed to send command")
		return err
	}
	return nil
}

// readPump processes inbound frames in transport order until the connection
// closes, then hands off to the closure path.
func (c *Client) readPump(conn *websocket.Conn, gen uint64) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("room_code", c.cfg.RoomCode).Msg("connection closed")
			}
			break
		}

		ev, err := protocol.DecodeEvent(data)
		if err != nil {
			// Malformed payloads are dropped without touching status.
			log.Debug().Err(err).Msg("dropping malformed event")
			continue
		}
		c.dispatch(ev, gen)
	}
	c.handleClosed(conn, gen)
}

// dispatch applies one decoded event. Events from a superseded connection
// generation, or arriving after teardown, are dropped.
func (c *Client) dispatch(ev protocol.Event, gen uint64) {
	c.mu.Lock()
	if !c.active || gen != c.gen {
		c.mu.Unlock()
		return
	}

	switch ev.Event {
	case protocol.EventError:
		if protocol.IsFatal(ev.Message) {
			c.fatal = true
			c.status = StatusDisconnected
			if c.reconnectTimer != nil {
				c.reconnectTimer.Stop()
				c.reconnectTimer = nil
			}
			c.mu.Unlock()
			log.Error().Str("room_code", c.cfg.RoomCode).Str("message", ev.Message).Msg("fatal room error")
			if c.cfg.OnFatal != nil {
				c.cfg.OnFatal(ev.Message)
			}
			return
		}
		c.mu.Unlock()
		// Advisory errors are logged and otherwise ignored; they never
		// change connection status.
		log.Warn().Str("room_code", c.cfg.RoomCode).Str("message", ev.Message).Msg("room error")
		return

	case protocol.EventAnswerReceived:
		c.mu.Unlock()
		if c.cfg.OnAnswerReceived != nil {
			c.cfg.OnAnswerReceived()
		}
		return

	default:
		c.view = room.Apply(c.view, ev, c.clock.Now())
		snapshot := c.view
		c.mu.Unlock()
		if c.cfg.OnUpdate != nil {
			c.cfg.OnUpdate(snapshot)
		}
	}
}

// handleClosed runs when a connection's read pump exits. Unless the session
// was deactivated or fatally rejected, it schedules exactly one reconnect.
func (c *Client) handleClosed(conn *websocket.Conn, gen uint64) {
	conn.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == conn {
		c.conn = nil
	}
	if !c.active || c.fatal || gen != c.gen {
		return
	}
	c.status = StatusReconnecting
	c.scheduleReconnectLocked()
}

// scheduleReconnectLocked arms the reconnect timer if none is pending.
// Callers hold c.mu. The single timer slot guarantees reconnects never
// stack no matter how many closures race.
func (c *Client) scheduleReconnectLocked() {
	if c.reconnectTimer != nil {
		return
	}
	log.Info().
		Str("room_code", c.cfg.RoomCode).
		Dur("delay", c.cfg.ReconnectDelay).
		Msg("scheduling reconnect")
	c.reconnectTimer = c.clock.AfterFunc(c.cfg.ReconnectDelay, func() {
		c.mu.Lock()
		c.reconnectTimer = nil
		if !c.active || c.fatal {
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
		c.Connect()
	})
}

// wsURL builds the join URL. Identity and room parameters travel in the
// query string; no payload is sent on open.
func (c *Client) wsURL() string {
	base := c.cfg.WSBaseURL
	if strings.HasPrefix(base, "http") {
		base = "ws" + strings.TrimPrefix(base, "http")
	}

	params := url.Values{}
	params.Set("room_code", c.cfg.RoomCode)
	params.Set("player_name", c.cfg.PlayerName)
	if c.cfg.PlayerID != "" {
		params.Set("player_id", c.cfg.PlayerID)
	}
	if c.cfg.OwnerID != "" {
		params.Set("owner_id", c.cfg.OwnerID)
	}
	return strings.TrimSuffix(base, "/") + "/ws?" + params.Encode()
}
