package roomclient

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanutb/ManhwaQuiz/internal/protocol"
	"github.com/tanutb/ManhwaQuiz/internal/room"
)

const (
	waitFor = 3 * time.Second
	tick    = 10 * time.Millisecond

	testDelay = 100 * time.Millisecond
)

// quizServer is a scriptable stand-in for the authoritative server.
type quizServer struct {
	t        *testing.T
	srv      *httptest.Server
	upgrader websocket.Upgrader
	conns    chan *serverConn
	dials    atomic.Int32
}

type serverConn struct {
	conn     *websocket.Conn
	query    url.Values
	commands chan protocol.Command
}

func startQuizServer(t *testing.T) *quizServer {
	t.Helper()
	qs := &quizServer{t: t, conns: make(chan *serverConn, 8)}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := qs.upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade failed: %v", err)
			return
		}
		qs.dials.Add(1)
		sc := &serverConn{
			conn:     conn,
			query:    r.URL.Query(),
			commands: make(chan protocol.Command, 8),
		}
		go sc.readCommands()
		qs.conns <- sc
	})

	qs.srv = httptest.NewServer(mux)
	t.Cleanup(qs.srv.Close)
	return qs
}

func (qs *quizServer) url() string {
	return "ws" + qs.srv.URL[len("http"):]
}

// accept waits for the next client connection.
func (qs *quizServer) accept(t *testing.T) *serverConn {
	t.Helper()
	select {
	case sc := <-qs.conns:
		return sc
	case <-time.After(waitFor):
		t.Fatal("no connection arrived")
		return nil
	}
}

func (sc *serverConn) readCommands() {
	for {
		var cmd protocol.Command
		if err := sc.conn.ReadJSON(&cmd); err != nil {
			close(sc.commands)
			return
		}
		sc.commands <- cmd
	}
}

func (sc *serverConn) send(t *testing.T, ev protocol.Event) {
	t.Helper()
	require.NoError(t, sc.conn.WriteJSON(ev))
}

func (sc *serverConn) sendRaw(t *testing.T, data string) {
	t.Helper()
	require.NoError(t, sc.conn.WriteMessage(websocket.TextMessage, []byte(data)))
}

func testConfig(qs *quizServer) Config {
	return Config{
		WSBaseURL:      qs.url(),
		RoomCode:       "abcd", // lower case on purpose; client normalizes
		PlayerName:     "Ana",
		PlayerID:       "p_test",
		OwnerID:        "o_test",
		ReconnectDelay: testDelay,
	}
}

func lobbyState() *protocol.RoomState {
	return &protocol.RoomState{
		RoomCode: "ABCD",
		OwnerID:  "o_test",
		Phase:    protocol.PhaseLobby,
		Players:  []protocol.Player{{ID: "p_test", Name: "Ana"}},
	}
}

func TestClient_ConnectAndJoin(t *testing.T) {
	qs := startQuizServer(t)

	updates := make(chan room.View, 8)
	cfg := testConfig(qs)
	cfg.OnUpdate = func(v room.View) { updates <- v }

	client, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	assert.Equal(t, StatusConnecting, client.Status())
	require.NoError(t, client.Connect())

	sc := qs.accept(t)
	assert.Equal(t, "ABCD", sc.query.Get("room_code"), "code travels upper-cased")
	assert.Equal(t, "Ana", sc.query.Get("player_name"))
	assert.Equal(t, "p_test", sc.query.Get("player_id"))
	assert.Equal(t, "o_test", sc.query.Get("owner_id"))
	assert.Equal(t, StatusConnected, client.Status())

	sc.send(t, protocol.Event{
		Event:    protocol.EventJoined,
		PlayerID: "p_test",
		OwnerID:  "o_test",
		State:    lobbyState(),
	})

	select {
	case v := <-updates:
		require.NotNil(t, v.State)
		assert.Equal(t, "ABCD", v.State.RoomCode)
		assert.Equal(t, "p_test", v.PlayerID)
		assert.True(t, v.IsOwner("o_test"))
	case <-time.After(waitFor):
		t.Fatal("no view update after joined")
	}

	snap := client.Snapshot()
	assert.Equal(t, "p_test", snap.PlayerID)
}

func TestClient_ConnectIsIdempotent(t *testing.T) {
	qs := startQuizServer(t)

	client, err := New(testConfig(qs))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.Connect())
	qs.accept(t)
	require.NoError(t, client.Connect())
	require.NoError(t, client.Reconnect())

	time.Sleep(3 * testDelay)
	assert.Equal(t, int32(1), qs.dials.Load(), "repeat calls must not open new connections")
}

func TestClient_ReconnectsOnceAfterUnexpectedClose(t *testing.T) {
	qs := startQuizServer(t)

	client, err := New(testConfig(qs))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.Connect())
	sc := qs.accept(t)

	closedAt := time.Now()
	sc.conn.Close()

	require.Eventually(t, func() bool {
		return client.Status() == StatusReconnecting
	}, waitFor, tick)

	// Exactly one reconnect fires, no sooner than the backoff delay.
	qs.accept(t)
	assert.GreaterOrEqual(t, time.Since(closedAt), testDelay)

	require.Eventually(t, func() bool {
		return client.Status() == StatusConnected
	}, waitFor, tick)

	time.Sleep(3 * testDelay)
	assert.Equal(t, int32(2), qs.dials.Load(), "reconnect attempts must not stack")
}

func TestClient_FatalErrorSuppressesReconnect(t *testing.T) {
	qs := startQuizServer(t)

	fatals := make(chan string, 1)
	cfg := testConfig(qs)
	cfg.OnFatal = func(message string) { fatals <- message }

	client, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.Connect())
	sc := qs.accept(t)

	sc.send(t, protocol.Event{Event: protocol.EventError, Message: protocol.ErrMsgRoomNotFound})

	select {
	case msg := <-fatals:
		assert.Equal(t, protocol.ErrMsgRoomNotFound, msg)
	case <-time.After(waitFor):
		t.Fatal("fatal callback never fired")
	}
	assert.Equal(t, StatusDisconnected, client.Status())

	// The server drops the connection after a fatal error; the client must
	// not come back.
	sc.conn.Close()
	time.Sleep(3 * testDelay)
	assert.Equal(t, StatusDisconnected, client.Status())
	assert.Equal(t, int32(1), qs.dials.Load())

	assert.ErrorIs(t, client.Connect(), ErrSessionClosed)
}

func TestClient_NonFatalErrorKeepsStatus(t *testing.T) {
	qs := startQuizServer(t)

	client, err := New(testConfig(qs))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.Connect())
	sc := qs.accept(t)

	sc.send(t, protocol.Event{Event: protocol.EventError, Message: "room_full"})
	sc.send(t, protocol.Event{Event: protocol.EventRoomState, State: lobbyState()})

	require.Eventually(t, func() bool {
		return client.Snapshot().State != nil
	}, waitFor, tick)
	assert.Equal(t, StatusConnected, client.Status())
}

func TestClient_CloseCancelsPendingReconnect(t *testing.T) {
	qs := startQuizServer(t)

	client, err := New(testConfig(qs))
	require.NoError(t, err)

	require.NoError(t, client.Connect())
	sc := qs.accept(t)
	sc.conn.Close()

	require.Eventually(t, func() bool {
		return client.Status() == StatusReconnecting
	}, waitFor, tick)

	client.Close()
	time.Sleep(3 * testDelay)

	assert.Equal(t, StatusDisconnected, client.Status())
	assert.Equal(t, int32(1), qs.dials.Load(), "teardown must cancel the reconnect timer")
}

func TestClient_MalformedFramesAreDropped(t *testing.T) {
	qs := startQuizServer(t)

	client, err := New(testConfig(qs))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.Connect())
	sc := qs.accept(t)

	sc.sendRaw(t, `{{{not json`)
	sc.sendRaw(t, `{"no_event_tag":true}`)
	sc.send(t, protocol.Event{Event: protocol.EventRoomState, State: lobbyState()})

	require.Eventually(t, func() bool {
		return client.Snapshot().State != nil
	}, waitFor, tick)
	assert.Equal(t, StatusConnected, client.Status(), "malformed payloads are not fatal")
}

func TestClient_SendsCommands(t *testing.T) {
	qs := startQuizServer(t)

	client, err := New(testConfig(qs))
	require.NoError(t, err)
	t.Cleanup(client.Close)

	assert.ErrorIs(t, client.SubmitAnswer("early"), ErrNotConnected)

	require.NoError(t, client.Connect())
	sc := qs.accept(t)

	require.NoError(t, client.StartGame())
	require.NoError(t, client.SubmitAnswer("solo leveling"))
	require.NoError(t, client.SubmitAnswer("solo leveling s2"), "resubmission within a round is allowed")

	want := []protocol.Command{
		{Type: protocol.CommandStartGame},
		{Type: protocol.CommandSubmitAnswer, Answer: "solo leveling"},
		{Type: protocol.CommandSubmitAnswer, Answer: "solo leveling s2"},
	}
	for _, w := range want {
		select {
		case got := <-sc.commands:
			assert.Equal(t, w, got)
		case <-time.After(waitFor):
			t.Fatalf("command %q never arrived", w.Type)
		}
	}
}

func TestClient_RoundFlow(t *testing.T) {
	qs := startQuizServer(t)

	updates := make(chan room.View, 32)
	cfg := testConfig(qs)
	cfg.OnUpdate = func(v room.View) { updates <- v }

	client, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.Connect())
	sc := qs.accept(t)

	playing := lobbyState()
	playing.Phase = protocol.PhasePlaying
	playing.RoundIndex = 2
	playing.RoundsTotal = 10
	playing.CurrentQuestion = &protocol.Question{MangaID: "m1", Title: "X", CoverFilename: "c.jpg"}
	playing.RoundEndsAt = float64(time.Now().Unix()) + 20

	sc.send(t, protocol.Event{Event: protocol.EventJoined, PlayerID: "p_test", OwnerID: "o_test", State: lobbyState()})
	sc.send(t, protocol.Event{Event: protocol.EventRoundStart, State: playing})
	sc.send(t, protocol.Event{Event: protocol.EventTick, SecondsLeft: 5})

	require.Eventually(t, func() bool {
		return client.Snapshot().SecondsLeft == 5
	}, waitFor, tick)

	result := protocol.RoundResult{
		CorrectTitle: "X",
		Scores:       []protocol.PlayerScore{{PlayerID: "p_test", Name: "Ana", Score: 100}},
		Answers:      map[string]string{"p_test": "x"},
	}
	sc.send(t, protocol.Event{Event: protocol.EventRoundEnd, Result: &result})

	require.Eventually(t, func() bool {
		v := client.Snapshot()
		return v.BetweenRounds && v.SecondsLeft == 0
	}, waitFor, tick)

	v := client.Snapshot()
	require.NotNil(t, v.LastResult)
	assert.Equal(t, result, *v.LastResult)
	require.Len(t, v.State.Results, 1)
	assert.Equal(t, result, v.State.Results[0])
}

func TestClient_AnswerReceivedCallback(t *testing.T) {
	qs := startQuizServer(t)

	acks := make(chan struct{}, 1)
	cfg := testConfig(qs)
	cfg.OnAnswerReceived = func() { acks <- struct{}{} }

	client, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	require.NoError(t, client.Connect())
	sc := qs.accept(t)
	sc.send(t, protocol.Event{Event: protocol.EventAnswerReceived})

	select {
	case <-acks:
	case <-time.After(waitFor):
		t.Fatal("acknowledgement callback never fired")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty room code", func(c *Config) { c.RoomCode = "  " }},
		{"non-alphanumeric room code", func(c *Config) { c.RoomCode = "AB-CD" }},
		{"empty player name", func(c *Config) { c.PlayerName = " " }},
		{"empty base URL", func(c *Config) { c.WSBaseURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				WSBaseURL:  "ws://localhost:8000",
				RoomCode:   "ABCD",
				PlayerName: "Ana",
			}
			tt.mutate(&cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}
