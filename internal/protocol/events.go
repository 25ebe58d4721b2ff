package protocol

import (
	"encoding/json"
	"fmt"
)

// EventType tags every inbound server message.
type EventType string

const (
	EventJoined         EventType = "joined"
	EventRoomState      EventType = "room_state"
	EventRoundStart     EventType = "round_start"
	EventTick           EventType = "tick"
	EventAnswerReceived EventType = "answer_received"
	EventRoundEnd       EventType = "round_end"
	EventGameOver       EventType = "game_over"
	EventError          EventType = "error"
)

// Fatal error messages. Anything else carried by an error event is advisory.
const (
	ErrMsgRoomNotFound = "room_not_found"
	ErrMsgJoinFailed   = "join_failed"
)

// Event is the inbound wire envelope. The server sends a flat JSON object
// tagged by the "event" field; only the fields relevant to that event type
// are populated.
type Event struct {
	Event EventType `json:"event"`

	// joined
	PlayerID string `json:"player_id,omitempty"`
	OwnerID  string `json:"owner_id,omitempty"`

	// joined, room_state, round_start
	State *RoomState `json:"state,omitempty"`

	// tick
	SecondsLeft int `json:"seconds_left,omitempty"`

	// round_end
	Result *RoundResult `json:"result,omitempty"`

	// game_over
	Results []RoundResult `json:"results,omitempty"`
	Scores  []PlayerScore `json:"scores,omitempty"`

	// error
	Message string `json:"message,omitempty"`
}

// DecodeEvent parses a raw inbound frame. Unknown event types decode fine and
// are left to the dispatcher to ignore; frames without an event tag are
// rejected so the caller can drop them.
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if ev.Event == "" {
		return Event{}, fmt.Errorf("event missing type tag")
	}
	return ev, nil
}

// IsFatal reports whether an error event's message permanently ends the
// session. Reconnection must not be attempted after a fatal error.
func IsFatal(message string) bool {
	return message == ErrMsgRoomNotFound || message == ErrMsgJoinFailed
}

// ReplacesState reports whether an event carries a wholesale state snapshot
// that supersedes everything the client holds.
func (e Event) ReplacesState() bool {
	switch e.Event {
	case EventJoined, EventRoomState, EventRoundStart:
		return true
	}
	return false
}
