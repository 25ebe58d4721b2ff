package room

import (
	"github.com/tanutb/ManhwaQuiz/internal/protocol"
)

// View is everything a presentation layer needs to render a room: the latest
// authoritative state snapshot plus flags derived from the event stream.
// Views are values; Apply never mutates its input.
type View struct {
	// State is the server's last wholesale snapshot, nil before join.
	State *protocol.RoomState

	// PlayerID and OwnerID as reported by the server on join.
	PlayerID string
	OwnerID  string

	// SecondsLeft is the displayed countdown for the current round.
	SecondsLeft int

	// BetweenRounds is true from round_end until the next round_start.
	BetweenRounds bool

	// LastResult is the most recent round's result, cleared on round_start.
	LastResult *protocol.RoundResult

	// FinalScores is non-nil only after game_over.
	FinalScores []protocol.PlayerScore
}

// IsOwner reports whether the locally supplied owner credential matches the
// owner the server announced. An owner id from a stale or foreign room never
// grants ownership.
func (v View) IsOwner(ownerID string) bool {
	return ownerID != "" && ownerID == v.OwnerID
}

// HasAnswered reports whether the given player has an answer recorded for the
// current round.
func (v View) HasAnswered(playerID string) bool {
	if v.State == nil {
		return false
	}
	for _, id := range v.State.AnsweredPlayers {
		if id == playerID {
			return true
		}
	}
	return false
}
