package room

import (
	"time"

	"github.com/tanutb/ManhwaQuiz/internal/protocol"
)

// Apply folds one inbound event into the view and returns the next view.
// It is a pure function: the input view and the event are never mutated, so
// it can be exercised without a live connection.
//
// now is only consulted for round_start, where the countdown is estimated
// from the server deadline until the first authoritative tick arrives.
func Apply(v View, ev protocol.Event, now time.Time) View {
	// A replace-type event without its snapshot is malformed; dropping it
	// beats wiping the state we have.
	if ev.ReplacesState() && ev.State == nil {
		return v
	}

	switch ev.Event {
	case protocol.EventJoined:
		v.PlayerID = ev.PlayerID
		v.OwnerID = ev.OwnerID
		v.State = ev.State
		v.LastResult = nil
		v.FinalScores = nil

	case protocol.EventRoomState:
		v.State = ev.State

	case protocol.EventRoundStart:
		v.BetweenRounds = false
		v.State = ev.State
		v.LastResult = nil
		v.SecondsLeft = SecondsUntil(ev.State.RoundEndsAt, now)

	case protocol.EventTick:
		// Server is authoritative; overwrite whatever estimate we hold.
		v.SecondsLeft = ev.SecondsLeft

	case protocol.EventAnswerReceived:
		// Acknowledgement only; nothing in the view changes.

	case protocol.EventRoundEnd:
		v.BetweenRounds = true
		v.SecondsLeft = 0
		v.LastResult = ev.Result
		if v.State != nil && ev.Result != nil {
			next := *v.State
			next.Results = append(append([]protocol.RoundResult(nil), v.State.Results...), *ev.Result)
			v.State = &next
		}

	case protocol.EventGameOver:
		v.BetweenRounds = false
		v.FinalScores = ev.Scores
		if len(ev.Results) > 0 {
			last := ev.Results[len(ev.Results)-1]
			v.LastResult = &last
		} else {
			v.LastResult = nil
		}
		if v.State != nil {
			next := *v.State
			next.Phase = protocol.PhaseResults
			v.State = &next
		}
	}

	return v
}
