package protocol

// Phase is the stage a room is currently in.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePlaying Phase = "playing"
	PhaseResults Phase = "results"
)

// Difficulty controls which slice of the title pool the server quizzes from.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Player is one participant in a room, ordered by join time in RoomState.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Question is the current round's prompt. The title is only revealed to
// clients through RoundResult, never while the round is live.
type Question struct {
	MangaID       string `json:"manga_id"`
	Title         string `json:"title"`
	CoverFilename string `json:"cover_filename"`
}

// PlayerScore is one row of a scoreboard snapshot.
type PlayerScore struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// RoundResult is the server's immutable summary of a finished round.
// Answers maps player id to the text that player submitted; players who
// never answered are absent from the map.
type RoundResult struct {
	CorrectTitle string            `json:"correct_title"`
	Scores       []PlayerScore     `json:"scores"`
	Answers      map[string]string `json:"answers"`
}

// RoomState is the server's authoritative snapshot of a room. The client
// never mutates one in place; events that change state carry a fresh copy.
type RoomState struct {
	RoomCode           string        `json:"room_code"`
	OwnerID            string        `json:"owner_id"`
	Players            []Player      `json:"players"`
	Phase              Phase         `json:"phase"`
	RoundIndex         int           `json:"round_index"`
	RoundsTotal        int           `json:"rounds_total"`
	SecondsPerRound    int           `json:"seconds_per_round"`
	PointsExact        int           `json:"points_exact"`
	PointsFuzzy        int           `json:"points_fuzzy"`
	MaxPlayers         int           `json:"max_players"`
	SuggestionsEnabled bool          `json:"suggestions_enabled"`
	Difficulty         Difficulty    `json:"difficulty"`
	Genres             []string      `json:"genres"`
	CurrentQuestion    *Question     `json:"current_question"`
	AnsweredPlayers    []string      `json:"answered_players"`
	RoundEndsAt        float64       `json:"round_ends_at"`
	Results            []RoundResult `json:"results"`
}
