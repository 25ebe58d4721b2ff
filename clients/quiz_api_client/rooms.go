package quiz_api_client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{4,8}$`)

// CreateRoomRequest configures a new room. Zero values fall back to server
// defaults; the server clamps out-of-range numbers by rejecting the request,
// so the documented bounds are worth respecting.
type CreateRoomRequest struct {
	RoomCode           string   `json:"room_code,omitempty"`
	RoundsTotal        int      `json:"rounds_total,omitempty"`        // 3-30, default 10
	SecondsPerRound    int      `json:"seconds_per_round,omitempty"`   // 10-90, default 20
	PointsExact        int      `json:"points_exact,omitempty"`        // default 100
	PointsFuzzy        int      `json:"points_fuzzy,omitempty"`        // default 50
	MaxPlayers         int      `json:"max_players,omitempty"`         // 2-20, default 8
	SuggestionsEnabled *bool    `json:"suggestions_enabled,omitempty"` // default true
	Difficulty         string   `json:"difficulty,omitempty"`          // easy|medium|hard
	Genres             []string `json:"genres,omitempty"`
}

// CreateRoomResponse is the success shape; error responses instead carry the
// Error/Message pair with a 200 status, which CreateRoom surfaces as an error.
type CreateRoomResponse struct {
	RoomCode string `json:"room_code"`
	OwnerID  string `json:"owner_id"`
	Error    string `json:"error"`
	Message  string `json:"message"`
}

type roomExistsResponse struct {
	Exists bool `json:"exists"`
}

// NormalizeRoomCode trims and upper-cases a room code. It returns an error
// when the result is not 4-8 alphanumerics, matching the server's rule, so
// bad codes are caught before any network call.
func NormalizeRoomCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", fmt.Errorf("room code is empty")
	}
	if !roomCodePattern.MatchString(code) {
		return "", fmt.Errorf("room code must be 4-8 letters/numbers: %q", raw)
	}
	return code, nil
}

// CreateRoom creates a new room and returns its code and the owner
// credential. Unlike the read endpoints, every failure here is surfaced with
// a descriptive error: the caller has nothing to render without a room.
func (c *QuizApiClient) CreateRoom(req CreateRoomRequest) (*CreateRoomResponse, error) {
	if req.RoomCode != "" {
		code, err := NormalizeRoomCode(req.RoomCode)
		if err != nil {
			return nil, err
		}
		req.RoomCode = code
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal create room request: %w", err)
	}

	body, status, err := c.Post(RoomsEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("create room returned status %d: %s", status, string(body))
	}

	var resp CreateRoomResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal create room response: %w", err)
	}
	if resp.Error != "" {
		if resp.Message != "" {
			return nil, fmt.Errorf("create room rejected: %s", resp.Message)
		}
		return nil, fmt.Errorf("create room rejected: %s", resp.Error)
	}
	if resp.RoomCode == "" || resp.OwnerID == "" {
		return nil, fmt.Errorf("create room response missing room_code or owner_id")
	}
	return &resp, nil
}

// RoomExists checks whether a room with the given code is live. Any
// non-success response means the room cannot be joined, so it maps to false.
func (c *QuizApiClient) RoomExists(roomCode string) bool {
	code, err := NormalizeRoomCode(roomCode)
	if err != nil {
		return false
	}

	body, status, err := c.Get(RoomsEndpoint + "/" + url.PathEscape(code))
	if err != nil || status != http.StatusOK {
		return false
	}

	var resp roomExistsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false
	}
	return resp.Exists
}

// Healthy reports whether the server answers its liveness probe.
func (c *QuizApiClient) Healthy() bool {
	_, status, err := c.Get(HealthEndpoint)
	return err == nil && status == http.StatusOK
}
