package quiz_api_client

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

type genresResponse struct {
	Genres []string `json:"genres"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Genres lists the genres available for room filtering. Failures map to an
// empty list; a lobby without genre chips beats a broken lobby.
func (c *QuizApiClient) Genres() []string {
	body, status, err := c.Get(GenresEndpoint)
	if err != nil || status != http.StatusOK {
		return nil
	}

	var resp genresResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}
	return resp.Genres
}

// Suggest returns up to limit title completions for the prefix q. When
// roomCode is non-empty the server scopes suggestions to that room's
// configured genre and difficulty. Any failure maps to no suggestions.
func (c *QuizApiClient) Suggest(q string, limit int, roomCode string) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if limit > MaxSuggestLimit {
		limit = MaxSuggestLimit
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(limit))
	if roomCode != "" {
		params.Set("room_code", roomCode)
	}

	body, status, err := c.Get(SuggestEndpoint + "?" + params.Encode())
	if err != nil || status != http.StatusOK {
		return nil
	}

	var resp suggestResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil
	}
	return resp.Suggestions
}
