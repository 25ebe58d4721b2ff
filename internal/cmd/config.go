package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tanutb/ManhwaQuiz/clients/quiz_api_client"
)

// Settings are room-creation presets loaded from an optional YAML file, so a
// recurring quiz night doesn't re-type its configuration.
type Settings struct {
	RoomCode           string   `yaml:"room_code"`
	RoundsTotal        int      `yaml:"rounds_total"`
	SecondsPerRound    int      `yaml:"seconds_per_round"`
	PointsExact        int      `yaml:"points_exact"`
	PointsFuzzy        int      `yaml:"points_fuzzy"`
	MaxPlayers         int      `yaml:"max_players"`
	SuggestionsEnabled *bool    `yaml:"suggestions_enabled"`
	Difficulty         string   `yaml:"difficulty"`
	Genres             []string `yaml:"genres"`
}

func loadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return &settings, nil
}

func (s *Settings) createRequest() quiz_api_client.CreateRoomRequest {
	if s == nil {
		return quiz_api_client.CreateRoomRequest{}
	}
	return quiz_api_client.CreateRoomRequest{
		RoomCode:           s.RoomCode,
		RoundsTotal:        s.RoundsTotal,
		SecondsPerRound:    s.SecondsPerRound,
		PointsExact:        s.PointsExact,
		PointsFuzzy:        s.PointsFuzzy,
		MaxPlayers:         s.MaxPlayers,
		SuggestionsEnabled: s.SuggestionsEnabled,
		Difficulty:         s.Difficulty,
		Genres:             s.Genres,
	}
}
