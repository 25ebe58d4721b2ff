package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store hands out one stable player identifier per room for the lifetime of
// a session. The server uses the identifier to restore a player's score and
// answered-state when the same session rejoins after a disconnect or reload.
//
// With a path configured, identifiers survive process restarts; without one
// the store is memory-only and identifiers live as long as the process.
type Store struct {
	mu   sync.Mutex
	path string
	ids  map[string]string
}

// NewStore creates a store backed by the JSON file at path, or memory-only
// when path is empty. An unreadable or corrupt file is treated as empty.
func NewStore(path string) *Store {
	s := &Store{path: path, ids: make(map[string]string)}
	if path == "" {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.ids); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("ignoring corrupt identity file")
		s.ids = make(map[string]string)
	}
	return s
}

// PlayerID returns the identifier for the given room, creating and
// persisting a fresh one on first use. The same room code always yields the
// same identifier for the lifetime of the store; codes are normalized to
// upper case before lookup.
func (s *Store) PlayerID(roomCode string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(roomCode))
	if code == "" {
		return "", fmt.Errorf("room code is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.ids[code]; ok {
		return id, nil
	}

	id := newPlayerID()
	s.ids[code] = id
	if err := s.save(); err != nil {
		return "", fmt.Errorf("failed to persist player id: %w", err)
	}
	return id, nil
}

func (s *Store) save() error {
	if s.path == "" {
		return nil
	}
	data, err := json.Marshal(s.ids)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// newPlayerID generates a short random identifier in the same shape the
// server already accepts from existing clients.
func newPlayerID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "p_" + raw[:10]
}
