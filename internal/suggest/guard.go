package suggest

import (
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Fetcher looks up title suggestions for a prefix query. The quiz API client
// satisfies this; tests substitute a fake with controllable latency.
type Fetcher interface {
	Suggest(q string, limit int, roomCode string) []string
}

// Config holds tuning for a Guard.
type Config struct {
	// Debounce is the quiet period after the last keystroke before a
	// lookup is issued.
	Debounce time.Duration

	// Limit caps the number of suggestions requested.
	Limit int

	// RoomCode scopes lookups to a room's genre/difficulty when set.
	RoomCode string

	// Enabled mirrors the room's suggestions_enabled flag. When false no
	// lookup ever reaches the network.
	Enabled bool

	// Clock drives the debounce timer; nil means the real clock.
	Clock clockwork.Clock
}

// DefaultConfig returns the tuning used by interactive input.
func DefaultConfig() Config {
	return Config{
		Debounce: 50 * time.Millisecond,
		Limit:    10,
		Enabled:  true,
	}
}

// Guard debounces suggestion lookups and discards stale responses. Each
// issued lookup carries a strictly increasing sequence number; a response is
// applied only if its number still equals the latest issued one when it
// completes. In-flight lookups are never cancelled, just out-raced.
type Guard struct {
	fetch     Fetcher
	onResults func([]string)
	cfg       Config
	clock     clockwork.Clock

	mu    sync.Mutex
	seq   uint64
	timer clockwork.Timer
}

// NewGuard creates a guard that delivers accepted suggestion lists through
// onResults. onResults is never called with a stale response; a cleared
// query delivers nil synchronously.
func NewGuard(fetch Fetcher, onResults func([]string), cfg Config) *Guard {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Guard{
		fetch:     fetch,
		onResults: onResults,
		cfg:       cfg,
		clock:     clock,
	}
}

// Query registers a new input value. Empty or whitespace-only input, or a
// disabled guard, bypasses the network and clears suggestions immediately;
// anything else schedules a lookup after the debounce quiet period,
// replacing any lookup still waiting to fire.
func (g *Guard) Query(q string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}

	if !g.cfg.Enabled || strings.TrimSpace(q) == "" {
		// Invalidate any lookup already in flight so it cannot
		// resurface suggestions after the clear.
		g.seq++
		g.onResults(nil)
		return
	}

	g.timer = g.clock.AfterFunc(g.cfg.Debounce, func() {
		g.issue(q)
	})
}

// Cancel drops any pending or in-flight lookup without delivering results.
func (g *Guard) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.seq++
}

func (g *Guard) issue(q string) {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.mu.Unlock()

	results := g.fetch.Suggest(q, g.cfg.Limit, g.cfg.RoomCode)

	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.seq {
		log.Debug().Str("query", q).Msg("discarding stale suggestion response")
		return
	}
	g.onResults(results)
}
