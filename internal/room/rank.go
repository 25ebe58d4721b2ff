package room

import (
	"sort"

	"github.com/tanutb/ManhwaQuiz/internal/protocol"
)

// RankScores returns a copy of the scoreboard sorted by descending score.
// The server's order is preserved for ties, so rejoining players keep a
// stable position on equal scores.
func RankScores(scores []protocol.PlayerScore) []protocol.PlayerScore {
	ranked := append([]protocol.PlayerScore(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
