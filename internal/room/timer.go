package room

import (
	"math"
	"time"
)

// SecondsUntil converts an absolute epoch-seconds deadline into a whole
// number of remaining seconds, rounding up and flooring at zero. It bridges
// the gap between round_start and the first server tick and absorbs clock
// skew in the direction of never showing a negative countdown.
func SecondsUntil(deadline float64, now time.Time) int {
	remaining := deadline - float64(now.UnixMilli())/1000.0
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining))
}
