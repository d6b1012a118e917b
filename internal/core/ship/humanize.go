package ship

import (
	"strconv"
	"strings"
)

const (
	msPerDay    = 86_400_000
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1000
)

// Humanize renders a duration in milliseconds as "1d 2h 3m 4s", omitting
// zero components. Anything under a second renders as "".
func Humanize(ms uint64) string {
	units := []struct {
		size   uint64
		suffix string
	}{
		{msPerDay, "d"},
		{msPerHour, "h"},
		{msPerMinute, "m"},
		{msPerSecond, "s"},
	}

	parts := make([]string, 0, len(units))
	for _, u := range units {
		n := ms / u.size
		ms %= u.size
		if n > 0 {
			parts = append(parts, strconv.FormatUint(n, 10)+u.suffix)
		}
	}
	return strings.Join(parts, " ")
}

// AgeMilliseconds returns now - createdAt in milliseconds, clamped at zero.
func AgeMilliseconds(createdAtMs, nowMs int64) uint64 {
	if nowMs <= createdAtMs {
		return 0
	}
	return uint64(nowMs - createdAtMs)
}
