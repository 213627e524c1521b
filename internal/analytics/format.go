package analytics

import (
	"fmt"
	"math"
	"strconv"
)

// FormatMagnitude renders a KPI magnitude as a compact display string:
// millions with an M suffix, thousands with a K suffix, smaller values as a
// grouped integer. Intended for non-negative magnitudes; negative input is a
// documented limitation and falls through to the integer branch.
func FormatMagnitude(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return groupThousands(int64(math.Round(v)))
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
