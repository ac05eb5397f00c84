package pantry

import (
	"fmt"
	"strconv"
	"strings"
)

// EmptySnapshot is the placeholder emitted when nothing is ranked.
const EmptySnapshot = "(empty)"

// DefaultSnapshotLimit caps how many rows make it into the prompt context.
const DefaultSnapshotLimit = 14

// Snapshot renders the ranked list as the numbered text block used both as
// LLM context and as the audit record stored with each history entry. The
// output is byte-for-byte reproducible from the same ranked slice and limit.
// A non-positive limit falls back to DefaultSnapshotLimit.
func Snapshot(ranked []RankedIngredient, limit int) string {
	if limit <= 0 {
		limit = DefaultSnapshotLimit
	}

	lines := make([]string, 0, limit)
	for i, it := range ranked {
		if i >= limit {
			break
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s%s | exp ~ %.1fd | prio=%.2f",
			i+1, it.Name, formatQty(it.Qty), it.Unit, it.DaysLeft, it.Priority))
	}

	if len(lines) == 0 {
		return EmptySnapshot
	}
	return strings.Join(lines, "\n")
}

// formatQty trims trailing zeros so counts read naturally (6, not 6.000000).
func formatQty(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}
