package recipe

import "time"

// HistoryEntry is the immutable audit record of one successful generation
// run: the input parameters, the ranked snapshot the model saw, and the full
// markdown it returned. Entries are only ever appended.
type HistoryEntry struct {
	ID             uint
	CreatedAt      time.Time
	Dietary        string
	TimeLimit      int
	Servings       int
	Cuisine        string
	NumOptions     int
	RankedSnapshot string
	ResultMarkdown string
}
