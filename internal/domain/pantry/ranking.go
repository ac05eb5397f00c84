package pantry

import (
	"math"
	"sort"
	"strings"
	"time"
)

// NeverExpires is the days-left sentinel for rows with no usable expiry date.
const NeverExpires = 9999.0

// minDays floors the priority divisor so items expiring today or earlier all
// share the same maximal score instead of diverging toward infinity.
const minDays = 0.25

// perishables get a flat priority boost.
var perishables = map[string]bool{
	"dairy":     true,
	"protein":   true,
	"veg":       true,
	"vegetable": true,
	"fruit":     true,
}

// RankOptions carries the dietary filters applied during ranking. A zero Now
// means time.Now.
type RankOptions struct {
	Now           time.Time
	SelectedDiet  DietTag
	ExcludeNonVeg bool
	ExcludeEggs   bool
	ExcludeDairy  bool
}

// RankedIngredient is an Ingredient plus the two derived ranking fields.
// Ephemeral: recomputed on every pass, never persisted.
type RankedIngredient struct {
	Ingredient
	DaysLeft float64
	Priority float64
}

// DaysLeft returns fractional days until expiry, or NeverExpires when no
// expiry is set.
func DaysLeft(expiresOn *time.Time, now time.Time) float64 {
	if expiresOn == nil {
		return NeverExpires
	}
	return expiresOn.Sub(now).Hours() / 24
}

// Rank scores every ingredient by expiry urgency and the dietary filters,
// then orders by descending priority with ties broken by ascending name.
// The result is a deterministic total order; nothing here can fail.
func Rank(items []Ingredient, opts RankOptions) []RankedIngredient {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	ranked := make([]RankedIngredient, 0, len(items))
	for _, it := range items {
		days := DaysLeft(it.ExpiresOn, now)
		prio := 1.0 / math.Max(days, minDays)

		cat := strings.ToLower(string(it.Category))
		if perishables[cat] {
			prio *= 1.2
		}

		diet := strings.ToLower(string(it.DietTag))
		if diet == "" {
			diet = string(DietTagUnknown)
		}
		if opts.ExcludeNonVeg && diet == string(DietTagNonVeg) {
			prio *= 0.15
		}
		if opts.ExcludeEggs && diet == string(DietTagEggsOK) {
			prio *= 0.4
		}
		if opts.ExcludeDairy && cat == string(CategoryDairy) {
			prio *= 0.4
		}
		if opts.SelectedDiet == DietTagVegan && cat == string(CategoryDairy) {
			prio *= 0.4
		}

		ranked = append(ranked, RankedIngredient{Ingredient: it, DaysLeft: days, Priority: prio})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Priority != ranked[j].Priority {
			return ranked[i].Priority > ranked[j].Priority
		}
		return ranked[i].Name < ranked[j].Name
	})

	return ranked
}
