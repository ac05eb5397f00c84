package recipe

import (
	"fmt"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
)

// systemPrompt frames the model as a pantry-first recipe writer. The
// wording is load-bearing: generation quality drops noticeably when the
// expiry and exclusion lines are reworded.
const systemPrompt = `You are a helpful recipe creator that:
- prioritizes soon-to-expire items,
- maximizes use of the provided pantry,
- defaults to Indian kitchens unless otherwise requested,
- returns 2–3 options with: title, why-it-uses-expiring-items, total time, difficulty,
  ingredients (quantities), step-by-step method, substitutions, and dietary notes.
- do not invent unavailable ingredients unless optional substitutes.`

// userTemplate carries the ranked pantry, the constraints and the
// usage_json contract the extractor depends on.
const userTemplate = `Pantry (expiry-ranked):
%s

User constraints:
- Dietary: %s
- Time limit (minutes): %d
- Servings: %d
- Cuisine: %s
- Exclusions: {
  "non_veg": %t,
  "eggs": %t,
  "dairy": %t
}

Rules:
- STRICTLY avoid ingredients that violate the exclusions/dietary constraints.
- Prefer at least 2 of the top 4 expiring items when possible.
- Use mostly pantry items; mark any non-pantry as OPTIONAL.
- Return clean, readable markdown for each recipe (title, time, ingredients, steps).
- At the END, include a fenced code block with the language tag "usage_json" that contains JSON like:
  [
    {
      "title": "Recipe Title",
      "items": [{"name": "tomato", "qty": 2, "unit": "pcs"}, ...]
    },
    ...
  ]
- In the JSON, normalize "name" to EXACT pantry item names; omit items not from pantry.

Create %d distinct recipes.
`

// BuildSystemPrompt returns the system message for recipe generation
func BuildSystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt renders the user message from the ranked snapshot and
// the generation parameters.
func BuildUserPrompt(snapshot string, params recipe.GenerationParams) string {
	return fmt.Sprintf(userTemplate,
		snapshot,
		params.Dietary,
		params.TimeLimit,
		params.Servings,
		params.Cuisine,
		params.ExcludeNonVeg,
		params.ExcludeEggs,
		params.ExcludeDairy,
		params.NumOptions,
	)
}
