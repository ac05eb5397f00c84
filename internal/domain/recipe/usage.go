// Package recipe holds the recipe-generation domain: the parameters of a
// run, the usage records extracted from model output, and the history entry
// persisted for each successful run.
package recipe

// UsageItem is one pantry deduction requested by a generated recipe.
type UsageItem struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// RecipeUsage is the per-recipe usage statement from the model's usage_json
// block: a title plus the pantry items the recipe consumes.
type RecipeUsage struct {
	Title string      `json:"title"`
	Items []UsageItem `json:"items"`
}

// UsageUpdate reports one applied deduction.
type UsageUpdate struct {
	Name   string
	OldQty float64
	NewQty float64
}

// UsageResult summarizes an apply-usage pass: rows that were decremented and
// names that had no pantry match. Partial success is the norm.
type UsageResult struct {
	Updated []UsageUpdate
	Missing []string
}
