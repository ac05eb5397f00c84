package recipe

import (
	"encoding/json"
	"regexp"
)

// ExtractionStatus says why auto-deduction data is or is not available.
type ExtractionStatus string

const (
	// ExtractionFound means the usage_json block parsed cleanly.
	ExtractionFound ExtractionStatus = "found"
	// ExtractionNoBlock means the markdown carried no usage_json block.
	ExtractionNoBlock ExtractionStatus = "no_block"
	// ExtractionInvalidJSON means the block was present but did not parse.
	ExtractionInvalidJSON ExtractionStatus = "invalid_json"
)

// UsageExtraction is the soft-fail result of scanning model output. Recipes
// is empty unless Status is ExtractionFound; callers can always see why.
type UsageExtraction struct {
	Status  ExtractionStatus
	Recipes []RecipeUsage
}

// Found reports whether usable usage data was extracted.
func (e UsageExtraction) Found() bool {
	return e.Status == ExtractionFound && len(e.Recipes) > 0
}

// usageBlockRe matches a fenced code block tagged usage_json, case
// insensitively, capturing its body.
var usageBlockRe = regexp.MustCompile("(?is)```usage_json\\s*(.*?)\\s*```")

// ExtractUsage locates the fenced usage_json block in arbitrary markdown and
// decodes it. Absence of the block and malformed JSON are expected outcomes,
// not errors: auto-deduction is best-effort only.
func ExtractUsage(markdown string) UsageExtraction {
	m := usageBlockRe.FindStringSubmatch(markdown)
	if m == nil {
		return UsageExtraction{Status: ExtractionNoBlock}
	}

	var recipes []RecipeUsage
	if err := json.Unmarshal([]byte(m[1]), &recipes); err != nil {
		return UsageExtraction{Status: ExtractionInvalidJSON}
	}
	return UsageExtraction{Status: ExtractionFound, Recipes: recipes}
}
