// Package pantry holds the pantry domain: ingredient records, expiry-based
// ranking, and the text snapshot used as LLM context.
package pantry

import (
	"strings"
	"time"
)

// Ingredient represents one pantry row. Name is the unique key; upserts by
// name overwrite every other field.
type Ingredient struct {
	ID        uint
	Name      string
	Qty       float64
	Unit      string
	Category  Category
	DietTag   DietTag
	ExpiresOn *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if NormalizeName(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Qty < 0 {
		return ErrNegativeQty
	}
	return nil
}

// Normalize folds the name, trims the unit, and fills enum defaults.
// Stored rows always carry the normalized form.
func (i *Ingredient) Normalize() {
	i.Name = NormalizeName(i.Name)
	i.Unit = strings.TrimSpace(i.Unit)
	if i.Category == "" {
		i.Category = CategoryOther
	}
	if i.DietTag == "" {
		i.DietTag = DietTagUnknown
	}
}

// NormalizeName trims and case-folds an ingredient name the way every lookup
// and write does.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DietTag classifies an ingredient for dietary filtering
type DietTag string

const (
	DietTagVeg     DietTag = "veg"
	DietTagNonVeg  DietTag = "non-veg"
	DietTagEggsOK  DietTag = "eggs-ok"
	DietTagVegan   DietTag = "vegan"
	DietTagUnknown DietTag = "unknown"
)

// DietTags lists the accepted tags in UI order.
var DietTags = []DietTag{DietTagVeg, DietTagNonVeg, DietTagEggsOK, DietTagVegan, DietTagUnknown}

// Category is the coarse pantry grouping used by ranking and bulk add
type Category string

const (
	CategoryVeg       Category = "veg"
	CategoryFruit     Category = "fruit"
	CategoryGrain     Category = "grain"
	CategoryDairy     Category = "dairy"
	CategoryProtein   Category = "protein"
	CategoryCondiment Category = "condiment"
	CategoryOther     Category = "other"
)

// Categories lists the selectable categories in UI order.
var Categories = []Category{CategoryVeg, CategoryFruit, CategoryGrain, CategoryDairy, CategoryProtein, CategoryCondiment, CategoryOther}
