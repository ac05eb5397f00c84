// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/brianvoe/gofakeit/v6"
)

// IngredientBuilder provides a fluent interface for building test ingredients
type IngredientBuilder struct {
	id        uint
	name      string
	qty       float64
	unit      string
	category  pantry.Category
	dietTag   pantry.DietTag
	expiresOn *time.Time
}

// NewIngredientBuilder creates a new ingredient builder with default values
func NewIngredientBuilder() *IngredientBuilder {
	return &IngredientBuilder{
		name:     "tomato",
		qty:      4,
		unit:     "pcs",
		category: pantry.CategoryVeg,
		dietTag:  pantry.DietTagVeg,
	}
}

// WithID sets the ingredient ID
func (ib *IngredientBuilder) WithID(id uint) *IngredientBuilder {
	ib.id = id
	return ib
}

// WithName sets the ingredient name
func (ib *IngredientBuilder) WithName(name string) *IngredientBuilder {
	ib.name = name
	return ib
}

// WithQty sets the quantity and unit
func (ib *IngredientBuilder) WithQty(qty float64, unit string) *IngredientBuilder {
	ib.qty = qty
	ib.unit = unit
	return ib
}

// WithCategory sets the category
func (ib *IngredientBuilder) WithCategory(category pantry.Category) *IngredientBuilder {
	ib.category = category
	return ib
}

// WithDietTag sets the diet tag
func (ib *IngredientBuilder) WithDietTag(tag pantry.DietTag) *IngredientBuilder {
	ib.dietTag = tag
	return ib
}

// ExpiringIn sets the expiry date relative to now
func (ib *IngredientBuilder) ExpiringIn(days int) *IngredientBuilder {
	d := time.Now().AddDate(0, 0, days)
	ib.expiresOn = &d
	return ib
}

// WithoutExpiry clears the expiry date
func (ib *IngredientBuilder) WithoutExpiry() *IngredientBuilder {
	ib.expiresOn = nil
	return ib
}

// Build creates the ingredient
func (ib *IngredientBuilder) Build() pantry.Ingredient {
	return pantry.Ingredient{
		ID:        ib.id,
		Name:      ib.name,
		Qty:       ib.qty,
		Unit:      ib.unit,
		Category:  ib.category,
		DietTag:   ib.dietTag,
		ExpiresOn: ib.expiresOn,
	}
}

// IngredientFactory provides methods to create randomized test ingredients
type IngredientFactory struct {
	faker *gofakeit.Faker
}

// NewIngredientFactory creates a new ingredient factory with seeded faker
func NewIngredientFactory(seed int64) *IngredientFactory {
	return &IngredientFactory{
		faker: gofakeit.New(seed),
	}
}

// CreateIngredient creates a single random ingredient
func (f *IngredientFactory) CreateIngredient() pantry.Ingredient {
	categories := []pantry.Category{
		pantry.CategoryVeg,
		pantry.CategoryFruit,
		pantry.CategoryDairy,
		pantry.CategoryProtein,
		pantry.CategoryGrain,
		pantry.CategoryCondiment,
	}
	units := []string{"pcs", "g", "kg", "ml", "l"}

	expires := time.Now().AddDate(0, 0, f.faker.Number(1, 120))
	return pantry.Ingredient{
		Name:      fmt.Sprintf("%s-%d", f.faker.Vegetable(), f.faker.Number(1, 9999)),
		Qty:       float64(f.faker.Number(1, 500)),
		Unit:      units[f.faker.Number(0, len(units)-1)],
		Category:  categories[f.faker.Number(0, len(categories)-1)],
		DietTag:   pantry.DietTagVeg,
		ExpiresOn: &expires,
	}
}

// CreateIngredients creates multiple random ingredients
func (f *IngredientFactory) CreateIngredients(count int) []pantry.Ingredient {
	ingredients := make([]pantry.Ingredient, count)
	for i := range ingredients {
		ingredients[i] = f.CreateIngredient()
	}
	return ingredients
}

// HistoryEntryBuilder provides a fluent interface for building test history entries
type HistoryEntryBuilder struct {
	id       uint
	params   recipe.GenerationParams
	snapshot string
	markdown string
	created  time.Time
}

// NewHistoryEntryBuilder creates a new history entry builder with default values
func NewHistoryEntryBuilder() *HistoryEntryBuilder {
	return &HistoryEntryBuilder{
		params:   recipe.DefaultGenerationParams(),
		snapshot: "1. tomato 4pcs | exp ~ 1.0d | prio=1.20",
		markdown: "### Option 1: Tomato Curry",
		created:  time.Now(),
	}
}

// WithID sets the entry ID
func (hb *HistoryEntryBuilder) WithID(id uint) *HistoryEntryBuilder {
	hb.id = id
	return hb
}

// WithParams sets the generation parameters
func (hb *HistoryEntryBuilder) WithParams(params recipe.GenerationParams) *HistoryEntryBuilder {
	hb.params = params
	return hb
}

// WithSnapshot sets the ranked pantry snapshot
func (hb *HistoryEntryBuilder) WithSnapshot(snapshot string) *HistoryEntryBuilder {
	hb.snapshot = snapshot
	return hb
}

// WithMarkdown sets the result markdown
func (hb *HistoryEntryBuilder) WithMarkdown(markdown string) *HistoryEntryBuilder {
	hb.markdown = markdown
	return hb
}

// CreatedAt sets the creation timestamp
func (hb *HistoryEntryBuilder) CreatedAt(t time.Time) *HistoryEntryBuilder {
	hb.created = t
	return hb
}

// Build creates the history entry
func (hb *HistoryEntryBuilder) Build() recipe.HistoryEntry {
	return recipe.HistoryEntry{
		ID:             hb.id,
		CreatedAt:      hb.created,
		Dietary:        hb.params.Dietary,
		TimeLimit:      hb.params.TimeLimit,
		Servings:       hb.params.Servings,
		Cuisine:        hb.params.Cuisine,
		NumOptions:     hb.params.NumOptions,
		RankedSnapshot: hb.snapshot,
		ResultMarkdown: hb.markdown,
	}
}
