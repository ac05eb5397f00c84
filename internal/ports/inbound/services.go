// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
)

// PantryService defines the use cases for managing pantry contents
type PantryService interface {
	// Queries
	List(ctx context.Context) ([]pantry.Ingredient, error)
	ListRanked(ctx context.Context, opts pantry.RankOptions) ([]pantry.RankedIngredient, error)

	// Commands
	Upsert(ctx context.Context, cmd UpsertIngredientCommand) (*pantry.Ingredient, error)
	BulkAdd(ctx context.Context, cmd BulkAddCommand) (*BulkAddResult, error)
	Delete(ctx context.Context, id uint) error
	ApplyUsage(ctx context.Context, items []recipe.UsageItem) (*recipe.UsageResult, error)
}

// RecipeService defines the use cases for recipe generation and its history
type RecipeService interface {
	Generate(ctx context.Context, params recipe.GenerationParams) (*GenerationResult, error)
	History(ctx context.Context, limit int) ([]recipe.HistoryEntry, error)
	HistoryEntry(ctx context.Context, id uint) (*recipe.HistoryEntry, error)
}

// UpsertIngredientCommand contains data for adding or replacing one row
type UpsertIngredientCommand struct {
	Name      string
	Qty       float64
	Unit      string
	Category  pantry.Category
	DietTag   pantry.DietTag
	ExpiresOn string // ISO date, empty for no expiry
}

// BulkAddCommand contains pasted free-text lines plus the fallbacks applied
// to fields the grammar cannot extract
type BulkAddCommand struct {
	Text        string
	DefaultUnit string
	DefaultDays int
}

// BulkAddResult reports which names were written and how many lines the
// grammar rejected
type BulkAddResult struct {
	Added   []string
	Skipped int
}

// GenerationResult is the full outcome of one generation run
type GenerationResult struct {
	RunID      string
	Params     recipe.GenerationParams
	Snapshot   string
	Markdown   string
	Extraction recipe.UsageExtraction
	HistoryID  uint
}
