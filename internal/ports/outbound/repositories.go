// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
)

// IngredientRepository defines the interface for pantry persistence
type IngredientRepository interface {
	// List returns every pantry row ordered by name.
	List(ctx context.Context) ([]pantry.Ingredient, error)
	FindByName(ctx context.Context, name string) (*pantry.Ingredient, error)

	// Upsert merges by name, overwriting every other field.
	Upsert(ctx context.Context, ing *pantry.Ingredient) error
	UpsertBatch(ctx context.Context, ings []pantry.Ingredient) error
	Delete(ctx context.Context, id uint) error

	// ApplyUsage decrements matching rows inside one transaction. Unknown
	// names are reported, not fatal.
	ApplyUsage(ctx context.Context, items []recipe.UsageItem) (*recipe.UsageResult, error)
}

// HistoryRepository defines the interface for the append-only generation log
type HistoryRepository interface {
	Save(ctx context.Context, entry *recipe.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]recipe.HistoryEntry, error)
	FindByID(ctx context.Context, id uint) (*recipe.HistoryEntry, error)
}

// AIService defines the interface for the model boundary
type AIService interface {
	// Chat sends one system+user prompt pair and returns the raw markdown
	// reply. The call blocks until the model answers, the context is
	// canceled, or the client's timeout fires.
	Chat(ctx context.Context, systemPrompt, userPrompt string, opts AIOptions) (string, error)
	HealthCheck(ctx context.Context) error
}

// AIOptions tunes one chat request
type AIOptions struct {
	Model       string
	Temperature float64
	NumPredict  int
}
