// Package testutils provides mock implementations for testing
package testutils

import (
	"context"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/inbound"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockIngredientRepository provides a mock implementation of IngredientRepository
type MockIngredientRepository struct {
	mock.Mock
}

// NewMockIngredientRepository creates a new mock ingredient repository
func NewMockIngredientRepository() *MockIngredientRepository {
	return &MockIngredientRepository{}
}

// List returns the configured pantry rows
func (m *MockIngredientRepository) List(ctx context.Context) ([]pantry.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pantry.Ingredient), args.Error(1)
}

// FindByName finds an ingredient by name
func (m *MockIngredientRepository) FindByName(ctx context.Context, name string) (*pantry.Ingredient, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pantry.Ingredient), args.Error(1)
}

// Upsert saves an ingredient
func (m *MockIngredientRepository) Upsert(ctx context.Context, ing *pantry.Ingredient) error {
	args := m.Called(ctx, ing)
	return args.Error(0)
}

// UpsertBatch saves a batch of ingredients
func (m *MockIngredientRepository) UpsertBatch(ctx context.Context, ings []pantry.Ingredient) error {
	args := m.Called(ctx, ings)
	return args.Error(0)
}

// Delete removes an ingredient by ID
func (m *MockIngredientRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ApplyUsage decrements quantities for the given usage items
func (m *MockIngredientRepository) ApplyUsage(ctx context.Context, items []recipe.UsageItem) (*recipe.UsageResult, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.UsageResult), args.Error(1)
}

// MockHistoryRepository provides a mock implementation of HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

// NewMockHistoryRepository creates a new mock history repository
func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

// Save appends a generation run. The mock assigns ID 1 when the entry
// has none, mirroring the auto-increment column.
func (m *MockHistoryRepository) Save(ctx context.Context, entry *recipe.HistoryEntry) error {
	args := m.Called(ctx, entry)
	if args.Error(0) == nil && entry.ID == 0 {
		entry.ID = 1
	}
	return args.Error(0)
}

// Recent returns the configured entries
func (m *MockHistoryRepository) Recent(ctx context.Context, limit int) ([]recipe.HistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.HistoryEntry), args.Error(1)
}

// FindByID finds a run by ID
func (m *MockHistoryRepository) FindByID(ctx context.Context, id uint) (*recipe.HistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.HistoryEntry), args.Error(1)
}

// MockAIService provides a mock implementation of AIService
type MockAIService struct {
	mock.Mock
}

// NewMockAIService creates a new mock AI service
func NewMockAIService() *MockAIService {
	return &MockAIService{}
}

// Chat returns the configured markdown reply
func (m *MockAIService) Chat(ctx context.Context, systemPrompt, userPrompt string, opts outbound.AIOptions) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, opts)
	return args.String(0), args.Error(1)
}

// HealthCheck reports the configured health state
func (m *MockAIService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPantryService provides a mock implementation of the pantry use cases
type MockPantryService struct {
	mock.Mock
}

// NewMockPantryService creates a new mock pantry service
func NewMockPantryService() *MockPantryService {
	return &MockPantryService{}
}

func (m *MockPantryService) List(ctx context.Context) ([]pantry.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pantry.Ingredient), args.Error(1)
}

func (m *MockPantryService) ListRanked(ctx context.Context, opts pantry.RankOptions) ([]pantry.RankedIngredient, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pantry.RankedIngredient), args.Error(1)
}

func (m *MockPantryService) Upsert(ctx context.Context, cmd inbound.UpsertIngredientCommand) (*pantry.Ingredient, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pantry.Ingredient), args.Error(1)
}

func (m *MockPantryService) BulkAdd(ctx context.Context, cmd inbound.BulkAddCommand) (*inbound.BulkAddResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.BulkAddResult), args.Error(1)
}

func (m *MockPantryService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPantryService) ApplyUsage(ctx context.Context, items []recipe.UsageItem) (*recipe.UsageResult, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.UsageResult), args.Error(1)
}

// MockRecipeService provides a mock implementation of the recipe use cases
type MockRecipeService struct {
	mock.Mock
}

// NewMockRecipeService creates a new mock recipe service
func NewMockRecipeService() *MockRecipeService {
	return &MockRecipeService{}
}

func (m *MockRecipeService) Generate(ctx context.Context, params recipe.GenerationParams) (*inbound.GenerationResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.GenerationResult), args.Error(1)
}

func (m *MockRecipeService) History(ctx context.Context, limit int) ([]recipe.HistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.HistoryEntry), args.Error(1)
}

func (m *MockRecipeService) HistoryEntry(ctx context.Context, id uint) (*recipe.HistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.HistoryEntry), args.Error(1)
}
