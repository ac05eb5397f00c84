package gorm

import (
	"context"
	"errors"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/outbound"
	"gorm.io/gorm"
)

// HistoryRepository implements the generation history interface using GORM
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) outbound.HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save appends a generation run to the log
func (r *HistoryRepository) Save(ctx context.Context, entry *recipe.HistoryEntry) error {
	model := HistoryToModel(entry)
	model.ID = 0

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	entry.ID = model.ID
	entry.CreatedAt = model.CreatedAt

	return nil
}

// Recent returns the newest runs first, at most limit of them
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]recipe.HistoryEntry, error) {
	var models []RecipeHistoryModel

	result := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]recipe.HistoryEntry, len(models))
	for i := range models {
		entries[i] = *ModelToHistory(&models[i])
	}

	return entries, nil
}

// FindByID finds a single run by ID
func (r *HistoryRepository) FindByID(ctx context.Context, id uint) (*recipe.HistoryEntry, error) {
	var model RecipeHistoryModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrHistoryNotFound
		}
		return nil, result.Error
	}

	return ModelToHistory(&model), nil
}
