// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository implements the ingredient repository interface using GORM
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) outbound.IngredientRepository {
	return &IngredientRepository{db: db}
}

// List returns every pantry row ordered by name
func (r *IngredientRepository) List(ctx context.Context) ([]pantry.Ingredient, error) {
	var models []IngredientModel

	result := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	ingredients := make([]pantry.Ingredient, len(models))
	for i := range models {
		ingredients[i] = *ModelToIngredient(&models[i])
	}

	return ingredients, nil
}

// FindByName finds an ingredient by its folded name
func (r *IngredientRepository) FindByName(ctx context.Context, name string) (*pantry.Ingredient, error) {
	var model IngredientModel

	result := r.db.WithContext(ctx).
		First(&model, "name = ?", pantry.NormalizeName(name))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, pantry.ErrIngredientNotFound
		}
		return nil, result.Error
	}

	return ModelToIngredient(&model), nil
}

// Upsert inserts an ingredient or, when the name already exists,
// overwrites qty, unit, category, diet tag and expiry on the existing row.
// The passed ingredient is refreshed with the stored row afterwards.
func (r *IngredientRepository) Upsert(ctx context.Context, ing *pantry.Ingredient) error {
	model := IngredientToModel(ing)
	model.ID = 0

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"qty", "unit", "category", "diet_type", "expires_on", "updated_at"}),
		}).
		Create(model)
	if result.Error != nil {
		return result.Error
	}

	// MySQL does not report the surviving row id on duplicate-key
	// updates, so read the row back by name.
	var saved IngredientModel
	if err := r.db.WithContext(ctx).First(&saved, "name = ?", model.Name).Error; err != nil {
		return err
	}
	*ing = *ModelToIngredient(&saved)

	return nil
}

// UpsertBatch merges a batch of ingredients by name in one statement
func (r *IngredientRepository) UpsertBatch(ctx context.Context, ings []pantry.Ingredient) error {
	if len(ings) == 0 {
		return nil
	}

	models := make([]IngredientModel, len(ings))
	for i := range ings {
		m := IngredientToModel(&ings[i])
		m.ID = 0
		models[i] = *m
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"qty", "unit", "category", "diet_type", "expires_on", "updated_at"}),
		}).
		Create(&models)

	return result.Error
}

// Delete removes an ingredient by ID
func (r *IngredientRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&IngredientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return pantry.ErrIngredientNotFound
	}

	return nil
}

// ApplyUsage decrements pantry quantities for the given usage items inside
// a single transaction. Quantities floor at zero and names that match no
// row are collected rather than failing the batch. Units are not compared;
// the decrement trusts the reported quantity as-is.
func (r *IngredientRepository) ApplyUsage(ctx context.Context, items []recipe.UsageItem) (*recipe.UsageResult, error) {
	usage := &recipe.UsageResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			name := pantry.NormalizeName(item.Name)
			if name == "" || item.Qty <= 0 {
				continue
			}

			var model IngredientModel
			if err := tx.First(&model, "name = ?", name).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					usage.Missing = append(usage.Missing, name)
					continue
				}
				return err
			}

			oldQty := model.Qty
			newQty := oldQty - item.Qty
			if newQty < 0 {
				newQty = 0
			}

			if err := tx.Model(&model).Update("qty", newQty).Error; err != nil {
				return err
			}

			usage.Updated = append(usage.Updated, recipe.UsageUpdate{
				Name:   name,
				OldQty: oldQty,
				NewQty: newQty,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return usage, nil
}
