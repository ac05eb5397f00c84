// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
)

// IngredientToModel converts a domain ingredient to a GORM model
func IngredientToModel(ing *pantry.Ingredient) *IngredientModel {
	return &IngredientModel{
		ID:        ing.ID,
		Name:      ing.Name,
		Qty:       ing.Qty,
		Unit:      ing.Unit,
		Category:  string(ing.Category),
		DietType:  string(ing.DietTag),
		ExpiresOn: ing.ExpiresOn,
		CreatedAt: ing.CreatedAt,
		UpdatedAt: ing.UpdatedAt,
	}
}

// ModelToIngredient converts a GORM model to a domain ingredient
func ModelToIngredient(model *IngredientModel) *pantry.Ingredient {
	return &pantry.Ingredient{
		ID:        model.ID,
		Name:      model.Name,
		Qty:       model.Qty,
		Unit:      model.Unit,
		Category:  pantry.Category(model.Category),
		DietTag:   pantry.DietTag(model.DietType),
		ExpiresOn: model.ExpiresOn,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// HistoryToModel converts a domain history entry to a GORM model
func HistoryToModel(entry *recipe.HistoryEntry) *RecipeHistoryModel {
	return &RecipeHistoryModel{
		ID:             entry.ID,
		CreatedAt:      entry.CreatedAt,
		Dietary:        entry.Dietary,
		TimeLimit:      entry.TimeLimit,
		Servings:       entry.Servings,
		Cuisine:        entry.Cuisine,
		NumOptions:     entry.NumOptions,
		RankedSnapshot: entry.RankedSnapshot,
		ResultMarkdown: entry.ResultMarkdown,
	}
}

// ModelToHistory converts a GORM model to a domain history entry
func ModelToHistory(model *RecipeHistoryModel) *recipe.HistoryEntry {
	return &recipe.HistoryEntry{
		ID:             model.ID,
		CreatedAt:      model.CreatedAt,
		Dietary:        model.Dietary,
		TimeLimit:      model.TimeLimit,
		Servings:       model.Servings,
		Cuisine:        model.Cuisine,
		NumOptions:     model.NumOptions,
		RankedSnapshot: model.RankedSnapshot,
		ResultMarkdown: model.ResultMarkdown,
	}
}
