// Package gorm provides GORM model definitions for the application
package gorm

import (
	"time"
)

// IngredientModel represents the GORM model for pantry ingredients.
// Name is the natural key: upserts merge on it.
type IngredientModel struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"type:varchar(191);uniqueIndex;not null"`
	Qty       float64    `gorm:"type:double;not null;default:0"`
	Unit      string     `gorm:"type:varchar(64);not null;default:''"`
	Category  string     `gorm:"type:varchar(64);not null;default:'other'"`
	DietType  string     `gorm:"type:varchar(16);not null;default:'unknown'"`
	ExpiresOn *time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeHistoryModel represents the GORM model for generation runs.
// Rows are append-only; nothing updates or deletes them.
type RecipeHistoryModel struct {
	ID             uint      `gorm:"primaryKey"`
	CreatedAt      time.Time `gorm:"index"`
	Dietary        string    `gorm:"type:varchar(64);not null"`
	TimeLimit      int       `gorm:"not null"`
	Servings       int       `gorm:"not null"`
	Cuisine        string    `gorm:"type:varchar(128);not null"`
	NumOptions     int       `gorm:"not null"`
	RankedSnapshot string    `gorm:"type:mediumtext"`
	ResultMarkdown string    `gorm:"type:longtext"`
}

// TableName methods for custom table names
func (IngredientModel) TableName() string {
	return "ingredients"
}

func (RecipeHistoryModel) TableName() string {
	return "recipe_history"
}
