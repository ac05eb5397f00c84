package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedRow describes one sample pantry item. Expiry is relative to the
// seed time so the demo data always contains soon-to-expire items.
type seedRow struct {
	name     string
	qty      float64
	unit     string
	category string
	dietType string
	days     int
}

var sampleRows = []seedRow{
	// veg / fruit
	{"tomato", 6, "pcs", "veg", "veg", 1},
	{"onion", 4, "pcs", "veg", "veg", 6},
	{"potato", 8, "pcs", "veg", "veg", 10},
	{"spinach", 1, "bunch", "veg", "veg", 2},
	{"capsicum", 2, "pcs", "veg", "veg", 4},
	{"carrot", 5, "pcs", "veg", "veg", 5},
	{"broccoli", 1, "head", "veg", "veg", 3},
	{"cucumber", 2, "pcs", "veg", "veg", 3},
	{"mushroom", 200, "g", "veg", "veg", 2},
	{"ginger", 80, "g", "veg", "veg", 12},
	{"garlic", 1, "bulb", "veg", "veg", 20},
	{"banana", 6, "pcs", "fruit", "veg", 2},
	{"apple", 4, "pcs", "fruit", "veg", 7},
	{"mango pulp", 1, "can", "fruit", "veg", 90},
	// grain / staples
	{"rice", 2, "kg", "grain", "veg", 180},
	{"atta flour", 1, "kg", "grain", "veg", 120},
	{"pasta", 500, "g", "grain", "veg", 365},
	{"bread", 6, "slices", "grain", "veg", 1},
	{"noodles", 300, "g", "grain", "veg", 200},
	// dairy
	{"milk", 1, "l", "dairy", "veg", 2},
	{"paneer", 250, "g", "dairy", "veg", 3},
	{"yogurt", 400, "g", "dairy", "veg", 5},
	{"cheese", 200, "g", "dairy", "veg", 14},
	{"butter", 200, "g", "dairy", "veg", 30},
	// condiments / spices
	{"salt", 1, "kg", "condiment", "veg", 3650},
	{"sugar", 1, "kg", "condiment", "veg", 3650},
	{"turmeric", 100, "g", "condiment", "veg", 365},
	{"cumin seeds", 100, "g", "condiment", "veg", 365},
	{"garam masala", 50, "g", "condiment", "veg", 365},
	{"soy sauce", 200, "ml", "condiment", "veg", 365},
	{"tomato ketchup", 350, "g", "condiment", "veg", 365},
	// protein (non-veg)
	{"chicken breast", 750, "g", "protein", "non-veg", 2},
	{"fish fillet", 500, "g", "protein", "non-veg", 1},
	{"prawns", 300, "g", "protein", "non-veg", 2},
	{"eggs", 12, "pcs", "protein", "eggs-ok", 10},
	{"mutton", 600, "g", "protein", "non-veg", 2},
	{"bacon", 200, "g", "protein", "non-veg", 7},
	{"tuna (canned)", 1, "can", "protein", "non-veg", 365},
	// veg proteins
	{"tofu", 300, "g", "protein", "vegan", 4},
	{"chickpeas (canned)", 1, "can", "protein", "vegan", 365},
	{"rajma (kidney beans)", 500, "g", "protein", "vegan", 300},
}

// SeedPantry upserts the sample pantry rows, merging by name so reruns
// reset quantities and expiry dates instead of duplicating items.
// It returns the number of rows written.
func SeedPantry(ctx context.Context, db *gorm.DB, now time.Time) (int, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	models := make([]IngredientModel, len(sampleRows))
	for i, row := range sampleRows {
		expires := today.AddDate(0, 0, row.days)
		models[i] = IngredientModel{
			Name:      row.name,
			Qty:       row.qty,
			Unit:      row.unit,
			Category:  row.category,
			DietType:  row.dietType,
			ExpiresOn: &expires,
		}
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"qty", "unit", "category", "diet_type", "expires_on", "updated_at"}),
		}).
		Create(&models)
	if result.Error != nil {
		return 0, result.Error
	}

	return len(models), nil
}
