package pantry

import "errors"

// Domain errors for the pantry
var (
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrEmptyName          = errors.New("ingredient name is required")
	ErrNegativeQty        = errors.New("ingredient quantity cannot be negative")
)
