package recipe

import "errors"

// Domain errors for recipe generation
var ErrHistoryNotFound = errors.New("history entry not found")
