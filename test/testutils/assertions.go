// Package testutils provides custom assertions and testing utilities
package testutils

import (
	"io"
	"net/http"
	"testing"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PantryAssertions provides pantry-specific assertion methods
type PantryAssertions struct {
	t *testing.T
}

// NewPantryAssertions creates a new pantry assertions helper
func NewPantryAssertions(t *testing.T) *PantryAssertions {
	return &PantryAssertions{t: t}
}

// HasIngredient asserts that the inventory contains an ingredient by name
// and returns it for further checks.
func (pa *PantryAssertions) HasIngredient(items []pantry.Ingredient, name string) pantry.Ingredient {
	for _, item := range items {
		if item.Name == name {
			return item
		}
	}

	require.Failf(pa.t, "Ingredient missing",
		"Inventory should contain %q but holds %d other items", name, len(items))
	return pantry.Ingredient{}
}

// Quantity asserts an ingredient's stored quantity and unit
func (pa *PantryAssertions) Quantity(items []pantry.Ingredient, name string, qty float64, unit string) {
	item := pa.HasIngredient(items, name)
	assert.InDelta(pa.t, qty, item.Qty, 1e-9, "Quantity mismatch for %q", name)
	assert.Equal(pa.t, unit, item.Unit, "Unit mismatch for %q", name)
}

// RankedOrder asserts that the ranked inventory lists exactly the given
// names in the given order.
func (pa *PantryAssertions) RankedOrder(ranked []pantry.RankedIngredient, names ...string) {
	require.Len(pa.t, ranked, len(names), "Ranked inventory size mismatch")
	for i, name := range names {
		assert.Equal(pa.t, name, ranked[i].Name, "Wrong ingredient at rank %d", i+1)
	}
}

// UsageAssertions provides assertions over usage application results
type UsageAssertions struct {
	t *testing.T
}

// NewUsageAssertions creates a new usage assertions helper
func NewUsageAssertions(t *testing.T) *UsageAssertions {
	return &UsageAssertions{t: t}
}

// Updated asserts that an ingredient was decremented from old to new quantity
func (ua *UsageAssertions) Updated(result *recipe.UsageResult, name string, oldQty, newQty float64) {
	require.NotNil(ua.t, result, "Usage result should not be nil")

	for _, upd := range result.Updated {
		if upd.Name == name {
			assert.InDelta(ua.t, oldQty, upd.OldQty, 1e-9, "Old quantity mismatch for %q", name)
			assert.InDelta(ua.t, newQty, upd.NewQty, 1e-9, "New quantity mismatch for %q", name)
			return
		}
	}

	assert.Failf(ua.t, "Update missing", "Usage result should carry an update for %q", name)
}

// Missing asserts the exact set of names reported as absent from the pantry
func (ua *UsageAssertions) Missing(result *recipe.UsageResult, names ...string) {
	require.NotNil(ua.t, result, "Usage result should not be nil")
	assert.ElementsMatch(ua.t, names, result.Missing)
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code
func (ha *HTTPAssertions) StatusCode(resp *http.Response, expectedCode int) {
	require.NotNil(ha.t, resp, "Response should not be nil")
	assert.Equal(ha.t, expectedCode, resp.StatusCode)
}

// RedirectsTo asserts a redirect status and its Location target
func (ha *HTTPAssertions) RedirectsTo(resp *http.Response, location string) {
	require.NotNil(ha.t, resp, "Response should not be nil")
	assert.Contains(ha.t, []int{http.StatusFound, http.StatusSeeOther}, resp.StatusCode,
		"Expected a redirect status")
	assert.Equal(ha.t, location, resp.Header.Get("Location"))
}

// ReadBody drains and closes the response body
func (ha *HTTPAssertions) ReadBody(resp *http.Response) string {
	require.NotNil(ha.t, resp, "Response should not be nil")

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(ha.t, err, "Failed to read response body")
	return string(body)
}
