package webserver

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/inbound"
	apperrors "github.com/Janay-Rawal/recipe-ai-agent/pkg/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (s *WebServer) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/pantry", http.StatusFound)
}

// handlePantryPage renders the inventory table with the add and bulk-add forms.
func (s *WebServer) handlePantryPage(w http.ResponseWriter, r *http.Request) {
	items, err := s.pantryService.List(r.Context())
	if err != nil {
		s.renderErrorPage(w, http.StatusInternalServerError, "Failed to load pantry", err)
		return
	}

	q := r.URL.Query()
	s.renderTemplate(w, "pantry", map[string]interface{}{
		"Title":       "Pantry",
		"Active":      "pantry",
		"Items":       items,
		"Categories":  pantry.Categories,
		"DietTags":    pantry.DietTags,
		"DefaultUnit": s.config.Pantry.DefaultUnit,
		"DefaultDays": s.config.Pantry.DefaultExpiryDays,
		"Added":       q.Get("added"),
		"Deleted":     q.Get("deleted") != "",
		"BulkAdded":   q.Get("bulk_added"),
		"BulkSkipped": q.Get("bulk_skipped"),
		"Error":       q.Get("error"),
	})
}

// handlePantryAdd processes the single-ingredient form.
func (s *WebServer) handlePantryAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/pantry", "Invalid form submission")
		return
	}

	qty, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("qty")), 64)
	if err != nil {
		s.redirectWithError(w, r, "/pantry", "Quantity must be a number")
		return
	}

	cmd := inbound.UpsertIngredientCommand{
		Name:      r.FormValue("name"),
		Qty:       qty,
		Unit:      r.FormValue("unit"),
		Category:  pantry.Category(r.FormValue("category")),
		DietTag:   pantry.DietTag(r.FormValue("diet_tag")),
		ExpiresOn: strings.TrimSpace(r.FormValue("expires_on")),
	}

	ing, err := s.pantryService.Upsert(r.Context(), cmd)
	if err != nil {
		s.redirectWithError(w, r, "/pantry", userMessage(err))
		return
	}

	s.metrics.PantryWrite("upsert")
	http.Redirect(w, r, "/pantry?added="+url.QueryEscape(ing.Name), http.StatusSeeOther)
}

// handlePantryBulkAdd processes the pasted free-text form.
func (s *WebServer) handlePantryBulkAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/pantry", "Invalid form submission")
		return
	}

	cmd := inbound.BulkAddCommand{
		Text:        r.FormValue("text"),
		DefaultUnit: r.FormValue("default_unit"),
		DefaultDays: formInt(r, "default_days", s.config.Pantry.DefaultExpiryDays),
	}

	result, err := s.pantryService.BulkAdd(r.Context(), cmd)
	if err != nil {
		s.redirectWithError(w, r, "/pantry", userMessage(err))
		return
	}

	if len(result.Added) > 0 {
		s.metrics.PantryWrite("bulk_add")
	}
	dest := "/pantry?bulk_added=" + strconv.Itoa(len(result.Added)) +
		"&bulk_skipped=" + strconv.Itoa(result.Skipped)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// handlePantryDelete removes one row by id.
func (s *WebServer) handlePantryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		s.redirectWithError(w, r, "/pantry", "Invalid ingredient id")
		return
	}

	if err := s.pantryService.Delete(r.Context(), uint(id)); err != nil {
		s.redirectWithError(w, r, "/pantry", userMessage(err))
		return
	}

	s.metrics.PantryWrite("delete")
	http.Redirect(w, r, "/pantry?deleted=1", http.StatusSeeOther)
}

// handleRecipesPage renders the generation form, the live ranked snapshot,
// and whatever the last run produced.
func (s *WebServer) handleRecipesPage(w http.ResponseWriter, r *http.Request) {
	params := recipe.DefaultGenerationParams()

	ranked, err := s.pantryService.ListRanked(r.Context(), rankOptions(params))
	if err != nil {
		s.renderErrorPage(w, http.StatusInternalServerError, "Failed to load pantry", err)
		return
	}
	snapshot := pantry.Snapshot(ranked, s.config.Pantry.SnapshotLimit)

	lastRun, applied, appliedTitle := s.state.snapshot()

	s.renderTemplate(w, "recipes", map[string]interface{}{
		"Title":          "Generate Recipes",
		"Active":         "recipes",
		"Params":         params,
		"DietaryChoices": recipe.DietaryChoices,
		"Snapshot":       snapshot,
		"PantryEmpty":    snapshot == pantry.EmptySnapshot,
		"LastRun":        lastRun,
		"Applied":        applied,
		"AppliedTitle":   appliedTitle,
		"Error":          r.URL.Query().Get("error"),
	})
}

// handleRecipeGenerate runs one generation pass and stores the outcome for
// the follow-up GET.
func (s *WebServer) handleRecipeGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/recipes", "Invalid form submission")
		return
	}

	params := recipe.GenerationParams{
		Dietary:       r.FormValue("dietary"),
		TimeLimit:     formInt(r, "time_limit", 30),
		Servings:      formInt(r, "servings", 2),
		Cuisine:       strings.TrimSpace(r.FormValue("cuisine")),
		NumOptions:    formInt(r, "num_options", 2),
		ExcludeNonVeg: r.FormValue("exclude_non_veg") != "",
		ExcludeEggs:   r.FormValue("exclude_eggs") != "",
		ExcludeDairy:  r.FormValue("exclude_dairy") != "",
	}
	params.ApplyDietaryDefaults()

	started := time.Now()
	result, err := s.recipeService.Generate(r.Context(), params)
	if err != nil {
		s.metrics.GenerationRun("error", time.Since(started))
		s.logger.Warn("Generation failed", zap.Error(err))
		s.redirectWithError(w, r, "/recipes", userMessage(err))
		return
	}

	s.metrics.GenerationRun("success", time.Since(started))
	s.state.setRun(result)
	http.Redirect(w, r, "/recipes", http.StatusSeeOther)
}

// handleApplyUsage deducts the chosen recipe's usage from the pantry.
func (s *WebServer) handleApplyUsage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.redirectWithError(w, r, "/recipes", "Invalid form submission")
		return
	}

	lastRun, _, _ := s.state.snapshot()
	if lastRun == nil || !lastRun.Extraction.Found() {
		s.redirectWithError(w, r, "/recipes", "No usage data to apply")
		return
	}

	option := formInt(r, "option", -1)
	if option < 0 || option >= len(lastRun.Extraction.Recipes) {
		s.redirectWithError(w, r, "/recipes", "Unknown recipe option")
		return
	}
	usage := lastRun.Extraction.Recipes[option]

	result, err := s.pantryService.ApplyUsage(r.Context(), usage.Items)
	if err != nil {
		s.redirectWithError(w, r, "/recipes", userMessage(err))
		return
	}

	s.metrics.PantryWrite("apply_usage")
	s.metrics.UsageApplied(len(result.Updated), len(result.Missing))
	s.state.setApplied(result, usage.Title)
	http.Redirect(w, r, "/recipes", http.StatusSeeOther)
}

// handleHistoryPage lists recent generation runs, newest first.
func (s *WebServer) handleHistoryPage(w http.ResponseWriter, r *http.Request) {
	entries, err := s.recipeService.History(r.Context(), s.config.Pantry.HistoryListLimit)
	if err != nil {
		s.renderErrorPage(w, http.StatusInternalServerError, "Failed to load history", err)
		return
	}

	s.renderTemplate(w, "history", map[string]interface{}{
		"Title":   "History",
		"Active":  "history",
		"Entries": entries,
	})
}

// handleHistoryDetail shows one archived run in full.
func (s *WebServer) handleHistoryDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		s.renderErrorPage(w, http.StatusNotFound, "History entry not found", nil)
		return
	}

	entry, err := s.recipeService.HistoryEntry(r.Context(), uint(id))
	if err != nil {
		if apperrors.Is(err, apperrors.CodeHistoryNotFound) {
			s.renderErrorPage(w, http.StatusNotFound, "History entry not found", nil)
			return
		}
		s.renderErrorPage(w, http.StatusInternalServerError, "Failed to load history entry", err)
		return
	}

	s.renderTemplate(w, "history-detail", map[string]interface{}{
		"Title":  "Run Detail",
		"Active": "history",
		"Entry":  entry,
	})
}

// rankOptions maps generation params onto the dietary ranking filters.
func rankOptions(params recipe.GenerationParams) pantry.RankOptions {
	return pantry.RankOptions{
		SelectedDiet:  pantry.DietTag(params.Dietary),
		ExcludeNonVeg: params.ExcludeNonVeg,
		ExcludeEggs:   params.ExcludeEggs,
		ExcludeDairy:  params.ExcludeDairy,
	}
}

// formInt reads an integer form field, falling back when absent or garbled.
func formInt(r *http.Request, field string, fallback int) int {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// userMessage turns an application error into text safe to show on a page.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong"
}

func (s *WebServer) redirectWithError(w http.ResponseWriter, r *http.Request, path, message string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}
