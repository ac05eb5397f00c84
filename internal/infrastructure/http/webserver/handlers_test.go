package webserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/monitoring"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/inbound"
	apperrors "github.com/Janay-Rawal/recipe-ai-agent/pkg/errors"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/healthcheck"
	"github.com/Janay-Rawal/recipe-ai-agent/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type WebServerTestSuite struct {
	suite.Suite
	pantryService *testutils.MockPantryService
	recipeService *testutils.MockRecipeService
	server        *WebServer
}

func (suite *WebServerTestSuite) SetupTest() {
	cfg := &config.Config{}
	cfg.App.Name = "recipe-ai-agent"
	cfg.App.Version = "test"
	cfg.Server.Port = 8080
	cfg.Pantry.SnapshotLimit = 14
	cfg.Pantry.DefaultUnit = "pcs"
	cfg.Pantry.DefaultExpiryDays = 3
	cfg.Pantry.HistoryListLimit = 20
	cfg.Monitoring.EnableMetrics = true
	cfg.Monitoring.HealthCheckPath = "/health"
	cfg.Monitoring.MetricsPath = "/metrics"

	suite.pantryService = testutils.NewMockPantryService()
	suite.recipeService = testutils.NewMockRecipeService()

	logger := zaptest.NewLogger(suite.T())
	server, err := NewWebServer(
		cfg,
		logger,
		suite.pantryService,
		suite.recipeService,
		monitoring.NewMetricsCollector(logger),
		healthcheck.New("test", logger),
	)
	require.NoError(suite.T(), err)
	suite.server = server
}

func (suite *WebServerTestSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)
	return rec
}

func (suite *WebServerTestSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)
	return rec
}

// defaultRankOptions mirrors what the recipes page requests on a plain GET.
func defaultRankOptions() pantry.RankOptions {
	return rankOptions(recipe.DefaultGenerationParams())
}

func (suite *WebServerTestSuite) TestHome() {
	// Act
	rec := suite.get("/")

	// Assert
	assert.Equal(suite.T(), http.StatusFound, rec.Code)
	assert.Equal(suite.T(), "/pantry", rec.Header().Get("Location"))
}

func (suite *WebServerTestSuite) TestPantryPage() {
	suite.Run("WithItems_ShouldRenderInventory", func() {
		// Arrange
		items := []pantry.Ingredient{
			testutils.NewIngredientBuilder().WithName("tomato").WithQty(6, "pcs").Build(),
			testutils.NewIngredientBuilder().WithName("paneer").WithQty(200, "g").WithCategory(pantry.CategoryDairy).Build(),
		}
		suite.pantryService.On("List", mock.Anything).Return(items, nil)

		// Act
		rec := suite.get("/pantry")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(suite.T(), body, "tomato")
		assert.Contains(suite.T(), body, "paneer")
		assert.Contains(suite.T(), body, "Add ingredient")
	})

	suite.Run("WhenListFails_ShouldRenderErrorPage", func() {
		suite.SetupTest()

		// Arrange
		suite.pantryService.On("List", mock.Anything).
			Return(nil, apperrors.NewDatabaseError("list ingredients", assert.AnError))

		// Act
		rec := suite.get("/pantry")

		// Assert
		assert.Equal(suite.T(), http.StatusInternalServerError, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), "Failed to load pantry")
	})
}

func (suite *WebServerTestSuite) TestPantryAdd() {
	suite.Run("WithValidForm_ShouldUpsertAndRedirect", func() {
		// Arrange
		wantCmd := inbound.UpsertIngredientCommand{
			Name:      "Paneer",
			Qty:       200,
			Unit:      "g",
			Category:  pantry.CategoryDairy,
			DietTag:   pantry.DietTagVeg,
			ExpiresOn: "2026-09-01",
		}
		saved := testutils.NewIngredientBuilder().WithName("paneer").WithQty(200, "g").Build()
		suite.pantryService.On("Upsert", mock.Anything, wantCmd).Return(&saved, nil)

		form := url.Values{}
		form.Set("name", "Paneer")
		form.Set("qty", "200")
		form.Set("unit", "g")
		form.Set("category", "dairy")
		form.Set("diet_tag", "veg")
		form.Set("expires_on", "2026-09-01")

		// Act
		rec := suite.postForm("/pantry", form)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Equal(suite.T(), "/pantry?added=paneer", rec.Header().Get("Location"))
		suite.pantryService.AssertExpectations(suite.T())
	})

	suite.Run("WithMalformedQty_ShouldRedirectWithoutSaving", func() {
		suite.SetupTest()

		// Arrange
		form := url.Values{}
		form.Set("name", "paneer")
		form.Set("qty", "lots")

		// Act
		rec := suite.postForm("/pantry", form)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Contains(suite.T(), rec.Header().Get("Location"), "error=")
		suite.pantryService.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
	})

	suite.Run("WhenServiceRejects_ShouldSurfaceMessage", func() {
		suite.SetupTest()

		// Arrange
		suite.pantryService.On("Upsert", mock.Anything, mock.AnythingOfType("inbound.UpsertIngredientCommand")).
			Return(nil, apperrors.NewBadRequestError("ingredient name is required"))

		form := url.Values{}
		form.Set("name", "   ")
		form.Set("qty", "1")

		// Act
		rec := suite.postForm("/pantry", form)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Contains(suite.T(), rec.Header().Get("Location"), "error=ingredient+name+is+required")
	})
}

func (suite *WebServerTestSuite) TestPantryBulkAdd() {
	suite.Run("ShouldForwardDefaultsAndReportCounts", func() {
		// Arrange
		wantCmd := inbound.BulkAddCommand{
			Text:        "paneer 200g\ntomato 3",
			DefaultUnit: "g",
			DefaultDays: 5,
		}
		suite.pantryService.On("BulkAdd", mock.Anything, wantCmd).
			Return(&inbound.BulkAddResult{Added: []string{"paneer", "tomato"}, Skipped: 1}, nil)

		form := url.Values{}
		form.Set("text", "paneer 200g\ntomato 3")
		form.Set("default_unit", "g")
		form.Set("default_days", "5")

		// Act
		rec := suite.postForm("/pantry/bulk", form)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Equal(suite.T(), "/pantry?bulk_added=2&bulk_skipped=1", rec.Header().Get("Location"))
	})

	suite.Run("WithBlankDays_ShouldFallBackToConfig", func() {
		suite.SetupTest()

		// Arrange
		suite.pantryService.On("BulkAdd", mock.Anything, mock.MatchedBy(func(cmd inbound.BulkAddCommand) bool {
			return cmd.DefaultDays == 3
		})).Return(&inbound.BulkAddResult{Added: []string{"rice"}}, nil)

		form := url.Values{}
		form.Set("text", "rice 1kg")

		// Act
		rec := suite.postForm("/pantry/bulk", form)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		suite.pantryService.AssertExpectations(suite.T())
	})
}

func (suite *WebServerTestSuite) TestPantryDelete() {
	suite.Run("ShouldDeleteAndRedirect", func() {
		// Arrange
		suite.pantryService.On("Delete", mock.Anything, uint(5)).Return(nil)

		// Act
		rec := suite.postForm("/pantry/5/delete", url.Values{})

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Equal(suite.T(), "/pantry?deleted=1", rec.Header().Get("Location"))
	})

	suite.Run("WhenMissing_ShouldRedirectWithError", func() {
		suite.SetupTest()

		// Arrange
		suite.pantryService.On("Delete", mock.Anything, uint(99)).
			Return(apperrors.NewIngredientNotFoundError(99))

		// Act
		rec := suite.postForm("/pantry/99/delete", url.Values{})

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Contains(suite.T(), rec.Header().Get("Location"), "error=")
	})
}

func (suite *WebServerTestSuite) TestRecipesPage() {
	suite.Run("ShouldRenderSnapshotAndForm", func() {
		// Arrange
		ranked := []pantry.RankedIngredient{
			{
				Ingredient: testutils.NewIngredientBuilder().WithName("tomato").WithQty(6, "pcs").Build(),
				DaysLeft:   1.2,
				Priority:   1.0,
			},
		}
		suite.pantryService.On("ListRanked", mock.Anything, defaultRankOptions()).Return(ranked, nil)

		// Act
		rec := suite.get("/recipes")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(suite.T(), body, "1. tomato 6pcs")
		assert.Contains(suite.T(), body, "Generate")
		assert.NotContains(suite.T(), body, "Apply usage")
	})

	suite.Run("WithEmptyPantry_ShouldHintAtAdding", func() {
		suite.SetupTest()

		// Arrange
		suite.pantryService.On("ListRanked", mock.Anything, defaultRankOptions()).
			Return([]pantry.RankedIngredient{}, nil)

		// Act
		rec := suite.get("/recipes")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(suite.T(), body, "(empty)")
		assert.Contains(suite.T(), body, "Your pantry is empty")
	})
}

func (suite *WebServerTestSuite) TestGenerateFlow() {
	markdown := "### Option 1: Tomato Rice\n\nCook it."

	suite.Run("ShouldGenerateStoreRunAndRedirect", func() {
		// Arrange
		wantParams := recipe.GenerationParams{
			Dietary:       recipe.DietaryVeg,
			TimeLimit:     45,
			Servings:      4,
			Cuisine:       "South Indian",
			NumOptions:    2,
			ExcludeNonVeg: true,
		}
		result := &inbound.GenerationResult{
			RunID:    "run-1",
			Params:   wantParams,
			Snapshot: "1. tomato 6pcs | exp ~ 1.2d | prio=1.00",
			Markdown: markdown,
			Extraction: recipe.UsageExtraction{
				Status: recipe.ExtractionFound,
				Recipes: []recipe.RecipeUsage{
					{Title: "Tomato Rice", Items: []recipe.UsageItem{{Name: "tomato", Qty: 2, Unit: "pcs"}}},
				},
			},
			HistoryID: 1,
		}
		suite.recipeService.On("Generate", mock.Anything, wantParams).Return(result, nil)

		form := url.Values{}
		form.Set("dietary", "veg")
		form.Set("time_limit", "45")
		form.Set("servings", "4")
		form.Set("cuisine", "South Indian")
		form.Set("num_options", "2")

		// Act
		rec := suite.postForm("/recipes/generate", form)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Equal(suite.T(), "/recipes", rec.Header().Get("Location"))
		suite.recipeService.AssertExpectations(suite.T())

		// The follow-up GET shows the stored run.
		suite.pantryService.On("ListRanked", mock.Anything, defaultRankOptions()).
			Return([]pantry.RankedIngredient{}, nil)
		page := suite.get("/recipes")
		body := page.Body.String()
		assert.Contains(suite.T(), body, "### Option 1: Tomato Rice")
		assert.Contains(suite.T(), body, "history entry #1")
		assert.Contains(suite.T(), body, "Deduct from pantry")
		assert.Contains(suite.T(), body, "Tomato Rice")
	})

	suite.Run("WhenGenerationFails_ShouldRedirectWithError", func() {
		suite.SetupTest()

		// Arrange
		suite.recipeService.On("Generate", mock.Anything, mock.AnythingOfType("recipe.GenerationParams")).
			Return(nil, apperrors.NewPantryEmptyError())

		form := url.Values{}
		form.Set("dietary", "veg")
		form.Set("cuisine", "Indian")

		// Act
		rec := suite.postForm("/recipes/generate", form)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Contains(suite.T(), rec.Header().Get("Location"), "error=")
	})
}

func (suite *WebServerTestSuite) TestApplyUsage() {
	suite.Run("WithoutRun_ShouldRefuse", func() {
		// Arrange
		form := url.Values{}
		form.Set("option", "0")

		// Act
		rec := suite.postForm("/recipes/apply", form)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Contains(suite.T(), rec.Header().Get("Location"), "error=")
		suite.pantryService.AssertNotCalled(suite.T(), "ApplyUsage", mock.Anything, mock.Anything)
	})

	suite.Run("AfterRun_ShouldDeductChosenOption", func() {
		suite.SetupTest()

		// Arrange: run a generation first so the server holds a result.
		items := []recipe.UsageItem{{Name: "tomato", Qty: 2, Unit: "pcs"}}
		result := &inbound.GenerationResult{
			RunID:    "run-2",
			Markdown: "### Option 1: Tomato Rice",
			Extraction: recipe.UsageExtraction{
				Status:  recipe.ExtractionFound,
				Recipes: []recipe.RecipeUsage{{Title: "Tomato Rice", Items: items}},
			},
			HistoryID: 2,
		}
		suite.recipeService.On("Generate", mock.Anything, mock.AnythingOfType("recipe.GenerationParams")).
			Return(result, nil)

		genForm := url.Values{}
		genForm.Set("dietary", "veg")
		genForm.Set("cuisine", "Indian")
		suite.postForm("/recipes/generate", genForm)

		suite.pantryService.On("ApplyUsage", mock.Anything, items).
			Return(&recipe.UsageResult{
				Updated: []recipe.UsageUpdate{{Name: "tomato", OldQty: 6, NewQty: 4}},
				Missing: []string{"saffron"},
			}, nil)

		applyForm := url.Values{}
		applyForm.Set("option", "0")

		// Act
		rec := suite.postForm("/recipes/apply", applyForm)

		// Assert
		assert.Equal(suite.T(), http.StatusSeeOther, rec.Code)
		assert.Equal(suite.T(), "/recipes", rec.Header().Get("Location"))
		suite.pantryService.AssertExpectations(suite.T())

		// The follow-up GET shows what happened.
		suite.pantryService.On("ListRanked", mock.Anything, defaultRankOptions()).
			Return([]pantry.RankedIngredient{}, nil)
		page := suite.get("/recipes")
		body := page.Body.String()
		assert.Contains(suite.T(), body, "Applied usage for Tomato Rice")
		assert.Contains(suite.T(), body, "saffron")
	})

	suite.Run("WithUnknownOption_ShouldRefuse", func() {
		suite.SetupTest()

		// Arrange
		result := &inbound.GenerationResult{
			Markdown: "### Option 1",
			Extraction: recipe.UsageExtraction{
				Status:  recipe.ExtractionFound,
				Recipes: []recipe.RecipeUsage{{Title: "Only One", Items: []recipe.UsageItem{{Name: "rice", Qty: 1, Unit: "kg"}}}},
			},
		}
		suite.recipeService.On("Generate", mock.Anything, mock.AnythingOfType("recipe.GenerationParams")).
			Return(result, nil)

		genForm := url.Values{}
		genForm.Set("dietary", "veg")
		genForm.Set("cuisine", "Indian")
		suite.postForm("/recipes/generate", genForm)

		applyForm := url.Values{}
		applyForm.Set("option", "4")

		// Act
		rec := suite.postForm("/recipes/apply", applyForm)

		// Assert
		assert.Contains(suite.T(), rec.Header().Get("Location"), "error=")
		suite.pantryService.AssertNotCalled(suite.T(), "ApplyUsage", mock.Anything, mock.Anything)
	})
}

func (suite *WebServerTestSuite) TestHistoryPages() {
	suite.Run("ShouldListRecentRuns", func() {
		// Arrange
		entries := []recipe.HistoryEntry{
			testutils.NewHistoryEntryBuilder().WithID(2).Build(),
			testutils.NewHistoryEntryBuilder().WithID(1).Build(),
		}
		suite.recipeService.On("History", mock.Anything, 20).Return(entries, nil)

		// Act
		rec := suite.get("/history")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(suite.T(), body, "/history/2")
		assert.Contains(suite.T(), body, "/history/1")
		assert.Contains(suite.T(), body, "Indian")
	})

	suite.Run("DetailShouldRenderStoredRun", func() {
		suite.SetupTest()

		// Arrange
		entry := testutils.NewHistoryEntryBuilder().
			WithID(7).
			WithSnapshot("1. tomato 4pcs | exp ~ 1.0d | prio=1.20").
			WithMarkdown("### Option 1: Tomato Curry").
			Build()
		suite.recipeService.On("HistoryEntry", mock.Anything, uint(7)).Return(&entry, nil)

		// Act
		rec := suite.get("/history/7")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(suite.T(), body, "Run #7")
		assert.Contains(suite.T(), body, "1. tomato 4pcs")
		assert.Contains(suite.T(), body, "### Option 1: Tomato Curry")
	})

	suite.Run("DetailWhenMissing_ShouldReturn404", func() {
		suite.SetupTest()

		// Arrange
		suite.recipeService.On("HistoryEntry", mock.Anything, uint(99)).
			Return(nil, apperrors.NewHistoryNotFoundError(99))

		// Act
		rec := suite.get("/history/99")

		// Assert
		assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), "History entry not found")
	})

	suite.Run("DetailWithGarbledID_ShouldReturn404", func() {
		suite.SetupTest()

		// Act
		rec := suite.get("/history/abc")

		// Assert
		assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	})
}

func (suite *WebServerTestSuite) TestOperationalEndpoints() {
	suite.Run("HealthShouldReturnJSON", func() {
		// Act
		rec := suite.get("/health")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.Equal(suite.T(), "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(suite.T(), rec.Body.String(), `"status"`)
	})

	suite.Run("MetricsShouldExposeRequestCounters", func() {
		suite.SetupTest()

		// Arrange: one page hit so the request counter has a sample.
		suite.pantryService.On("List", mock.Anything).Return([]pantry.Ingredient{}, nil)
		suite.get("/pantry")

		// Act
		rec := suite.get("/metrics")

		// Assert
		assert.Equal(suite.T(), http.StatusOK, rec.Code)
		assert.Contains(suite.T(), rec.Body.String(), "http_requests_total")
	})
}

func TestWebServerTestSuite(t *testing.T) {
	suite.Run(t, new(WebServerTestSuite))
}
