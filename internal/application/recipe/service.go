// Package recipe provides the application layer for recipe generation
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/inbound"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/outbound"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeService implements the generation use cases
type RecipeService struct {
	ingredientRepo outbound.IngredientRepository
	historyRepo    outbound.HistoryRepository
	aiService      outbound.AIService
	validate       *validator.Validate
	cfg            *config.Config
	logger         *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	ingredientRepo outbound.IngredientRepository,
	historyRepo outbound.HistoryRepository,
	aiService outbound.AIService,
	cfg *config.Config,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		ingredientRepo: ingredientRepo,
		historyRepo:    historyRepo,
		aiService:      aiService,
		validate:       validator.New(),
		cfg:            cfg,
		logger:         logger.Named("recipe-service"),
	}
}

// Generate runs one ranked-pantry generation: rank, prompt, call the
// model, persist the run, then extract the usage block. The run is saved
// to history before usage parsing so a malformed usage block never loses
// the generated markdown.
func (s *RecipeService) Generate(ctx context.Context, params recipe.GenerationParams) (*inbound.GenerationResult, error) {
	runID := uuid.New().String()

	s.logger.Info("Generating recipes",
		zap.String("run_id", runID),
		zap.String("dietary", params.Dietary),
		zap.Int("time_limit", params.TimeLimit),
		zap.Int("servings", params.Servings),
		zap.String("cuisine", params.Cuisine),
		zap.Int("num_options", params.NumOptions),
	)

	if err := s.validateParams(params); err != nil {
		return nil, err
	}

	items, err := s.ingredientRepo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list ingredients", err)
	}
	if len(items) == 0 {
		return nil, errors.NewPantryEmptyError()
	}

	ranked := pantry.Rank(items, pantry.RankOptions{
		SelectedDiet:  pantry.DietTag(params.Dietary),
		ExcludeNonVeg: params.ExcludeNonVeg,
		ExcludeEggs:   params.ExcludeEggs,
		ExcludeDairy:  params.ExcludeDairy,
	})
	snapshot := pantry.Snapshot(ranked, s.cfg.Pantry.SnapshotLimit)

	markdown, err := s.aiService.Chat(ctx,
		BuildSystemPrompt(),
		BuildUserPrompt(snapshot, params),
		outbound.AIOptions{
			Model:       s.cfg.AI.Model,
			Temperature: s.cfg.AI.Temperature,
			NumPredict:  s.cfg.AI.NumPredict,
		},
	)
	if err != nil {
		s.logger.Error("Model call failed",
			zap.String("run_id", runID),
			zap.Error(err),
		)
		return nil, errors.NewExternalServiceError("ollama", err)
	}

	entry := &recipe.HistoryEntry{
		Dietary:        params.Dietary,
		TimeLimit:      params.TimeLimit,
		Servings:       params.Servings,
		Cuisine:        params.Cuisine,
		NumOptions:     params.NumOptions,
		RankedSnapshot: snapshot,
		ResultMarkdown: markdown,
	}
	if err := s.historyRepo.Save(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("save history", err)
	}

	extraction := recipe.ExtractUsage(markdown)

	s.logger.Info("Recipes generated",
		zap.String("run_id", runID),
		zap.Uint("history_id", entry.ID),
		zap.String("extraction_status", string(extraction.Status)),
		zap.Int("recipes_extracted", len(extraction.Recipes)),
	)

	return &inbound.GenerationResult{
		RunID:      runID,
		Params:     params,
		Snapshot:   snapshot,
		Markdown:   markdown,
		Extraction: extraction,
		HistoryID:  entry.ID,
	}, nil
}

// History returns the newest runs first
func (s *RecipeService) History(ctx context.Context, limit int) ([]recipe.HistoryEntry, error) {
	if limit <= 0 {
		limit = s.cfg.Pantry.HistoryListLimit
	}

	entries, err := s.historyRepo.Recent(ctx, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("list history", err)
	}

	return entries, nil
}

// HistoryEntry returns one full run, snapshot and markdown included
func (s *RecipeService) HistoryEntry(ctx context.Context, id uint) (*recipe.HistoryEntry, error) {
	entry, err := s.historyRepo.FindByID(ctx, id)
	if err != nil {
		if err == recipe.ErrHistoryNotFound {
			return nil, errors.NewHistoryNotFoundError(id)
		}
		return nil, errors.NewDatabaseError("find history entry", err)
	}

	return entry, nil
}

// validateParams checks the generation constraints and converts tag
// failures into field-level validation errors.
func (s *RecipeService) validateParams(params recipe.GenerationParams) error {
	err := s.validate.Struct(params)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(err.Error())
	}

	fieldErrors := make([]errors.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrors = append(fieldErrors, errors.ValidationError{
			Field:   fe.Field(),
			Value:   fe.Value(),
			Tag:     fe.Tag(),
			Message: fe.Error(),
		})
	}

	return errors.NewValidationErrors(fieldErrors)
}
