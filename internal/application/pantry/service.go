// Package pantry provides the application layer for pantry management
package pantry

import (
	"context"
	"strings"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/inbound"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/outbound"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/errors"
	"go.uber.org/zap"
)

// PantryService implements the pantry use cases
type PantryService struct {
	repo   outbound.IngredientRepository
	logger *zap.Logger
}

// NewPantryService creates a new pantry service
func NewPantryService(repo outbound.IngredientRepository, logger *zap.Logger) inbound.PantryService {
	return &PantryService{
		repo:   repo,
		logger: logger.Named("pantry-service"),
	}
}

// List returns the whole pantry ordered by name
func (s *PantryService) List(ctx context.Context) ([]pantry.Ingredient, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list ingredients", err)
	}

	return items, nil
}

// ListRanked returns the pantry in expiry-ranked order
func (s *PantryService) ListRanked(ctx context.Context, opts pantry.RankOptions) ([]pantry.RankedIngredient, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list ingredients", err)
	}

	return pantry.Rank(items, opts), nil
}

// Upsert adds an ingredient or overwrites the row with the same folded
// name. Empty category and diet tag are filled from the keyword tables.
func (s *PantryService) Upsert(ctx context.Context, cmd inbound.UpsertIngredientCommand) (*pantry.Ingredient, error) {
	name := pantry.NormalizeName(cmd.Name)

	category := pantry.Category(strings.TrimSpace(string(cmd.Category)))
	if category == "" {
		category = pantry.GuessCategory(name)
	}
	dietTag := pantry.DietTag(strings.TrimSpace(string(cmd.DietTag)))
	if dietTag == "" {
		dietTag = pantry.GuessDietTag(name)
	}

	var expiresOn *time.Time
	if strings.TrimSpace(cmd.ExpiresOn) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(cmd.ExpiresOn))
		if err != nil {
			return nil, errors.NewBadRequestError("expires_on must be an ISO date (YYYY-MM-DD)")
		}
		expiresOn = &parsed
	}

	ing := &pantry.Ingredient{
		Name:      name,
		Qty:       cmd.Qty,
		Unit:      cmd.Unit,
		Category:  category,
		DietTag:   dietTag,
		ExpiresOn: expiresOn,
	}
	ing.Normalize()

	if err := ing.Validate(); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	if err := s.repo.Upsert(ctx, ing); err != nil {
		return nil, errors.NewDatabaseError("upsert ingredient", err)
	}

	s.logger.Info("Ingredient saved",
		zap.String("name", ing.Name),
		zap.Float64("qty", ing.Qty),
		zap.String("unit", ing.Unit),
		zap.String("category", string(ing.Category)),
	)

	return ing, nil
}

// BulkAdd parses free text into pantry lines and upserts every line that
// parses. Lines that do not parse are counted, not fatal.
func (s *PantryService) BulkAdd(ctx context.Context, cmd inbound.BulkAddCommand) (*inbound.BulkAddResult, error) {
	defaultUnit := strings.TrimSpace(cmd.DefaultUnit)
	if defaultUnit == "" {
		defaultUnit = "pcs"
	}
	defaultDays := cmd.DefaultDays
	if defaultDays < 0 {
		defaultDays = 0
	}

	today := time.Now()
	expires := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, defaultDays)

	result := &inbound.BulkAddResult{}
	var batch []pantry.Ingredient

	for _, line := range pantry.SplitBulkText(cmd.Text) {
		parsed, ok := pantry.ParseLine(line, defaultUnit)
		if !ok {
			result.Skipped++
			continue
		}

		exp := expires
		batch = append(batch, pantry.Ingredient{
			Name:      parsed.Name,
			Qty:       parsed.Qty,
			Unit:      parsed.Unit,
			Category:  pantry.GuessCategory(parsed.Name),
			DietTag:   pantry.GuessDietTag(parsed.Name),
			ExpiresOn: &exp,
		})
		result.Added = append(result.Added, parsed.Name)
	}

	if len(batch) == 0 {
		return result, nil
	}

	if err := s.repo.UpsertBatch(ctx, batch); err != nil {
		return nil, errors.NewDatabaseError("bulk add ingredients", err)
	}

	s.logger.Info("Bulk add applied",
		zap.Int("added", len(result.Added)),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

// Delete removes an ingredient by ID
func (s *PantryService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if err == pantry.ErrIngredientNotFound {
			return errors.NewIngredientNotFoundError(id)
		}
		return errors.NewDatabaseError("delete ingredient", err)
	}

	s.logger.Info("Ingredient deleted", zap.Uint("id", id))

	return nil
}

// ApplyUsage deducts one recipe's reported usage from the pantry
func (s *PantryService) ApplyUsage(ctx context.Context, items []recipe.UsageItem) (*recipe.UsageResult, error) {
	result, err := s.repo.ApplyUsage(ctx, items)
	if err != nil {
		return nil, errors.NewDatabaseError("apply usage", err)
	}

	s.logger.Info("Usage applied",
		zap.Int("updated", len(result.Updated)),
		zap.Int("missing", len(result.Missing)),
	)

	return result, nil
}
