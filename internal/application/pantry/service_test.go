package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/pantry"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/inbound"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/errors"
	"github.com/Janay-Rawal/recipe-ai-agent/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type PantryServiceTestSuite struct {
	suite.Suite
	repo    *testutils.MockIngredientRepository
	service inbound.PantryService
	ctx     context.Context
}

func (suite *PantryServiceTestSuite) SetupTest() {
	suite.repo = testutils.NewMockIngredientRepository()
	suite.service = NewPantryService(suite.repo, zaptest.NewLogger(suite.T()))
	suite.ctx = context.Background()
}

func (suite *PantryServiceTestSuite) TestList() {
	suite.Run("ShouldReturnRepositoryRows", func() {
		// Arrange
		rows := []pantry.Ingredient{
			testutils.NewIngredientBuilder().WithID(1).WithName("rice").Build(),
			testutils.NewIngredientBuilder().WithID(2).WithName("tomato").Build(),
		}
		suite.repo.On("List", mock.Anything).Return(rows, nil)

		// Act
		got, err := suite.service.List(suite.ctx)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), rows, got)
	})

	suite.Run("WhenRepositoryFails_ShouldReturnDatabaseError", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("List", mock.Anything).Return(nil, assert.AnError)

		// Act
		_, err := suite.service.List(suite.ctx)

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeDatabaseError))
	})
}

func (suite *PantryServiceTestSuite) TestListRanked() {
	suite.Run("ShouldOrderByExpiryPressure", func() {
		// Arrange
		rows := []pantry.Ingredient{
			testutils.NewIngredientBuilder().WithID(1).WithName("rice").
				WithCategory(pantry.CategoryGrain).ExpiringIn(200).Build(),
			testutils.NewIngredientBuilder().WithID(2).WithName("tomato").
				ExpiringIn(1).Build(),
		}
		suite.repo.On("List", mock.Anything).Return(rows, nil)

		// Act
		got, err := suite.service.ListRanked(suite.ctx, pantry.RankOptions{})

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), got, 2)
		assert.Equal(suite.T(), "tomato", got[0].Name)
		assert.Equal(suite.T(), "rice", got[1].Name)
		assert.Greater(suite.T(), got[0].Priority, got[1].Priority)
	})
}

func (suite *PantryServiceTestSuite) TestUpsert() {
	suite.Run("WithBlankClassification_ShouldGuessFromName", func() {
		// Arrange
		var saved *pantry.Ingredient
		suite.repo.On("Upsert", mock.Anything, mock.AnythingOfType("*pantry.Ingredient")).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*pantry.Ingredient)
			}).
			Return(nil)

		// Act
		got, err := suite.service.Upsert(suite.ctx, inbound.UpsertIngredientCommand{
			Name: "  Paneer ",
			Qty:  200,
			Unit: "g",
		})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), saved)
		assert.Equal(suite.T(), "paneer", saved.Name)
		assert.Equal(suite.T(), 200.0, saved.Qty)
		assert.Equal(suite.T(), pantry.CategoryDairy, saved.Category)
		assert.Equal(suite.T(), pantry.DietTagVeg, saved.DietTag)
		assert.Nil(suite.T(), saved.ExpiresOn)
		assert.Equal(suite.T(), saved, got)
	})

	suite.Run("WithExplicitClassification_ShouldKeepIt", func() {
		// Arrange
		suite.SetupTest()
		var saved *pantry.Ingredient
		suite.repo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*pantry.Ingredient)
			}).
			Return(nil)

		// Act
		_, err := suite.service.Upsert(suite.ctx, inbound.UpsertIngredientCommand{
			Name:     "paneer",
			Qty:      100,
			Unit:     "g",
			Category: pantry.CategoryProtein,
			DietTag:  pantry.DietTagUnknown,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), pantry.CategoryProtein, saved.Category)
		assert.Equal(suite.T(), pantry.DietTagUnknown, saved.DietTag)
	})

	suite.Run("WithISODate_ShouldParseExpiry", func() {
		// Arrange
		suite.SetupTest()
		var saved *pantry.Ingredient
		suite.repo.On("Upsert", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				saved = args.Get(1).(*pantry.Ingredient)
			}).
			Return(nil)

		// Act
		_, err := suite.service.Upsert(suite.ctx, inbound.UpsertIngredientCommand{
			Name:      "milk",
			Qty:       1,
			Unit:      "l",
			ExpiresOn: "2026-09-01",
		})

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), saved.ExpiresOn)
		assert.Equal(suite.T(), time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *saved.ExpiresOn)
	})

	suite.Run("WithMalformedDate_ShouldRejectWithoutStore", func() {
		// Arrange
		suite.SetupTest()

		// Act
		_, err := suite.service.Upsert(suite.ctx, inbound.UpsertIngredientCommand{
			Name:      "milk",
			Qty:       1,
			Unit:      "l",
			ExpiresOn: "01-09-2026",
		})

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeBadRequest))
		suite.repo.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
	})

	suite.Run("WithBlankName_ShouldRejectWithoutStore", func() {
		// Arrange
		suite.SetupTest()

		// Act
		_, err := suite.service.Upsert(suite.ctx, inbound.UpsertIngredientCommand{
			Name: "   ",
			Qty:  1,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeBadRequest))
		suite.repo.AssertNotCalled(suite.T(), "Upsert", mock.Anything, mock.Anything)
	})

	suite.Run("WithNegativeQty_ShouldRejectWithoutStore", func() {
		// Arrange
		suite.SetupTest()

		// Act
		_, err := suite.service.Upsert(suite.ctx, inbound.UpsertIngredientCommand{
			Name: "rice",
			Qty:  -2,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeBadRequest))
	})

	suite.Run("WhenRepositoryFails_ShouldReturnDatabaseError", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("Upsert", mock.Anything, mock.Anything).Return(assert.AnError)

		// Act
		_, err := suite.service.Upsert(suite.ctx, inbound.UpsertIngredientCommand{
			Name: "rice",
			Qty:  1,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeDatabaseError))
	})
}

func (suite *PantryServiceTestSuite) TestBulkAdd() {
	suite.Run("ShouldParseGuessAndBatchEveryValidLine", func() {
		// Arrange
		var batch []pantry.Ingredient
		suite.repo.On("UpsertBatch", mock.Anything, mock.AnythingOfType("[]pantry.Ingredient")).
			Run(func(args mock.Arguments) {
				batch = args.Get(1).([]pantry.Ingredient)
			}).
			Return(nil)

		today := time.Now()
		wantExpiry := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
			AddDate(0, 0, 4)

		// Act
		result, err := suite.service.BulkAdd(suite.ctx, inbound.BulkAddCommand{
			Text:        "paneer 200g, 500g, eggs 12 pcs\nchicken breast 1.5 kg\ntomato 3\n42",
			DefaultDays: 4,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), []string{"paneer", "eggs", "chicken breast", "tomato"}, result.Added)
		assert.Equal(suite.T(), 2, result.Skipped)

		require.Len(suite.T(), batch, 4)
		assert.Equal(suite.T(), pantry.Ingredient{
			Name: "paneer", Qty: 200, Unit: "g",
			Category: pantry.CategoryDairy, DietTag: pantry.DietTagVeg,
			ExpiresOn: batch[0].ExpiresOn,
		}, batch[0])
		assert.Equal(suite.T(), "eggs", batch[1].Name)
		assert.Equal(suite.T(), 12.0, batch[1].Qty)
		assert.Equal(suite.T(), pantry.CategoryProtein, batch[1].Category)
		assert.Equal(suite.T(), pantry.DietTagEggsOK, batch[1].DietTag)
		assert.Equal(suite.T(), "chicken breast", batch[2].Name)
		assert.Equal(suite.T(), "kg", batch[2].Unit)
		assert.Equal(suite.T(), pantry.DietTagNonVeg, batch[2].DietTag)
		// Bare quantity falls back to the default unit.
		assert.Equal(suite.T(), "pcs", batch[3].Unit)

		for _, ing := range batch {
			require.NotNil(suite.T(), ing.ExpiresOn)
			assert.Equal(suite.T(), wantExpiry, *ing.ExpiresOn)
		}
	})

	suite.Run("WithNoParsableLines_ShouldNotTouchStore", func() {
		// Arrange
		suite.SetupTest()

		// Act
		result, err := suite.service.BulkAdd(suite.ctx, inbound.BulkAddCommand{
			Text: "500g, 42",
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), result.Added)
		assert.Equal(suite.T(), 2, result.Skipped)
		suite.repo.AssertNotCalled(suite.T(), "UpsertBatch", mock.Anything, mock.Anything)
	})

	suite.Run("WhenRepositoryFails_ShouldReturnDatabaseError", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("UpsertBatch", mock.Anything, mock.Anything).Return(assert.AnError)

		// Act
		_, err := suite.service.BulkAdd(suite.ctx, inbound.BulkAddCommand{
			Text: "tomato 3",
		})

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeDatabaseError))
	})
}

func (suite *PantryServiceTestSuite) TestDelete() {
	suite.Run("WithKnownID_ShouldDelete", func() {
		// Arrange
		suite.repo.On("Delete", mock.Anything, uint(3)).Return(nil)

		// Act
		err := suite.service.Delete(suite.ctx, 3)

		// Assert
		require.NoError(suite.T(), err)
	})

	suite.Run("WithUnknownID_ShouldMapToNotFound", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("Delete", mock.Anything, uint(99)).Return(pantry.ErrIngredientNotFound)

		// Act
		err := suite.service.Delete(suite.ctx, 99)

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeIngredientNotFound))
	})

	suite.Run("WhenRepositoryFails_ShouldReturnDatabaseError", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("Delete", mock.Anything, mock.Anything).Return(assert.AnError)

		// Act
		err := suite.service.Delete(suite.ctx, 1)

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeDatabaseError))
	})
}

func (suite *PantryServiceTestSuite) TestApplyUsage() {
	suite.Run("ShouldPassResultThrough", func() {
		// Arrange
		items := []recipe.UsageItem{{Name: "tomato", Qty: 2, Unit: "pcs"}}
		want := &recipe.UsageResult{
			Updated: []recipe.UsageUpdate{{Name: "tomato", OldQty: 6, NewQty: 4}},
			Missing: []string{"saffron"},
		}
		suite.repo.On("ApplyUsage", mock.Anything, items).Return(want, nil)

		// Act
		got, err := suite.service.ApplyUsage(suite.ctx, items)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), want, got)
	})

	suite.Run("WhenRepositoryFails_ShouldReturnDatabaseError", func() {
		// Arrange
		suite.SetupTest()
		suite.repo.On("ApplyUsage", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		// Act
		_, err := suite.service.ApplyUsage(suite.ctx, []recipe.UsageItem{{Name: "tomato", Qty: 1}})

		// Assert
		require.Error(suite.T(), err)
		assert.True(suite.T(), errors.Is(err, errors.CodeDatabaseError))
	})
}

func TestPantryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PantryServiceTestSuite))
}
