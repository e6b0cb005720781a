package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"github.com/hotelia/tarify/internal/pricerule/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS price_rules (
		id BIGINT PRIMARY KEY,
		tariff_period_id BIGINT NOT NULL,
		accommodation_category_id BIGINT NOT NULL,
		number_of_guests INTEGER NOT NULL,
		price_credit_card NUMERIC NOT NULL,
		price_pix NUMERIC NOT NULL,
		breakfast_discount_type TEXT NOT NULL,
		breakfast_discount_value NUMERIC NOT NULL,
		metadata TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE (tariff_period_id, accommodation_category_id, number_of_guests)
	)`).Error)

	return db
}

func newRule(node *snowflake.Node, period, category snowflake.ID, guests int) *pricedomain.PriceRule {
	now := time.Now().UTC()
	return &pricedomain.PriceRule{
		ID:                      node.Generate(),
		TariffPeriodID:          period,
		AccommodationCategoryID: category,
		NumberOfGuests:          guests,
		PriceCreditCard:         decimal.NewFromInt(200),
		PricePix:                decimal.NewFromInt(180),
		BreakfastDiscountType:   pricedomain.Fixed,
		BreakfastDiscountValue:  decimal.NewFromInt(25),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

func TestPriceRuleRepository(t *testing.T) {
	db := openTestDB(t)
	repo := repository.Provide()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	ctx := context.Background()

	period := node.Generate()
	otherPeriod := node.Generate()
	category := node.Generate()
	otherCategory := node.Generate()

	seeded := newRule(node, period, category, 1)
	require.NoError(t, repo.Insert(ctx, db, seeded))

	t.Run("FindByTriple", func(t *testing.T) {
		found, err := repo.FindByTriple(ctx, db, seeded.Triple())
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, seeded.ID, found.ID)
		assert.True(t, found.PriceCreditCard.Equal(decimal.NewFromInt(200)))

		missing, err := repo.FindByTriple(ctx, db, pricedomain.Triple{
			TariffPeriodID:          period,
			AccommodationCategoryID: category,
			NumberOfGuests:          9,
		})
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("InsertDuplicateTripleFails", func(t *testing.T) {
		dup := newRule(node, period, category, 1)
		dup.PriceCreditCard = decimal.NewFromInt(999)

		err := repo.Insert(ctx, db, dup)

		var dupErr *pricedomain.DuplicateError
		assert.ErrorAs(t, err, &dupErr)
		assert.Equal(t, seeded.ID, dupErr.ExistingRuleID)

		// The store is unchanged: same size, same fields.
		items, listErr := repo.List(ctx, db)
		assert.NoError(t, listErr)
		assert.Len(t, items, 1)
		assert.True(t, items[0].PriceCreditCard.Equal(decimal.NewFromInt(200)))
	})

	t.Run("DistinctTriplesAreIndependent", func(t *testing.T) {
		byGuests := newRule(node, period, category, 2)
		byCategory := newRule(node, period, otherCategory, 1)
		byPeriod := newRule(node, otherPeriod, category, 1)

		assert.NoError(t, repo.Insert(ctx, db, byGuests))
		assert.NoError(t, repo.Insert(ctx, db, byCategory))
		assert.NoError(t, repo.Insert(ctx, db, byPeriod))

		items, err := repo.List(ctx, db)
		assert.NoError(t, err)
		assert.Len(t, items, 4)
	})

	t.Run("UpdateOntoOccupiedTripleFails", func(t *testing.T) {
		moved, err := repo.FindByTriple(ctx, db, pricedomain.Triple{
			TariffPeriodID:          period,
			AccommodationCategoryID: category,
			NumberOfGuests:          2,
		})
		require.NoError(t, err)
		require.NotNil(t, moved)

		moved.NumberOfGuests = 1
		err = repo.Update(ctx, db, moved)

		var dupErr *pricedomain.DuplicateError
		assert.ErrorAs(t, err, &dupErr)
		assert.Equal(t, seeded.ID, dupErr.ExistingRuleID)
	})

	t.Run("UpdateInPlace", func(t *testing.T) {
		rule, err := repo.FindByID(ctx, db, seeded.ID)
		require.NoError(t, err)
		require.NotNil(t, rule)

		rule.PricePix = decimal.NewFromInt(170)
		rule.UpdatedAt = time.Now().UTC()
		assert.NoError(t, repo.Update(ctx, db, rule))

		reloaded, err := repo.FindByID(ctx, db, seeded.ID)
		assert.NoError(t, err)
		assert.True(t, reloaded.PricePix.Equal(decimal.NewFromInt(170)))
	})

	t.Run("UpdateMissingRule", func(t *testing.T) {
		ghost := newRule(node, period, category, 7)
		err := repo.Update(ctx, db, ghost)
		assert.ErrorIs(t, err, pricedomain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		victim := newRule(node, otherPeriod, otherCategory, 3)
		require.NoError(t, repo.Insert(ctx, db, victim))

		assert.NoError(t, repo.Delete(ctx, db, victim.ID))
		assert.ErrorIs(t, repo.Delete(ctx, db, victim.ID), pricedomain.ErrNotFound)

		gone, err := repo.FindByID(ctx, db, victim.ID)
		assert.NoError(t, err)
		assert.Nil(t, gone)
	})
}
