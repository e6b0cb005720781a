package service_test

import (
	"context"
	"testing"

	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) createRequest(guests int, credit, pix int64) pricedomain.CreateRequest {
	return pricedomain.CreateRequest{
		TariffPeriodID:          f.period.ID.String(),
		AccommodationCategoryID: f.category.ID.String(),
		NumberOfGuests:          guests,
		PriceCreditCard:         decimal.NewFromInt(credit),
		PricePix:                decimal.NewFromInt(pix),
		BreakfastDiscountType:   pricedomain.Percentage,
		BreakfastDiscountValue:  decimal.NewFromInt(10),
	}
}

func TestServiceCreate(t *testing.T) {
	t.Run("CreatesAndDerivesQuote", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.svc.Create(context.Background(), f.createRequest(2, 200, 180))
		require.NoError(t, err)

		assert.NotZero(t, resp.ID)
		assert.True(t, resp.Quote.WithBreakfast.CreditCard.Equal(decimal.NewFromInt(200)))
		assert.True(t, resp.Quote.WithoutBreakfast.CreditCard.Equal(decimal.NewFromInt(180)))
		assert.True(t, resp.Quote.WithoutBreakfast.Pix.Equal(decimal.NewFromInt(162)))
	})

	t.Run("RejectsUnknownPeriod", func(t *testing.T) {
		f := newFixture(t)

		req := f.createRequest(1, 200, 180)
		req.TariffPeriodID = f.node.Generate().String()

		_, err := f.svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, pricedomain.ErrInvalidPeriod)
	})

	t.Run("RejectsGuestsBeyondCapacity", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), f.createRequest(4, 200, 180))
		assert.ErrorIs(t, err, pricedomain.ErrGuestsExceedCapacity)
	})

	t.Run("RejectsPixNotCheaper", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(context.Background(), f.createRequest(1, 180, 180))
		assert.ErrorIs(t, err, pricedomain.ErrPixNotCheaper)
	})

	t.Run("DuplicateTriple", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		created, err := f.svc.Create(ctx, f.createRequest(1, 200, 180))
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, f.createRequest(1, 220, 190))
		var dupErr *pricedomain.DuplicateError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, created.ID, dupErr.ExistingRuleID)
	})
}

func TestServiceUpdate(t *testing.T) {
	t.Run("PartialFieldMerge", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		created, err := f.svc.Create(ctx, f.createRequest(1, 200, 180))
		require.NoError(t, err)

		newPix := decimal.NewFromInt(170)
		resp, err := f.svc.Update(ctx, created.ID.String(), pricedomain.UpdateRequest{
			PricePix: &newPix,
		})
		require.NoError(t, err)

		assert.True(t, resp.PricePix.Equal(newPix))
		assert.True(t, resp.PriceCreditCard.Equal(decimal.NewFromInt(200)))
		assert.Equal(t, 1, resp.NumberOfGuests)
	})

	t.Run("TripleChangeOntoOtherRule", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		first, err := f.svc.Create(ctx, f.createRequest(1, 200, 180))
		require.NoError(t, err)
		second, err := f.svc.Create(ctx, f.createRequest(2, 260, 240))
		require.NoError(t, err)

		guests := 1
		_, err = f.svc.Update(ctx, second.ID.String(), pricedomain.UpdateRequest{
			NumberOfGuests: &guests,
		})

		var dupErr *pricedomain.DuplicateError
		require.ErrorAs(t, err, &dupErr)
		assert.Equal(t, first.ID, dupErr.ExistingRuleID)
	})

	t.Run("UnchangedTripleNeverConflictsWithItself", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		created, err := f.svc.Create(ctx, f.createRequest(1, 200, 180))
		require.NoError(t, err)

		guests := 1
		credit := decimal.NewFromInt(210)
		_, err = f.svc.Update(ctx, created.ID.String(), pricedomain.UpdateRequest{
			NumberOfGuests:  &guests,
			PriceCreditCard: &credit,
		})
		assert.NoError(t, err)
	})

	t.Run("MergedFieldsAreRevalidated", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		created, err := f.svc.Create(ctx, f.createRequest(1, 200, 180))
		require.NoError(t, err)

		// Raising pix above the stored credit-card price is invalid even
		// though the credit-card field itself is untouched.
		pix := decimal.NewFromInt(250)
		_, err = f.svc.Update(ctx, created.ID.String(), pricedomain.UpdateRequest{
			PricePix: &pix,
		})
		assert.ErrorIs(t, err, pricedomain.ErrPixNotCheaper)
	})

	t.Run("MissingRule", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), f.node.Generate().String(), pricedomain.UpdateRequest{})
		assert.ErrorIs(t, err, pricedomain.ErrNotFound)
	})
}

func TestServiceDeleteAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createRequest(1, 200, 180))
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, f.svc.Delete(ctx, created.ID.String()))
	assert.ErrorIs(t, f.svc.Delete(ctx, created.ID.String()), pricedomain.ErrNotFound)

	_, err = f.svc.Get(ctx, created.ID.String())
	assert.ErrorIs(t, err, pricedomain.ErrNotFound)
}
