package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"github.com/hotelia/tarify/pkg/db"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() pricedomain.Repository {
	return &repo{}
}

const ruleColumns = `id, tariff_period_id, accommodation_category_id, number_of_guests,
	price_credit_card, price_pix, breakfast_discount_type, breakfast_discount_value,
	metadata, created_at, updated_at`

func (r *repo) List(ctx context.Context, conn *gorm.DB) ([]pricedomain.PriceRule, error) {
	var items []pricedomain.PriceRule
	err := conn.WithContext(ctx).Raw(
		`SELECT `+ruleColumns+` FROM price_rules
		 ORDER BY tariff_period_id, accommodation_category_id, number_of_guests ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindByID(ctx context.Context, conn *gorm.DB, id snowflake.ID) (*pricedomain.PriceRule, error) {
	var rule pricedomain.PriceRule
	err := conn.WithContext(ctx).Raw(
		`SELECT `+ruleColumns+` FROM price_rules WHERE id = ?`,
		id,
	).Scan(&rule).Error
	if err != nil {
		return nil, err
	}
	if rule.ID == 0 {
		return nil, nil
	}
	return &rule, nil
}

// FindByTriple resolves a rule through the composite unique index, so the
// lookup stays indexed no matter how large the rule set grows.
func (r *repo) FindByTriple(ctx context.Context, conn *gorm.DB, key pricedomain.Triple) (*pricedomain.PriceRule, error) {
	var rule pricedomain.PriceRule
	err := conn.WithContext(ctx).Raw(
		`SELECT `+ruleColumns+` FROM price_rules
		 WHERE tariff_period_id = ? AND accommodation_category_id = ? AND number_of_guests = ?`,
		key.TariffPeriodID,
		key.AccommodationCategoryID,
		key.NumberOfGuests,
	).Scan(&rule).Error
	if err != nil {
		return nil, err
	}
	if rule.ID == 0 {
		return nil, nil
	}
	return &rule, nil
}

// Insert writes the rule in one statement and lets the unique index arbitrate
// races: a concurrent submission of the same triple surfaces here as a
// duplicate-key error, never as two stored rules.
func (r *repo) Insert(ctx context.Context, conn *gorm.DB, rule *pricedomain.PriceRule) error {
	err := conn.WithContext(ctx).Exec(
		`INSERT INTO price_rules (`+ruleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID,
		rule.TariffPeriodID,
		rule.AccommodationCategoryID,
		rule.NumberOfGuests,
		rule.PriceCreditCard,
		rule.PricePix,
		rule.BreakfastDiscountType,
		rule.BreakfastDiscountValue,
		rule.Metadata,
		rule.CreatedAt,
		rule.UpdatedAt,
	).Error
	if err == nil {
		return nil
	}
	if db.IsDuplicateKeyErr(err) {
		return r.duplicateError(ctx, conn, rule.Triple())
	}
	return err
}

func (r *repo) Update(ctx context.Context, conn *gorm.DB, rule *pricedomain.PriceRule) error {
	result := conn.WithContext(ctx).Exec(
		`UPDATE price_rules SET
			tariff_period_id = ?, accommodation_category_id = ?, number_of_guests = ?,
			price_credit_card = ?, price_pix = ?,
			breakfast_discount_type = ?, breakfast_discount_value = ?,
			metadata = ?, updated_at = ?
		 WHERE id = ?`,
		rule.TariffPeriodID,
		rule.AccommodationCategoryID,
		rule.NumberOfGuests,
		rule.PriceCreditCard,
		rule.PricePix,
		rule.BreakfastDiscountType,
		rule.BreakfastDiscountValue,
		rule.Metadata,
		rule.UpdatedAt,
		rule.ID,
	)
	if result.Error != nil {
		if db.IsDuplicateKeyErr(result.Error) {
			return r.duplicateError(ctx, conn, rule.Triple())
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pricedomain.ErrNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, conn *gorm.DB, id snowflake.ID) error {
	result := conn.WithContext(ctx).Exec(`DELETE FROM price_rules WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pricedomain.ErrNotFound
	}
	return nil
}

// duplicateError re-reads the conflicting rule to report its id. The id may
// be zero if the rule vanished between the failed write and this lookup; the
// conflict itself is still reported.
func (r *repo) duplicateError(ctx context.Context, conn *gorm.DB, key pricedomain.Triple) error {
	dup := &pricedomain.DuplicateError{Key: key}
	if existing, findErr := r.FindByTriple(ctx, conn, key); findErr == nil && existing != nil {
		dup.ExistingRuleID = existing.ID
	}
	return dup
}
