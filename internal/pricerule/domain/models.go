package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DiscountType selects how the breakfast discount is applied when pricing a
// stay without breakfast.
type DiscountType string

var (
	Fixed      DiscountType = "FIXED"
	Percentage DiscountType = "PERCENTAGE"
)

// PriceRule configures the nightly price for one
// (tariff period, accommodation category, guest count) combination.
// The triple is unique: the price_rules table carries a composite unique
// index over the three columns, and Insert relies on it for atomicity.
type PriceRule struct {
	ID                      snowflake.ID      `json:"id" gorm:"primaryKey"`
	TariffPeriodID          snowflake.ID      `json:"tariff_period_id" gorm:"column:tariff_period_id;not null;uniqueIndex:idx_price_rules_triple"`
	AccommodationCategoryID snowflake.ID      `json:"accommodation_category_id" gorm:"column:accommodation_category_id;not null;uniqueIndex:idx_price_rules_triple"`
	NumberOfGuests          int               `json:"number_of_guests" gorm:"not null;uniqueIndex:idx_price_rules_triple"`
	PriceCreditCard         decimal.Decimal   `json:"price_credit_card" gorm:"type:numeric;not null"`
	PricePix                decimal.Decimal   `json:"price_pix" gorm:"type:numeric;not null"`
	BreakfastDiscountType   DiscountType      `json:"breakfast_discount_type" gorm:"type:text;not null"`
	BreakfastDiscountValue  decimal.Decimal   `json:"breakfast_discount_value" gorm:"type:numeric;not null"`
	Metadata                datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt               time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt               time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PriceRule) TableName() string { return "price_rules" }

// Triple is the uniqueness key of a price rule.
type Triple struct {
	TariffPeriodID          snowflake.ID
	AccommodationCategoryID snowflake.ID
	NumberOfGuests          int
}

func (r PriceRule) Triple() Triple {
	return Triple{
		TariffPeriodID:          r.TariffPeriodID,
		AccommodationCategoryID: r.AccommodationCategoryID,
		NumberOfGuests:          r.NumberOfGuests,
	}
}
