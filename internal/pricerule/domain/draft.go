package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Draft is the unvalidated user input for one period/category: a price pair
// per guest count plus one shared breakfast discount policy. A guest-price
// entry is "active" only when both prices are positive; a 0/0 entry means
// "not configured" and is skipped, while a single zero is a misconfiguration.
type Draft struct {
	TariffPeriodID          string          `json:"tariff_period_id"`
	AccommodationCategoryID string          `json:"accommodation_category_id"`
	GuestPrices             []GuestPrice    `json:"guest_prices"`
	BreakfastDiscountType   DiscountType    `json:"breakfast_discount_type"`
	BreakfastDiscountValue  decimal.Decimal `json:"breakfast_discount_value"`
}

type GuestPrice struct {
	NumberOfGuests  int             `json:"number_of_guests"`
	PriceCreditCard decimal.Decimal `json:"price_credit_card"`
	PricePix        decimal.Decimal `json:"price_pix"`
}

// Active reports whether this entry holds a usable price pair.
func (g GuestPrice) Active() bool {
	return g.PriceCreditCard.IsPositive() && g.PricePix.IsPositive()
}

// Configured reports whether the entry was touched at all. A 0/0 pair is an
// untouched form row, not an error.
func (g GuestPrice) Configured() bool {
	return !g.PriceCreditCard.IsZero() || !g.PricePix.IsZero()
}

type ViolationCode string

var (
	MissingPeriod        ViolationCode = "missing_period"
	MissingCategory      ViolationCode = "missing_category"
	InvalidCreditPrice   ViolationCode = "invalid_credit_price"
	InvalidPixPrice      ViolationCode = "invalid_pix_price"
	PixNotCheaper        ViolationCode = "pix_not_cheaper_than_credit"
	NoActivePrices       ViolationCode = "no_active_prices"
	NegativeDiscount     ViolationCode = "negative_discount"
	PercentageOutOfRange ViolationCode = "percentage_out_of_range"
	InvalidDiscountType  ViolationCode = "invalid_discount_type"
	GuestsOutOfRange     ViolationCode = "guests_out_of_range"
	GuestsExceedCapacity ViolationCode = "guests_exceed_capacity"
)

// Violation is one structural problem with a draft. NumberOfGuests is zero for
// draft-level violations and set for per-entry ones.
type Violation struct {
	Code           ViolationCode `json:"code"`
	NumberOfGuests int           `json:"number_of_guests,omitempty"`
}

func (v Violation) String() string {
	if v.NumberOfGuests > 0 {
		return fmt.Sprintf("%s (guests=%d)", v.Code, v.NumberOfGuests)
	}
	return string(v.Code)
}
