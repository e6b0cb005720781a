package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ValidateDraft runs every structural check on a draft and returns the
// complete set of violations, never just the first. It knows nothing about
// stored rules; duplicate detection belongs to the repository so it can be
// re-run per candidate during a batch.
//
// maxCapacity is the category's occupancy bound; pass zero when the category
// is not resolved yet and the capacity check is skipped.
func ValidateDraft(d Draft, maxCapacity int) []Violation {
	var violations []Violation

	if strings.TrimSpace(d.TariffPeriodID) == "" {
		violations = append(violations, Violation{Code: MissingPeriod})
	}
	if strings.TrimSpace(d.AccommodationCategoryID) == "" {
		violations = append(violations, Violation{Code: MissingCategory})
	}

	active := 0
	for _, entry := range d.GuestPrices {
		if !entry.Configured() {
			// 0/0 means the guest count was never filled in.
			continue
		}

		if !entry.PriceCreditCard.IsPositive() {
			violations = append(violations, Violation{Code: InvalidCreditPrice, NumberOfGuests: entry.NumberOfGuests})
		}
		if !entry.PricePix.IsPositive() {
			violations = append(violations, Violation{Code: InvalidPixPrice, NumberOfGuests: entry.NumberOfGuests})
		}
		if entry.PriceCreditCard.IsPositive() && entry.PricePix.IsPositive() &&
			entry.PricePix.GreaterThanOrEqual(entry.PriceCreditCard) {
			violations = append(violations, Violation{Code: PixNotCheaper, NumberOfGuests: entry.NumberOfGuests})
		}

		if entry.NumberOfGuests < 1 {
			violations = append(violations, Violation{Code: GuestsOutOfRange, NumberOfGuests: entry.NumberOfGuests})
		} else if maxCapacity > 0 && entry.NumberOfGuests > maxCapacity {
			violations = append(violations, Violation{Code: GuestsExceedCapacity, NumberOfGuests: entry.NumberOfGuests})
		}

		if entry.Active() {
			active++
		}
	}

	if active == 0 {
		violations = append(violations, Violation{Code: NoActivePrices})
	}

	switch d.BreakfastDiscountType {
	case Fixed:
		if d.BreakfastDiscountValue.IsNegative() {
			violations = append(violations, Violation{Code: NegativeDiscount})
		}
	case Percentage:
		if d.BreakfastDiscountValue.IsNegative() {
			violations = append(violations, Violation{Code: NegativeDiscount})
		} else if d.BreakfastDiscountValue.GreaterThan(oneHundred) {
			violations = append(violations, Violation{Code: PercentageOutOfRange})
		}
	default:
		violations = append(violations, Violation{Code: InvalidDiscountType})
	}

	return violations
}

// ParseDiscountType normalizes a discount type value.
func ParseDiscountType(value DiscountType) (DiscountType, error) {
	switch strings.ToUpper(strings.TrimSpace(string(value))) {
	case string(Fixed):
		return Fixed, nil
	case string(Percentage):
		return Percentage, nil
	default:
		return "", ErrInvalidDiscountType
	}
}
