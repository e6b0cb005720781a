package domain

import "github.com/shopspring/decimal"

// PricePair is one displayable amount per payment method.
type PricePair struct {
	CreditCard decimal.Decimal `json:"credit_card"`
	Pix        decimal.Decimal `json:"pix"`
}

// Quote holds the four effective prices derived from one rule.
type Quote struct {
	WithBreakfast    PricePair `json:"with_breakfast"`
	WithoutBreakfast PricePair `json:"without_breakfast"`
}

// Derive maps a rule to its four effective prices. Pure and deterministic;
// the live preview and the post-commit display both go through here so the
// two can never diverge.
func Derive(rule PriceRule) Quote {
	return Quote{
		WithBreakfast: PricePair{
			CreditCard: rule.PriceCreditCard,
			Pix:        rule.PricePix,
		},
		WithoutBreakfast: PricePair{
			CreditCard: ApplyBreakfastDiscount(rule.PriceCreditCard, rule.BreakfastDiscountType, rule.BreakfastDiscountValue),
			Pix:        ApplyBreakfastDiscount(rule.PricePix, rule.BreakfastDiscountType, rule.BreakfastDiscountValue),
		},
	}
}

// ApplyBreakfastDiscount computes the breakfast-removed price. The result is
// floored at zero: a fixed discount larger than the base yields a free
// breakfast removal, never a negative price.
func ApplyBreakfastDiscount(base decimal.Decimal, discountType DiscountType, value decimal.Decimal) decimal.Decimal {
	var discounted decimal.Decimal
	switch discountType {
	case Percentage:
		discounted = base.Sub(base.Mul(value).Div(oneHundred))
	default:
		discounted = base.Sub(value)
	}

	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted
}
