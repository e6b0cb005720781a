package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
	Preview(ctx context.Context, req PreviewRequest) (*Quote, error)
}

type CreateRequest struct {
	TariffPeriodID          string          `json:"tariff_period_id"`
	AccommodationCategoryID string          `json:"accommodation_category_id"`
	NumberOfGuests          int             `json:"number_of_guests"`
	PriceCreditCard         decimal.Decimal `json:"price_credit_card"`
	PricePix                decimal.Decimal `json:"price_pix"`
	BreakfastDiscountType   DiscountType    `json:"breakfast_discount_type"`
	BreakfastDiscountValue  decimal.Decimal `json:"breakfast_discount_value"`
	Metadata                map[string]any  `json:"metadata"`
}

// UpdateRequest carries partial fields; nil means keep the stored value.
type UpdateRequest struct {
	TariffPeriodID          *string          `json:"tariff_period_id"`
	AccommodationCategoryID *string          `json:"accommodation_category_id"`
	NumberOfGuests          *int             `json:"number_of_guests"`
	PriceCreditCard         *decimal.Decimal `json:"price_credit_card"`
	PricePix                *decimal.Decimal `json:"price_pix"`
	BreakfastDiscountType   *DiscountType    `json:"breakfast_discount_type"`
	BreakfastDiscountValue  *decimal.Decimal `json:"breakfast_discount_value"`
}

type Response struct {
	ID                      snowflake.ID    `json:"id"`
	TariffPeriodID          snowflake.ID    `json:"tariff_period_id"`
	AccommodationCategoryID snowflake.ID    `json:"accommodation_category_id"`
	NumberOfGuests          int             `json:"number_of_guests"`
	PriceCreditCard         decimal.Decimal `json:"price_credit_card"`
	PricePix                decimal.Decimal `json:"price_pix"`
	BreakfastDiscountType   DiscountType    `json:"breakfast_discount_type"`
	BreakfastDiscountValue  decimal.Decimal `json:"breakfast_discount_value"`
	Quote                   Quote           `json:"quote"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// SubmitRequest is a draft plus an optional edit target. When EditRuleID is
// set, the candidate whose triple matches that rule is applied as an update
// instead of a create.
type SubmitRequest struct {
	Draft      Draft   `json:"draft"`
	EditRuleID *string `json:"edit_rule_id"`
}

type OutcomeStatus string

var (
	OutcomeCreated OutcomeStatus = "CREATED"
	OutcomeUpdated OutcomeStatus = "UPDATED"
	OutcomeSkipped OutcomeStatus = "DUPLICATE_SKIPPED"
	OutcomeFailed  OutcomeStatus = "FAILED"
)

// Outcome is the per-candidate result of a bulk submission.
type Outcome struct {
	NumberOfGuests int           `json:"number_of_guests"`
	Status         OutcomeStatus `json:"status"`
	Rule           *Response     `json:"rule,omitempty"`
	ExistingRuleID snowflake.ID  `json:"existing_rule_id,omitempty"`
	Reason         string        `json:"reason,omitempty"`
}

// SubmitResult reports every candidate individually; a duplicate or a store
// failure for one guest count never aborts the rest of the batch.
type SubmitResult struct {
	Created []Outcome `json:"created"`
	Skipped []Outcome `json:"skipped"`
	Failed  []Outcome `json:"failed"`
}

type PreviewRequest struct {
	PriceCreditCard        decimal.Decimal `json:"price_credit_card"`
	PricePix               decimal.Decimal `json:"price_pix"`
	BreakfastDiscountType  DiscountType    `json:"breakfast_discount_type"`
	BreakfastDiscountValue decimal.Decimal `json:"breakfast_discount_value"`
}

var (
	ErrInvalidID              = errors.New("invalid_id")
	ErrInvalidPeriod          = errors.New("invalid_tariff_period")
	ErrInvalidCategory        = errors.New("invalid_accommodation_category")
	ErrInvalidGuests          = errors.New("invalid_number_of_guests")
	ErrGuestsExceedCapacity   = errors.New("guests_exceed_capacity")
	ErrInvalidCreditCardPrice = errors.New("invalid_credit_card_price")
	ErrInvalidPixPrice        = errors.New("invalid_pix_price")
	ErrPixNotCheaper          = errors.New("pix_not_cheaper_than_credit_card")
	ErrInvalidDiscountType    = errors.New("invalid_discount_type")
	ErrNegativeDiscount       = errors.New("negative_discount")
	ErrPercentageOutOfRange   = errors.New("percentage_out_of_range")
	ErrNotFound               = errors.New("not_found")
)

// DuplicateError reports a triple collision with an already stored rule.
// ExistingRuleID may be zero when the conflicting rule was deleted between the
// failed insert and the follow-up lookup.
type DuplicateError struct {
	Key            Triple
	ExistingRuleID snowflake.ID
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate price rule for period=%d category=%d guests=%d",
		e.Key.TariffPeriodID, e.Key.AccommodationCategoryID, e.Key.NumberOfGuests)
}

// ValidationFailedError aborts a bulk submission before anything reaches the
// store. It carries the complete violation set, never just the first.
type ValidationFailedError struct {
	Violations []Violation
}

func (e *ValidationFailedError) Error() string { return "draft validation failed" }
