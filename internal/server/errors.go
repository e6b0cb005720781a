package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/hotelia/tarify/internal/catalog/domain"
	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type           string                  `json:"type"`
	Message        string                  `json:"message"`
	Violations     []pricedomain.Violation `json:"violations,omitempty"`
	ExistingRuleID string                  `json:"existing_rule_id,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware converts domain errors collected on the context
// into a structured JSON response. Handlers call AbortWithError and never
// write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var validationErr *pricedomain.ValidationFailedError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, errorPayload{
			Type:       "validation_failed",
			Message:    "draft validation failed",
			Violations: validationErr.Violations,
		}
	}

	var dup *pricedomain.DuplicateError
	if errors.As(err, &dup) {
		payload := errorPayload{
			Type:    "duplicate_rule",
			Message: err.Error(),
		}
		if dup.ExistingRuleID != 0 {
			payload.ExistingRuleID = dup.ExistingRuleID.String()
		}
		return http.StatusConflict, payload
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{Type: "invalid_request", Message: err.Error()}
	case errors.Is(err, pricedomain.ErrNotFound), errors.Is(err, catalogdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{Type: "not_found", Message: err.Error()}
	case errors.Is(err, pricedomain.ErrInvalidID),
		errors.Is(err, pricedomain.ErrInvalidPeriod),
		errors.Is(err, pricedomain.ErrInvalidCategory),
		errors.Is(err, pricedomain.ErrInvalidGuests),
		errors.Is(err, pricedomain.ErrGuestsExceedCapacity),
		errors.Is(err, pricedomain.ErrInvalidCreditCardPrice),
		errors.Is(err, pricedomain.ErrInvalidPixPrice),
		errors.Is(err, pricedomain.ErrPixNotCheaper),
		errors.Is(err, pricedomain.ErrInvalidDiscountType),
		errors.Is(err, pricedomain.ErrNegativeDiscount),
		errors.Is(err, pricedomain.ErrPercentageOutOfRange),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidDateRange),
		errors.Is(err, catalogdomain.ErrInvalidMinimumNights),
		errors.Is(err, catalogdomain.ErrInvalidMaxCapacity):
		return http.StatusBadRequest, errorPayload{Type: "invalid_request", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorPayload{Type: "internal_error", Message: "internal error"}
	}
}

func invalidRequestError() error {
	return ErrInvalidRequest
}
