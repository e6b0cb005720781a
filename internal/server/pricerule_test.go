package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/hotelia/tarify/internal/config"
	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePriceRuleService struct {
	pricedomain.Service

	submitResult *pricedomain.SubmitResult
	submitErr    error
	createErr    error
}

func (f *fakePriceRuleService) Submit(ctx context.Context, req pricedomain.SubmitRequest) (*pricedomain.SubmitResult, error) {
	_ = ctx
	_ = req
	return f.submitResult, f.submitErr
}

func (f *fakePriceRuleService) Create(ctx context.Context, req pricedomain.CreateRequest) (*pricedomain.Response, error) {
	_ = ctx
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &pricedomain.Response{
		ID:              snowflake.ID(42),
		NumberOfGuests:  req.NumberOfGuests,
		PriceCreditCard: req.PriceCreditCard,
		PricePix:        req.PricePix,
	}, nil
}

func (f *fakePriceRuleService) Preview(ctx context.Context, req pricedomain.PreviewRequest) (*pricedomain.Quote, error) {
	_ = ctx
	quote := pricedomain.Derive(pricedomain.PriceRule{
		PriceCreditCard:        req.PriceCreditCard,
		PricePix:               req.PricePix,
		BreakfastDiscountType:  req.BreakfastDiscountType,
		BreakfastDiscountValue: req.BreakfastDiscountValue,
	})
	return &quote, nil
}

func newTestServer(svc pricedomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	s := &Server{
		engine:       r,
		cfg:          config.Config{Environment: "test"},
		priceRuleSvc: svc,
	}
	s.RegisterAPIRoutes()
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitPriceRulesHandler(t *testing.T) {
	t.Run("ReturnsPerCandidateOutcomes", func(t *testing.T) {
		svc := &fakePriceRuleService{
			submitResult: &pricedomain.SubmitResult{
				Created: []pricedomain.Outcome{{NumberOfGuests: 3, Status: pricedomain.OutcomeCreated}},
				Skipped: []pricedomain.Outcome{
					{NumberOfGuests: 1, Status: pricedomain.OutcomeSkipped, ExistingRuleID: snowflake.ID(7)},
					{NumberOfGuests: 2, Status: pricedomain.OutcomeSkipped, ExistingRuleID: snowflake.ID(8)},
				},
				Failed: []pricedomain.Outcome{},
			},
		}
		r := newTestServer(svc)

		w := doJSON(t, r, http.MethodPost, "/api/v1/price-rules/batch", pricedomain.SubmitRequest{})

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data pricedomain.SubmitResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Data.Created, 1)
		assert.Len(t, body.Data.Skipped, 2)
	})

	t.Run("ValidationFailureIs400WithFullList", func(t *testing.T) {
		svc := &fakePriceRuleService{
			submitErr: &pricedomain.ValidationFailedError{
				Violations: []pricedomain.Violation{
					{Code: pricedomain.PixNotCheaper, NumberOfGuests: 1},
					{Code: pricedomain.NegativeDiscount},
				},
			},
		}
		r := newTestServer(svc)

		w := doJSON(t, r, http.MethodPost, "/api/v1/price-rules/batch", pricedomain.SubmitRequest{})

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Error struct {
				Type       string                  `json:"type"`
				Violations []pricedomain.Violation `json:"violations"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "validation_failed", body.Error.Type)
		assert.Len(t, body.Error.Violations, 2)
	})
}

func TestCreatePriceRuleHandler(t *testing.T) {
	t.Run("DuplicateIs409WithExistingID", func(t *testing.T) {
		svc := &fakePriceRuleService{
			createErr: &pricedomain.DuplicateError{
				Key:            pricedomain.Triple{NumberOfGuests: 2},
				ExistingRuleID: snowflake.ID(99),
			},
		}
		r := newTestServer(svc)

		w := doJSON(t, r, http.MethodPost, "/api/v1/price-rules", createPriceRuleRequest{
			TariffPeriodID:          "1",
			AccommodationCategoryID: "2",
			NumberOfGuests:          2,
		})

		assert.Equal(t, http.StatusConflict, w.Code)

		var body struct {
			Error struct {
				Type           string `json:"type"`
				ExistingRuleID string `json:"existing_rule_id"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "duplicate_rule", body.Error.Type)
		assert.Equal(t, "99", body.Error.ExistingRuleID)
	})

	t.Run("NotFoundIs404", func(t *testing.T) {
		svc := &fakePriceRuleService{createErr: pricedomain.ErrNotFound}
		r := newTestServer(svc)

		w := doJSON(t, r, http.MethodPost, "/api/v1/price-rules", createPriceRuleRequest{})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPreviewPriceRuleHandler(t *testing.T) {
	r := newTestServer(&fakePriceRuleService{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/price-rules/preview", pricedomain.PreviewRequest{
		PriceCreditCard:        decimal.NewFromInt(200),
		PricePix:               decimal.NewFromInt(180),
		BreakfastDiscountType:  pricedomain.Fixed,
		BreakfastDiscountValue: decimal.NewFromInt(25),
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data pricedomain.Quote `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.WithoutBreakfast.CreditCard.Equal(decimal.NewFromInt(175)))
	assert.True(t, body.Data.WithoutBreakfast.Pix.Equal(decimal.NewFromInt(155)))
}
