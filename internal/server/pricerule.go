package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"github.com/shopspring/decimal"
)

type createPriceRuleRequest struct {
	TariffPeriodID          string                   `json:"tariff_period_id"`
	AccommodationCategoryID string                   `json:"accommodation_category_id"`
	NumberOfGuests          int                      `json:"number_of_guests"`
	PriceCreditCard         decimal.Decimal          `json:"price_credit_card"`
	PricePix                decimal.Decimal          `json:"price_pix"`
	BreakfastDiscountType   pricedomain.DiscountType `json:"breakfast_discount_type"`
	BreakfastDiscountValue  decimal.Decimal          `json:"breakfast_discount_value"`
	Metadata                map[string]any           `json:"metadata"`
}

func (s *Server) CreatePriceRule(c *gin.Context) {
	var req createPriceRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.priceRuleSvc.Create(c.Request.Context(), pricedomain.CreateRequest{
		TariffPeriodID:          strings.TrimSpace(req.TariffPeriodID),
		AccommodationCategoryID: strings.TrimSpace(req.AccommodationCategoryID),
		NumberOfGuests:          req.NumberOfGuests,
		PriceCreditCard:         req.PriceCreditCard,
		PricePix:                req.PricePix,
		BreakfastDiscountType:   req.BreakfastDiscountType,
		BreakfastDiscountValue:  req.BreakfastDiscountValue,
		Metadata:                req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPriceRules(c *gin.Context) {
	resp, err := s.priceRuleSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPriceRule(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.priceRuleSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePriceRule(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req pricedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.priceRuleSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePriceRule(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.priceRuleSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

// SubmitPriceRules applies one draft as a batch of per-guest-count rules and
// reports per-candidate outcomes. Duplicates within the batch are reported,
// not raised; the UI shows aggregate counts.
func (s *Server) SubmitPriceRules(c *gin.Context) {
	var req pricedomain.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.priceRuleSvc.Submit(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) PreviewPriceRule(c *gin.Context) {
	var req pricedomain.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.priceRuleSvc.Preview(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": quote})
}
