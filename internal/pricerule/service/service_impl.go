package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/hotelia/tarify/internal/catalog/domain"
	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        pricedomain.Repository
	CatalogRepo catalogdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        pricedomain.Repository
	catalogRepo catalogdomain.Repository
}

func New(p Params) pricedomain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricerule.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		catalogRepo: p.CatalogRepo,
	}
}

func (s *Service) Create(ctx context.Context, req pricedomain.CreateRequest) (*pricedomain.Response, error) {
	periodID, category, err := s.resolveReferences(ctx, req.TariffPeriodID, req.AccommodationCategoryID)
	if err != nil {
		return nil, err
	}

	if req.NumberOfGuests < 1 {
		return nil, pricedomain.ErrInvalidGuests
	}
	if req.NumberOfGuests > category.MaxCapacity {
		return nil, pricedomain.ErrGuestsExceedCapacity
	}

	if err := validatePricePair(req.PriceCreditCard, req.PricePix); err != nil {
		return nil, err
	}

	discountType, err := pricedomain.ParseDiscountType(req.BreakfastDiscountType)
	if err != nil {
		return nil, err
	}
	if err := validateDiscount(discountType, req.BreakfastDiscountValue); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entity := &pricedomain.PriceRule{
		ID:                      s.genID.Generate(),
		TariffPeriodID:          periodID,
		AccommodationCategoryID: category.ID,
		NumberOfGuests:          req.NumberOfGuests,
		PriceCreditCard:         req.PriceCreditCard,
		PricePix:                req.PricePix,
		BreakfastDiscountType:   discountType,
		BreakfastDiscountValue:  req.BreakfastDiscountValue,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	return toResponse(entity), nil
}

// Update merges partial fields into the stored rule. A changed triple that
// lands on a different rule is a duplicate; an unchanged triple never
// conflicts with the rule itself.
func (s *Service) Update(ctx context.Context, id string, req pricedomain.UpdateRequest) (*pricedomain.Response, error) {
	ruleID, err := parseID(id)
	if err != nil {
		return nil, pricedomain.ErrInvalidID
	}

	existing, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, pricedomain.ErrNotFound
	}

	merged, err := s.mergeUpdate(ctx, *existing, req)
	if err != nil {
		return nil, err
	}

	if merged.Triple() != existing.Triple() {
		collision, err := s.repo.FindByTriple(ctx, s.db, merged.Triple())
		if err != nil {
			return nil, err
		}
		if collision != nil && collision.ID != existing.ID {
			return nil, &pricedomain.DuplicateError{Key: merged.Triple(), ExistingRuleID: collision.ID}
		}
	}

	merged.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, &merged); err != nil {
		return nil, err
	}

	return toResponse(&merged), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ruleID, err := parseID(id)
	if err != nil {
		return pricedomain.ErrInvalidID
	}
	return s.repo.Delete(ctx, s.db, ruleID)
}

func (s *Service) Get(ctx context.Context, id string) (*pricedomain.Response, error) {
	ruleID, err := parseID(id)
	if err != nil {
		return nil, pricedomain.ErrInvalidID
	}

	entity, err := s.repo.FindByID(ctx, s.db, ruleID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, pricedomain.ErrNotFound
	}
	return toResponse(entity), nil
}

func (s *Service) List(ctx context.Context) ([]pricedomain.Response, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]pricedomain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, *toResponse(&items[i]))
	}
	return resp, nil
}

// Preview derives the four effective prices without touching the store. It
// goes through the same Derive as post-commit display.
func (s *Service) Preview(ctx context.Context, req pricedomain.PreviewRequest) (*pricedomain.Quote, error) {
	if err := validatePricePair(req.PriceCreditCard, req.PricePix); err != nil {
		return nil, err
	}
	discountType, err := pricedomain.ParseDiscountType(req.BreakfastDiscountType)
	if err != nil {
		return nil, err
	}
	if err := validateDiscount(discountType, req.BreakfastDiscountValue); err != nil {
		return nil, err
	}

	quote := pricedomain.Derive(pricedomain.PriceRule{
		PriceCreditCard:        req.PriceCreditCard,
		PricePix:               req.PricePix,
		BreakfastDiscountType:  discountType,
		BreakfastDiscountValue: req.BreakfastDiscountValue,
	})
	return &quote, nil
}

func (s *Service) mergeUpdate(ctx context.Context, base pricedomain.PriceRule, req pricedomain.UpdateRequest) (pricedomain.PriceRule, error) {
	if req.TariffPeriodID != nil {
		periodID, err := parseID(*req.TariffPeriodID)
		if err != nil {
			return base, pricedomain.ErrInvalidPeriod
		}
		period, err := s.catalogRepo.FindPeriodByID(ctx, s.db, periodID)
		if err != nil {
			return base, err
		}
		if period == nil {
			return base, pricedomain.ErrInvalidPeriod
		}
		base.TariffPeriodID = periodID
	}

	if req.AccommodationCategoryID != nil {
		categoryID, err := parseID(*req.AccommodationCategoryID)
		if err != nil {
			return base, pricedomain.ErrInvalidCategory
		}
		base.AccommodationCategoryID = categoryID
	}
	category, err := s.catalogRepo.FindCategoryByID(ctx, s.db, base.AccommodationCategoryID)
	if err != nil {
		return base, err
	}
	if req.AccommodationCategoryID != nil && category == nil {
		return base, pricedomain.ErrInvalidCategory
	}

	if req.NumberOfGuests != nil {
		base.NumberOfGuests = *req.NumberOfGuests
	}
	if base.NumberOfGuests < 1 {
		return base, pricedomain.ErrInvalidGuests
	}
	if category != nil && base.NumberOfGuests > category.MaxCapacity {
		return base, pricedomain.ErrGuestsExceedCapacity
	}

	if req.PriceCreditCard != nil {
		base.PriceCreditCard = *req.PriceCreditCard
	}
	if req.PricePix != nil {
		base.PricePix = *req.PricePix
	}
	if err := validatePricePair(base.PriceCreditCard, base.PricePix); err != nil {
		return base, err
	}

	if req.BreakfastDiscountType != nil {
		discountType, err := pricedomain.ParseDiscountType(*req.BreakfastDiscountType)
		if err != nil {
			return base, err
		}
		base.BreakfastDiscountType = discountType
	}
	if req.BreakfastDiscountValue != nil {
		base.BreakfastDiscountValue = *req.BreakfastDiscountValue
	}
	if err := validateDiscount(base.BreakfastDiscountType, base.BreakfastDiscountValue); err != nil {
		return base, err
	}

	return base, nil
}

func (s *Service) resolveReferences(ctx context.Context, periodID, categoryID string) (snowflake.ID, *catalogdomain.AccommodationCategory, error) {
	parsedPeriodID, err := parseID(periodID)
	if err != nil {
		return 0, nil, pricedomain.ErrInvalidPeriod
	}
	parsedCategoryID, err := parseID(categoryID)
	if err != nil {
		return 0, nil, pricedomain.ErrInvalidCategory
	}

	period, err := s.catalogRepo.FindPeriodByID(ctx, s.db, parsedPeriodID)
	if err != nil {
		return 0, nil, err
	}
	if period == nil {
		return 0, nil, pricedomain.ErrInvalidPeriod
	}

	category, err := s.catalogRepo.FindCategoryByID(ctx, s.db, parsedCategoryID)
	if err != nil {
		return 0, nil, err
	}
	if category == nil {
		return 0, nil, pricedomain.ErrInvalidCategory
	}

	return parsedPeriodID, category, nil
}

func toResponse(rule *pricedomain.PriceRule) *pricedomain.Response {
	return &pricedomain.Response{
		ID:                      rule.ID,
		TariffPeriodID:          rule.TariffPeriodID,
		AccommodationCategoryID: rule.AccommodationCategoryID,
		NumberOfGuests:          rule.NumberOfGuests,
		PriceCreditCard:         rule.PriceCreditCard,
		PricePix:                rule.PricePix,
		BreakfastDiscountType:   rule.BreakfastDiscountType,
		BreakfastDiscountValue:  rule.BreakfastDiscountValue,
		Quote:                   pricedomain.Derive(*rule),
		CreatedAt:               rule.CreatedAt,
		UpdatedAt:               rule.UpdatedAt,
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}

func validatePricePair(creditCard, pix decimal.Decimal) error {
	if !creditCard.IsPositive() {
		return pricedomain.ErrInvalidCreditCardPrice
	}
	if !pix.IsPositive() {
		return pricedomain.ErrInvalidPixPrice
	}
	if pix.GreaterThanOrEqual(creditCard) {
		return pricedomain.ErrPixNotCheaper
	}
	return nil
}

func validateDiscount(discountType pricedomain.DiscountType, value decimal.Decimal) error {
	if value.IsNegative() {
		return pricedomain.ErrNegativeDiscount
	}
	if discountType == pricedomain.Percentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return pricedomain.ErrPercentageOutOfRange
	}
	return nil
}
