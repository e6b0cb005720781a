package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"go.uber.org/zap"
)

// Submit expands one validated draft into a candidate rule per active guest
// count and applies them sequentially in ascending guest-count order. Each
// candidate observes the store as of the previous commit, so two candidates
// in the same batch can only collide if the caller submitted the same guest
// count twice; the second one is then skipped as a duplicate.
//
// Structural validation failure aborts before anything reaches the store.
// Per-candidate duplicates and store failures are recorded and processing
// continues; partial success is the intended behavior.
func (s *Service) Submit(ctx context.Context, req pricedomain.SubmitRequest) (*pricedomain.SubmitResult, error) {
	periodID, category, err := s.resolveReferences(ctx, req.Draft.TariffPeriodID, req.Draft.AccommodationCategoryID)
	if err != nil && !blankReference(req.Draft) {
		return nil, err
	}

	maxCapacity := 0
	if category != nil {
		maxCapacity = category.MaxCapacity
	}
	if violations := pricedomain.ValidateDraft(req.Draft, maxCapacity); len(violations) > 0 {
		return nil, &pricedomain.ValidationFailedError{Violations: violations}
	}

	var editTarget *pricedomain.PriceRule
	if req.EditRuleID != nil {
		editID, err := parseID(*req.EditRuleID)
		if err != nil {
			return nil, pricedomain.ErrInvalidID
		}
		editTarget, err = s.repo.FindByID(ctx, s.db, editID)
		if err != nil {
			return nil, err
		}
		if editTarget == nil {
			return nil, pricedomain.ErrNotFound
		}
	}

	candidates := activeEntriesAscending(req.Draft.GuestPrices)

	result := &pricedomain.SubmitResult{
		Created: []pricedomain.Outcome{},
		Skipped: []pricedomain.Outcome{},
		Failed:  []pricedomain.Outcome{},
	}

	for _, entry := range candidates {
		now := time.Now().UTC()
		candidate := pricedomain.PriceRule{
			TariffPeriodID:          periodID,
			AccommodationCategoryID: category.ID,
			NumberOfGuests:          entry.NumberOfGuests,
			PriceCreditCard:         entry.PriceCreditCard,
			PricePix:                entry.PricePix,
			BreakfastDiscountType:   req.Draft.BreakfastDiscountType,
			BreakfastDiscountValue:  req.Draft.BreakfastDiscountValue,
			CreatedAt:               now,
			UpdatedAt:               now,
		}

		if editTarget != nil && candidate.Triple() == editTarget.Triple() {
			candidate.ID = editTarget.ID
			candidate.CreatedAt = editTarget.CreatedAt
			candidate.Metadata = editTarget.Metadata
			if err := s.repo.Update(ctx, s.db, &candidate); err != nil {
				result.Failed = append(result.Failed, pricedomain.Outcome{
					NumberOfGuests: entry.NumberOfGuests,
					Status:         pricedomain.OutcomeFailed,
					Reason:         err.Error(),
				})
				continue
			}
			result.Created = append(result.Created, pricedomain.Outcome{
				NumberOfGuests: entry.NumberOfGuests,
				Status:         pricedomain.OutcomeUpdated,
				Rule:           toResponse(&candidate),
			})
			continue
		}

		candidate.ID = s.genID.Generate()
		err := s.repo.Insert(ctx, s.db, &candidate)
		switch {
		case err == nil:
			result.Created = append(result.Created, pricedomain.Outcome{
				NumberOfGuests: entry.NumberOfGuests,
				Status:         pricedomain.OutcomeCreated,
				Rule:           toResponse(&candidate),
			})
		case isDuplicate(err):
			var dup *pricedomain.DuplicateError
			errors.As(err, &dup)
			result.Skipped = append(result.Skipped, pricedomain.Outcome{
				NumberOfGuests: entry.NumberOfGuests,
				Status:         pricedomain.OutcomeSkipped,
				ExistingRuleID: dup.ExistingRuleID,
			})
		default:
			s.log.Warn("price rule candidate failed",
				zap.Int("number_of_guests", entry.NumberOfGuests),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, pricedomain.Outcome{
				NumberOfGuests: entry.NumberOfGuests,
				Status:         pricedomain.OutcomeFailed,
				Reason:         err.Error(),
			})
		}
	}

	return result, nil
}

func activeEntriesAscending(entries []pricedomain.GuestPrice) []pricedomain.GuestPrice {
	active := make([]pricedomain.GuestPrice, 0, len(entries))
	for _, entry := range entries {
		if entry.Active() {
			active = append(active, entry)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].NumberOfGuests < active[j].NumberOfGuests
	})
	return active
}

func isDuplicate(err error) bool {
	var dup *pricedomain.DuplicateError
	return errors.As(err, &dup)
}

func blankReference(draft pricedomain.Draft) bool {
	return strings.TrimSpace(draft.TariffPeriodID) == "" || strings.TrimSpace(draft.AccommodationCategoryID) == ""
}
