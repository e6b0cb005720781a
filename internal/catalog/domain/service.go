package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (*TariffPeriod, error)
	ListPeriods(ctx context.Context) ([]TariffPeriod, error)
	GetPeriod(ctx context.Context, id string) (*TariffPeriod, error)

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*AccommodationCategory, error)
	ListCategories(ctx context.Context) ([]AccommodationCategory, error)
	GetCategory(ctx context.Context, id string) (*AccommodationCategory, error)
}

type CreatePeriodRequest struct {
	Name          string         `json:"name"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	MinimumNights int            `json:"minimum_nights"`
	Metadata      map[string]any `json:"metadata"`
}

type CreateCategoryRequest struct {
	Name        string         `json:"name"`
	MaxCapacity int            `json:"max_capacity"`
	Metadata    map[string]any `json:"metadata"`
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidDateRange     = errors.New("invalid_date_range")
	ErrInvalidMinimumNights = errors.New("invalid_minimum_nights")
	ErrInvalidMaxCapacity   = errors.New("invalid_max_capacity")
	ErrNotFound             = errors.New("not_found")
)

// ParseID parses a string id into a snowflake id.
func ParseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
