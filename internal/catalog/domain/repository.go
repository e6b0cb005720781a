package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListPeriods(ctx context.Context, db *gorm.DB) ([]TariffPeriod, error)
	FindPeriodByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*TariffPeriod, error)
	InsertPeriod(ctx context.Context, db *gorm.DB, period *TariffPeriod) error

	ListCategories(ctx context.Context, db *gorm.DB) ([]AccommodationCategory, error)
	FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AccommodationCategory, error)
	InsertCategory(ctx context.Context, db *gorm.DB, category *AccommodationCategory) error
}
