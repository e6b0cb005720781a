package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/hotelia/tarify/internal/catalog/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() catalogdomain.Repository {
	return &repo{}
}

func (r *repo) ListPeriods(ctx context.Context, db *gorm.DB) ([]catalogdomain.TariffPeriod, error) {
	var items []catalogdomain.TariffPeriod
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, start_date, end_date, minimum_nights, metadata, created_at, updated_at
		 FROM tariff_periods ORDER BY start_date ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindPeriodByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.TariffPeriod, error) {
	var p catalogdomain.TariffPeriod
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, start_date, end_date, minimum_nights, metadata, created_at, updated_at
		 FROM tariff_periods WHERE id = ?`,
		id,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *repo) InsertPeriod(ctx context.Context, db *gorm.DB, period *catalogdomain.TariffPeriod) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tariff_periods (
			id, name, start_date, end_date, minimum_nights, metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		period.ID,
		period.Name,
		period.StartDate,
		period.EndDate,
		period.MinimumNights,
		period.Metadata,
		period.CreatedAt,
		period.UpdatedAt,
	).Error
}

func (r *repo) ListCategories(ctx context.Context, db *gorm.DB) ([]catalogdomain.AccommodationCategory, error) {
	var items []catalogdomain.AccommodationCategory
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, max_capacity, metadata, created_at, updated_at
		 FROM accommodation_categories ORDER BY name ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) FindCategoryByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*catalogdomain.AccommodationCategory, error) {
	var c catalogdomain.AccommodationCategory
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, max_capacity, metadata, created_at, updated_at
		 FROM accommodation_categories WHERE id = ?`,
		id,
	).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *repo) InsertCategory(ctx context.Context, db *gorm.DB, category *catalogdomain.AccommodationCategory) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO accommodation_categories (
			id, name, max_capacity, metadata, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID,
		category.Name,
		category.MaxCapacity,
		category.Metadata,
		category.CreatedAt,
		category.UpdatedAt,
	).Error
}
