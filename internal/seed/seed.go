package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/hotelia/tarify/internal/catalog/domain"
	"gorm.io/gorm"
)

// EnsureDemoCatalog seeds a small catalog for local development. The pricing
// core itself never embeds catalog data; this runs only when
// SEED_DEMO_CATALOG is set and the catalog is still empty.
func EnsureDemoCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var periods int64
		if err := tx.Model(&catalogdomain.TariffPeriod{}).Count(&periods).Error; err != nil {
			return err
		}
		if periods == 0 {
			now := time.Now().UTC()
			year := now.Year() + 1
			seedPeriods := []catalogdomain.TariffPeriod{
				{
					ID:            node.Generate(),
					Name:          "Low season",
					StartDate:     time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC),
					EndDate:       time.Date(year, time.November, 30, 0, 0, 0, 0, time.UTC),
					MinimumNights: 1,
					CreatedAt:     now,
					UpdatedAt:     now,
				},
				{
					ID:            node.Generate(),
					Name:          "High season",
					StartDate:     time.Date(year, time.December, 1, 0, 0, 0, 0, time.UTC),
					EndDate:       time.Date(year+1, time.February, 28, 0, 0, 0, 0, time.UTC),
					MinimumNights: 2,
					CreatedAt:     now,
					UpdatedAt:     now,
				},
			}
			if err := tx.Create(&seedPeriods).Error; err != nil {
				return err
			}
		}

		var categories int64
		if err := tx.Model(&catalogdomain.AccommodationCategory{}).Count(&categories).Error; err != nil {
			return err
		}
		if categories == 0 {
			now := time.Now().UTC()
			seedCategories := []catalogdomain.AccommodationCategory{
				{ID: node.Generate(), Name: "Standard", MaxCapacity: 3, CreatedAt: now, UpdatedAt: now},
				{ID: node.Generate(), Name: "Suite", MaxCapacity: 5, CreatedAt: now, UpdatedAt: now},
			}
			if err := tx.Create(&seedCategories).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
