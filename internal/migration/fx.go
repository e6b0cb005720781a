package migration

import (
	catalogdomain "github.com/hotelia/tarify/internal/catalog/domain"
	"github.com/hotelia/tarify/internal/config"
	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"github.com/hotelia/tarify/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The versioned migration driver is postgres-only; other
			// dialects (sqlite local runs) get the schema from the models.
			if err := conn.AutoMigrate(
				&catalogdomain.TariffPeriod{},
				&catalogdomain.AccommodationCategory{},
				&pricedomain.PriceRule{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemoCatalog {
			return seed.EnsureDemoCatalog(conn)
		}
		return nil
	}),
)
