package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// TariffPeriod is a named date range with a minimum-nights policy, e.g.
// "high season 2026". Rules reference periods by id only.
type TariffPeriod struct {
	ID            snowflake.ID      `json:"id" gorm:"primaryKey"`
	Name          string            `json:"name" gorm:"type:text;not null"`
	StartDate     time.Time         `json:"start_date" gorm:"not null"`
	EndDate       time.Time         `json:"end_date" gorm:"not null"`
	MinimumNights int               `json:"minimum_nights" gorm:"not null;default:1"`
	Metadata      datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TariffPeriod) TableName() string { return "tariff_periods" }

// AccommodationCategory is a room class with a maximum occupancy.
// MaxCapacity bounds the guest counts a price rule may be created for.
type AccommodationCategory struct {
	ID          snowflake.ID      `json:"id" gorm:"primaryKey"`
	Name        string            `json:"name" gorm:"type:text;not null"`
	MaxCapacity int               `json:"max_capacity" gorm:"not null"`
	Metadata    datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (AccommodationCategory) TableName() string { return "accommodation_categories" }
