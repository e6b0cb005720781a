package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository is the authoritative store of price rules. Insert and Update are
// atomic with respect to the triple uniqueness invariant: they rely on the
// composite unique index, never on a separate exists-then-insert sequence.
type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]PriceRule, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PriceRule, error)
	FindByTriple(ctx context.Context, db *gorm.DB, key Triple) (*PriceRule, error)
	Insert(ctx context.Context, db *gorm.DB, rule *PriceRule) error
	Update(ctx context.Context, db *gorm.DB, rule *PriceRule) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
