package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/hotelia/tarify/internal/catalog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  catalogdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  catalogdomain.Repository
}

func New(p Params) catalogdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("catalog.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) CreatePeriod(ctx context.Context, req catalogdomain.CreatePeriodRequest) (*catalogdomain.TariffPeriod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, catalogdomain.ErrInvalidDateRange
	}
	if req.MinimumNights < 1 {
		return nil, catalogdomain.ErrInvalidMinimumNights
	}

	now := time.Now().UTC()
	entity := &catalogdomain.TariffPeriod{
		ID:            s.genID.Generate(),
		Name:          name,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		MinimumNights: req.MinimumNights,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.InsertPeriod(ctx, s.db, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) ListPeriods(ctx context.Context) ([]catalogdomain.TariffPeriod, error) {
	return s.repo.ListPeriods(ctx, s.db)
}

func (s *Service) GetPeriod(ctx context.Context, id string) (*catalogdomain.TariffPeriod, error) {
	periodID, err := catalogdomain.ParseID(id)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.FindPeriodByID(ctx, s.db, periodID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) CreateCategory(ctx context.Context, req catalogdomain.CreateCategoryRequest) (*catalogdomain.AccommodationCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, catalogdomain.ErrInvalidName
	}
	if req.MaxCapacity < 1 {
		return nil, catalogdomain.ErrInvalidMaxCapacity
	}

	now := time.Now().UTC()
	entity := &catalogdomain.AccommodationCategory{
		ID:          s.genID.Generate(),
		Name:        name,
		MaxCapacity: req.MaxCapacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Metadata != nil {
		entity.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.repo.InsertCategory(ctx, s.db, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]catalogdomain.AccommodationCategory, error) {
	return s.repo.ListCategories(ctx, s.db)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*catalogdomain.AccommodationCategory, error) {
	categoryID, err := catalogdomain.ParseID(id)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.FindCategoryByID(ctx, s.db, categoryID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, catalogdomain.ErrNotFound
	}
	return entity, nil
}
