package pricerule

import (
	"github.com/hotelia/tarify/internal/pricerule/repository"
	"github.com/hotelia/tarify/internal/pricerule/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricerule.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
