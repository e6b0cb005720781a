package catalog

import (
	"github.com/hotelia/tarify/internal/catalog/repository"
	"github.com/hotelia/tarify/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
