package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/hotelia/tarify/internal/catalog"
	"github.com/hotelia/tarify/internal/config"
	"github.com/hotelia/tarify/internal/logger"
	"github.com/hotelia/tarify/internal/migration"
	"github.com/hotelia/tarify/internal/pricerule"
	"github.com/hotelia/tarify/internal/server"
	"github.com/hotelia/tarify/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		catalog.Module,
		pricerule.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
