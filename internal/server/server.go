package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/hotelia/tarify/internal/catalog/domain"
	"github.com/hotelia/tarify/internal/config"
	obslogger "github.com/hotelia/tarify/internal/observability/logger"
	obsmetrics "github.com/hotelia/tarify/internal/observability/metrics"
	pricedomain "github.com/hotelia/tarify/internal/pricerule/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewEngine builds the gin engine with logging, metrics and error mapping.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	catalogSvc   catalogdomain.Service
	priceRuleSvc pricedomain.Service
}

type ServerParams struct {
	fx.In

	Engine       *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	CatalogSvc   catalogdomain.Service
	PriceRuleSvc pricedomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:       p.Engine,
		cfg:          p.Cfg,
		db:           p.DB,
		catalogSvc:   p.CatalogSvc,
		priceRuleSvc: p.PriceRuleSvc,
	}
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/tariff-periods", s.ListTariffPeriods)
	api.POST("/tariff-periods", s.CreateTariffPeriod)
	api.GET("/tariff-periods/:id", s.GetTariffPeriod)

	api.GET("/accommodation-categories", s.ListAccommodationCategories)
	api.POST("/accommodation-categories", s.CreateAccommodationCategory)
	api.GET("/accommodation-categories/:id", s.GetAccommodationCategory)

	api.GET("/price-rules", s.ListPriceRules)
	api.POST("/price-rules", s.CreatePriceRule)
	api.GET("/price-rules/:id", s.GetPriceRule)
	api.PATCH("/price-rules/:id", s.UpdatePriceRule)
	api.DELETE("/price-rules/:id", s.DeletePriceRule)

	api.POST("/price-rules/batch", s.SubmitPriceRules)
	api.POST("/price-rules/preview", s.PreviewPriceRule)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(obsmetrics.NewHTTPMetrics),
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(run),
)
