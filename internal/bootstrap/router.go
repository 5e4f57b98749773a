package bootstrap

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/poolpro/poolpro-backend/config"
	httpapi "github.com/poolpro/poolpro-backend/internal/api/http"
	"github.com/poolpro/poolpro-backend/internal/api/http/middleware"
	pchttp "github.com/poolpro/poolpro-backend/internal/professional_calculations/http"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/repository"
	"github.com/poolpro/poolpro-backend/internal/professional_calculations/service"
)

type RouterDeps struct {
	Config    *config.Config
	DB        repository.Querier
	Health    httpapi.Pinger
	Redis     *redis.Client
	CachePing httpapi.CachePinger
	Log       *zap.Logger
}

// Catalog is the catalog reader handed to the calculation service plus the
// cache that the scheduler refreshes (nil without redis).
type Catalog struct {
	Reader service.CatalogReader
	Cache  *repository.CatalogCache
}

func BuildCatalog(dep RouterDeps) Catalog {
	repo := repository.NewCatalogRepository(dep.DB)
	if dep.Redis == nil {
		return Catalog{Reader: repo}
	}
	cache := repository.NewCatalogCache(dep.Redis, repo, dep.Config.Redis.CatalogCacheTTL, dep.Log.Named("catalog_cache"))
	return Catalog{Reader: cache, Cache: cache}
}

func BuildRouter(dep RouterDeps, catalog Catalog) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Log.Named("http")))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.Server.CORSOrigins
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"}
	corsCfg.ExposeHeaders = []string{"X-Request-Id"}
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	cachePing := dep.CachePing
	if cachePing == nil && dep.Redis != nil {
		cachePing = func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() }
	}
	healthHandler := httpapi.NewHealthHandler(cfg.App.Name, cfg.App.Version, dep.Health, cachePing)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).Middleware())

	projects := repository.NewProjectRepository(dep.DB)
	svc := service.NewCalculationService(projects, catalog.Reader, dep.Log.Named("calculations"))

	calcHandler := pchttp.New(svc, pchttp.Defaults{
		ElectricityCostPerKwh: cfg.Calc.ElectricityCostPerKwh,
		DailyHours:            cfg.Calc.DailyRuntimeHours,
		TurnoverHours:         cfg.Calc.TurnoverHours,
	}, dep.Log.Named("calculations_http"))
	calcHandler.Register(api.Group("/professional-calculations"))

	return r
}
