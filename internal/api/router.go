package api

import (
	"fmt"
	"time"

	"recipe-browser/internal/api/handlers/health"
	recipeHandler "recipe-browser/internal/api/handlers/recipe"
	"recipe-browser/internal/api/handlers/web"
	"recipe-browser/internal/api/middleware"
	"recipe-browser/internal/core/browse"
	"recipe-browser/internal/core/cache"
	"recipe-browser/internal/core/image"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/core/session"
	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Services 路由所需的服務，由呼叫端建立並負責關閉
type Services struct {
	Catalog  *recipe.Catalog
	Cache    cache.Store // 可為 nil
	Sessions *session.Store
	Images   *image.Service // 可為 nil
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if svc.Catalog == nil || svc.Sessions == nil {
		return nil, fmt.Errorf("catalog and session store are required")
	}

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		ce := common.ErrNotFound
		c.JSON(ce.Status, ce.Response(false))
	})
	router.NoMethod(func(c *gin.Context) {
		ce := common.ErrMethodNotAllowed
		c.JSON(ce.Status, ce.Response(false))
	})

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.Server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	browseSvc := browse.NewService(svc.Catalog, svc.Cache)

	common.LogInfo("Initializing services",
		zap.Int("recipes", svc.Catalog.Len()),
		zap.Bool("cache_enabled", svc.Cache != nil),
		zap.Bool("image_proxy", svc.Images != nil),
	)

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, svc.Catalog, svc.Cache, svc.Sessions)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	sessionMiddleware := middleware.Session(
		svc.Sessions,
		cfg.Session.CookieName,
		int(cfg.Session.TTL.Seconds()),
	)

	// 頁面路由
	pages := web.NewHandler(browseSvc, svc.Images, cfg.App.Debug)
	router.GET("/recipes/:id/image", pages.Image)
	pageGroup := router.Group("/", sessionMiddleware)
	{
		pageGroup.GET("/", pages.Home)
		pageGroup.GET("/recipes", pages.ListRecipes)
		pageGroup.POST("/select/:id", pages.SelectRecipe)
		pageGroup.POST("/back", pages.GoBack)
		pageGroup.GET("/export.xlsx", pages.Export)
	}

	// API 路由組
	apiHandler := recipeHandler.NewHandler(browseSvc, cfg.App.Debug)
	api := router.Group("/api/v1")
	{
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", apiHandler.ListRecipes)
			recipeGroup.GET("/:id", apiHandler.GetRecipe)
		}

		sessionGroup := api.Group("/session", sessionMiddleware)
		{
			sessionGroup.GET("", apiHandler.GetSession)
			sessionGroup.POST("/select/:id", apiHandler.SelectRecipe)
			sessionGroup.POST("/back", apiHandler.GoBack)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
