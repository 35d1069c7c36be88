package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valencia-move/listings-backend/internal/config"
	"github.com/valencia-move/listings-backend/internal/handler"
	"github.com/valencia-move/listings-backend/internal/middleware"
	"github.com/valencia-move/listings-backend/internal/service"
)

// Deps 路由依赖
type Deps struct {
	Listings *service.ListingService
	Costs    *service.CostService
	Logger   *slog.Logger
}

// SetupRouter 设置路由. ctx bounds background work owned by the router.
func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log.With("component", "http")))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.Use(middleware.RateLimit(middleware.NewRateLimiter(ctx, cfg.RateLimit, time.Minute)))

	r.SetHTMLTemplate(handler.Templates)

	listingHandler := handler.NewListingHandler(deps.Listings, log)
	costHandler := handler.NewCostHandler(deps.Costs)
	pageHandler := handler.NewPageHandler(deps.Listings, log)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Listings API is running",
			"listings": len(deps.Listings.Listings()),
		})
	})

	r.GET("/", pageHandler.Index)

	// API 路由组
	api := r.Group("/api/v1")
	{
		listings := api.Group("/listings")
		{
			listings.GET("", listingHandler.Search)
			listings.GET("/options", listingHandler.Options)
			listings.GET("/within", listingHandler.Within)
			listings.GET("/:id", listingHandler.GetByID)
		}

		housing := api.Group("/housing")
		{
			housing.POST("/cost", costHandler.Calculate)
		}

		admin := api.Group("/admin", middleware.RequireAdmin(cfg.JWTSecret))
		{
			admin.POST("/reload", listingHandler.Reload)
		}
	}

	return r
}
