package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SeanMWG/inventory-app/internal/config"
	"github.com/SeanMWG/inventory-app/internal/container"
	"github.com/SeanMWG/inventory-app/internal/ratelimit"
)

// Register wires middleware and every feature handler onto the router.
// Login routes stay public; everything under /api requires a valid
// token, with per-route permission guards inside the handlers.
func Register(router *gin.Engine, c *container.Container, cfg *config.Config) {
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
		router.Use(cors.New(corsConfig))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	c.LoginHandler.RegisterRoutes(router)
	if c.AzureHandler != nil {
		c.AzureHandler.RegisterRoutes(router)
	}

	limiter := ratelimit.NewRateLimiter(120, time.Minute)

	protected := router.Group("")
	protected.Use(c.TokenService.JWTMiddleware(), limiter.MutationMiddleware())

	c.HardwareHandler.RegisterRoutes(protected)
	c.LocationHandler.RegisterRoutes(protected)
	c.LoanerHandler.RegisterRoutes(protected)
	c.AuditLogHandler.RegisterRoutes(protected)
}
