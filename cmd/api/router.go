package main

import (
	"context"
	"net/http"
	"time"

	"realestate-backend/internal/shared/middleware"
	"realestate-backend/pkg/container"
	"realestate-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		c.Metrics.Handler(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupPropertyRoutes(v1, c)
		setupOwnerRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/token", c.AuthHandler.IssueToken)
	}
}

// ========================================
// PROPERTY ROUTES
// ========================================
func setupPropertyRoutes(v1 *gin.RouterGroup, c *container.Container) {
	h := c.PropertyHandler
	write := middleware.AuthMiddleware(c.JWTManager, jwt.ScopeWrite)

	properties := v1.Group("/properties")
	{
		// Public
		properties.GET("", h.ListProperties)
		properties.GET("/code/:code", h.GetPropertyByCode)
		properties.GET("/:id", h.GetProperty)

		// Protected
		properties.POST("", write, h.CreateProperty)
		properties.PUT("/:id", write, h.UpdateProperty)
		properties.PUT("/:id/price", write, h.ChangePrice)
		properties.POST("/:id/images", write, h.AddImage)
	}
}

// ========================================
// OWNER ROUTES
// ========================================
func setupOwnerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	owners := v1.Group("/owners")
	{
		owners.GET("/:id", c.OwnerHandler.GetOwner)
		owners.POST("", middleware.AuthMiddleware(c.JWTManager, jwt.ScopeWrite), c.OwnerHandler.CreateOwner)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services := appCtx.HealthCheck(ctx)
		status := "ok"
		code := http.StatusOK
		if services["storage"] != "ok" {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}
