package handlers

import (
	"log/slog"
	"net/http"

	"github.com/AhmedRagabRG/exabytex-sub001/cmd/docs"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the public /api/v1 group and its admin subgroup.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")
	admin := v1.Group("/admin", middleware.AuthMiddleware(cfg.JWTSecret, middleware.RoleAdmin))

	checkoutLimiter, err := middleware.NewMemoryLimiter(cfg.Checkout.RateLimit)
	if err != nil {
		slog.Warn("Checkout rate limiting disabled", slog.String("error", err.Error()))
	}

	RegisterCheckoutRoutes(v1, service.Checkout, checkoutLimiter)
	RegisterCurrencySettingsRoutes(v1, admin, service.CurrencySettings)
	RegisterExchangeRateRoutes(v1, admin, service.ExchangeRates)
	RegisterPriceRoutes(v1, service.Settlement)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
