package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/dto"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvc
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvc) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// RegisterExchangeRateRoutes registers the rate table read route and the admin refresh route.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, rateService portssvc.ExchangeRateSvc) {
	h := newExchangeRateHandler(rateService)

	rg.GET("/exchange-rates", h.getRates)
	admin.POST("/exchange-rates/refresh", h.refreshRates)
}

// getRates godoc
// @Summary Get exchange rates
// @Description Returns settlement-currency units per one unit of each currency. isLive is false when the fallback table is served.
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} dto.ExchangeRatesResponse
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) getRates(c *gin.Context) {
	snapshot := h.rateService.GetRates(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToExchangeRatesResponse(snapshot))
}

// refreshRates godoc
// @Summary Refresh exchange rates
// @Description Fetches the live rate table immediately, ignoring the cache age (admin operation)
// @Tags exchange-rates
// @Produce  json
// @Success 200 {object} dto.ExchangeRatesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/exchange-rates/refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot := h.rateService.ForceRefresh(c.Request.Context())
	logger.Info("Exchange rates refreshed", slog.Bool("is_live", snapshot.IsLive), slog.Int("currencies", len(snapshot.Rates)))
	c.JSON(http.StatusOK, dto.ToExchangeRatesResponse(snapshot))
}
