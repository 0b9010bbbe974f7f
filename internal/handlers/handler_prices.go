package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/dto"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type priceHandler struct {
	priceService portssvc.PriceDisplaySvc
}

// RegisterPriceRoutes registers the price display route.
func RegisterPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceDisplaySvc) {
	h := &priceHandler{priceService: priceService}
	rg.GET("/prices/display", h.displayPrice)
}

// displayPrice godoc
// @Summary Render a price
// @Description Converts an amount into the site display currency and formats it with the configured symbol
// @Tags prices
// @Produce  json
// @Param   amount query string true "Amount to display"
// @Param   from query string false "Currency the amount is in (default EGP)"
// @Success 200 {object} dto.PriceDisplayResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to render price"
// @Router /prices/display [get]
func (h *priceHandler) displayPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.PriceDisplayParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for DisplayPrice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount: must be a decimal number"})
		return
	}

	price, err := h.priceService.DisplayPrice(c.Request.Context(), amount, domain.CurrencyCode(params.From))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to render price", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render price"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPriceDisplayResponse(price))
}
