package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/dto"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencySettingsHandler handles HTTP requests for the site currency settings.
type currencySettingsHandler struct {
	settingsService portssvc.CurrencySettingsSvcFacade
}

func newCurrencySettingsHandler(ss portssvc.CurrencySettingsSvcFacade) *currencySettingsHandler {
	return &currencySettingsHandler{settingsService: ss}
}

// RegisterCurrencySettingsRoutes registers the public read route on rg and the update route on admin.
func RegisterCurrencySettingsRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup, settingsService portssvc.CurrencySettingsSvcFacade) {
	h := newCurrencySettingsHandler(settingsService)

	rg.GET("/currency-settings", h.getSettings)
	admin.PUT("/currency-settings", h.updateSettings)
	admin.GET("/currency-settings/history", h.listHistory)
}

// getSettings godoc
// @Summary Get currency settings
// @Description Returns the site display currency settings, or the built-in defaults when none were saved
// @Tags currency-settings
// @Produce  json
// @Success 200 {object} dto.CurrencySettingsResponse
// @Failure 500 {object} map[string]string "Failed to retrieve settings"
// @Router /currency-settings [get]
func (h *currencySettingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get currency settings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currency settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencySettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update currency settings
// @Description Replaces the site display currency settings (admin operation)
// @Tags currency-settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateCurrencySettingsRequest true "New settings"
// @Success 200 {object} dto.CurrencySettingsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to update settings"
// @Security BearerAuth
// @Router /admin/currency-settings [put]
func (h *currencySettingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCurrencySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCurrencySettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to update currency settings", slog.String("currency_code", req.DefaultCurrency))

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating currency settings", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update currency settings in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update currency settings"})
		}
		return
	}

	logger.Info("Currency settings updated", slog.String("currency_code", settings.DefaultCurrency.String()))
	c.JSON(http.StatusOK, dto.ToCurrencySettingsResponse(*settings))
}

// listHistory godoc
// @Summary List currency settings changes
// @Description Returns the settings audit trail, newest first. Pass nextToken from the previous page to continue.
// @Tags currency-settings
// @Produce  json
// @Param   limit query int false "Page size (1-100, default 20)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListCurrencySettingsHistoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list history"
// @Security BearerAuth
// @Router /admin/currency-settings/history [get]
func (h *currencySettingsHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCurrencySettingsHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListCurrencySettingsHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	resp, err := h.settingsService.ListHistory(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list currency settings history", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currency settings history"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
