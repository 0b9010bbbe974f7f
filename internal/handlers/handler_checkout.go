package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/dto"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// checkoutHandler handles the three payment flows.
type checkoutHandler struct {
	checkoutService portssvc.CheckoutSvc
}

func newCheckoutHandler(cs portssvc.CheckoutSvc) *checkoutHandler {
	return &checkoutHandler{checkoutService: cs}
}

// RegisterCheckoutRoutes registers the checkout endpoints. A nil limiter disables rate limiting.
func RegisterCheckoutRoutes(rg *gin.RouterGroup, checkoutService portssvc.CheckoutSvc, rateLimiter *limiter.Limiter) {
	h := newCheckoutHandler(checkoutService)

	checkout := rg.Group("/checkout", gin.CustomRecovery(checkoutRecovery))
	if rateLimiter != nil {
		checkout.Use(middleware.RateLimit(rateLimiter))
	}
	checkout.POST("/:flow", h.checkout)
}

// checkout godoc
// @Summary Start a checkout
// @Description Converts the cart total to the settlement currency, signs it and returns where to send the buyer.
// @Description The flow is one of hosted, legacy or direct.
// @Tags checkout
// @Accept  json
// @Produce  json
// @Param   flow path string true "Payment flow" Enums(hosted, legacy, direct)
// @Param   order body dto.CheckoutRequest true "Cart, customer and totals"
// @Success 200 {object} domain.CheckoutResult
// @Failure 400 {object} domain.CheckoutResult "Invalid order"
// @Failure 404 {object} map[string]string "Unknown flow"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} domain.CheckoutResult "Checkout failed"
// @Router /checkout/{flow} [post]
func (h *checkoutHandler) checkout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	flow := domain.PaymentFlow(c.Param("flow"))
	if !flow.IsValid() {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Unknown checkout flow '%s'", flow)})
		return
	}
	logger = logger.With(slog.String("flow", string(flow)))

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Checkout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, checkoutFailure(flow, bindingErrorMessage(err)))
		return
	}

	logger.Info("Received checkout request", slog.Int("items", len(req.Items)))
	result, err := h.checkoutService.Checkout(c.Request.Context(), flow, req.ToDomainOrder())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrValidation) {
			status = http.StatusBadRequest
		}
		_ = c.Error(err)
		if result == nil {
			result = checkoutFailure(flow, "Payment initialization failed")
		}
		c.JSON(status, result)
		return
	}

	logger.Info("Checkout prepared", slog.String("order_id", result.OrderID))
	c.JSON(http.StatusOK, result)
}

// checkoutRecovery turns a panic anywhere in the checkout chain into the usual failure body.
func checkoutRecovery(c *gin.Context, recovered any) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Error("Recovered from panic in checkout", slog.Any("panic", recovered))

	flow := domain.PaymentFlow(c.Param("flow"))
	if !flow.IsValid() {
		flow = domain.PaymentFlowHosted
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, checkoutFailure(flow, "Payment initialization failed"))
}

// checkoutFailure builds a failure result for errors caught before the service runs.
func checkoutFailure(flow domain.PaymentFlow, message string) *domain.CheckoutResult {
	now := time.Now()
	orderID, err := services.GenerateOrderID(flow.OrderIDPrefix(), now)
	if err != nil {
		orderID = fmt.Sprintf("%s-%d-000000", flow.OrderIDPrefix(), now.UnixMilli())
	}
	return &domain.CheckoutResult{
		Success:    false,
		Flow:       flow,
		OrderID:    orderID,
		PaymentURL: domain.PlaceholderPaymentURL,
		Error:      message,
	}
}
