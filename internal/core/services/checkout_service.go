package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/platform/config"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/utils"
)

// Analytics events raised by checkout.
const (
	EventCheckoutInitiated = "checkout_initiated"
	EventCheckoutFailed    = "checkout_failed"
)

const (
	orderIDRandomLength = 6
	maxFreeTextLength   = 100
	genericCheckoutErr  = "Failed to initiate payment. Please try again."
)

var (
	unsafeCharsPattern   = regexp.MustCompile(`[<>"'&]`)
	strictDisallowed     = regexp.MustCompile(`[^\p{L}\p{N}\s\-_.@]`)
	nonDigitsPattern     = regexp.MustCompile(`[^0-9]`)
	repeatedSpacePattern = regexp.MustCompile(`\s+`)
)

// PaymentSessionCreator creates a hosted payment session and returns the page to redirect to.
type PaymentSessionCreator interface {
	CreatePaymentSession(ctx context.Context, req domain.PaymentRequest) (string, error)
}

type checkoutService struct {
	BaseService
	settlement   portssvc.SettlementResolverSvc
	gateway      PaymentSessionCreator
	kashier      config.KashierConfig
	urls         config.URLConfig
	checkoutCfg  config.CheckoutConfig
	includeDebug bool
	now          func() time.Time
}

// CheckoutOption configures the checkout service.
type CheckoutOption func(*checkoutService)

// WithCheckoutEventTracker reports checkout attempts to analytics.
func WithCheckoutEventTracker(tracker utils.EventTracker) CheckoutOption {
	return func(s *checkoutService) {
		s.Tracker = tracker
	}
}

// WithCheckoutClock replaces time.Now, mostly for tests.
func WithCheckoutClock(now func() time.Time) CheckoutOption {
	return func(s *checkoutService) {
		s.now = now
	}
}

// NewCheckoutService creates the payment request builder for all flows.
// Debug details are attached to results outside production.
func NewCheckoutService(cfg *config.Config, settlement portssvc.SettlementResolverSvc, gateway PaymentSessionCreator, opts ...CheckoutOption) portssvc.CheckoutSvc {
	s := &checkoutService{
		settlement:   settlement,
		gateway:      gateway,
		kashier:      cfg.Kashier,
		urls:         cfg.URLs,
		checkoutCfg:  cfg.Checkout,
		includeDebug: !cfg.IsProduction,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CheckoutSvc = (*checkoutService)(nil)

// Checkout builds, signs and encodes the gateway request for flow.
func (s *checkoutService) Checkout(ctx context.Context, flow domain.PaymentFlow, order domain.Order) (result *domain.CheckoutResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("checkout panicked: %v", r)
			s.LogError(ctx, err, "Recovered from panic during checkout", slog.String("flow", string(flow)))
			result = s.failure(ctx, flow, err)
		}
	}()

	result, err = s.checkout(ctx, flow, order)
	if err != nil {
		return s.failure(ctx, flow, err), err
	}
	return result, nil
}

func (s *checkoutService) checkout(ctx context.Context, flow domain.PaymentFlow, order domain.Order) (*domain.CheckoutResult, error) {
	if !flow.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown payment flow %q", flow))
	}
	if missing := s.kashier.MissingCredentials(); len(missing) > 0 {
		return nil, apperrors.NewConfigurationError("Payment gateway is not configured: missing " + strings.Join(missing, ", "))
	}
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	baseURL, err := s.urls.ResolveBaseURL()
	if err != nil {
		return nil, apperrors.NewAppError(500, "Payment callback URL is not configured", fmt.Errorf("%w: %v", apperrors.ErrConfiguration, err))
	}

	orderID, err := GenerateOrderID(flow.OrderIDPrefix(), s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}
	logger := s.GetLogger(ctx).With(slog.String("order_id", orderID), slog.String("flow", string(flow)))

	conversion, err := s.settlement.ResolveForGateway(ctx, order.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settlement amount: %w", err)
	}

	amount := conversion.KashierAmount.StringFixed(2)
	req := domain.PaymentRequest{
		MerchantID:  s.kashier.MerchantID,
		OrderID:     orderID,
		Amount:      amount,
		Currency:    conversion.KashierCurrency,
		Hash:        SignPaymentRequest(s.kashier.MerchantID, orderID, amount, conversion.KashierCurrency, s.kashier.SecretKey),
		Mode:        s.kashier.Mode(),
		Description: s.describe(order, orderID),
		Customer:    s.cleanCustomer(order.Customer),
		URLs:        BuildPaymentURLs(baseURL, orderID),
	}

	result := &domain.CheckoutResult{
		Success:            true,
		Flow:               flow,
		OrderID:            orderID,
		CurrencyConversion: conversion,
	}
	debug := map[string]any{
		"mode":       req.Mode,
		"baseUrl":    baseURL,
		"amount":     req.Amount,
		"currency":   req.Currency.String(),
		"isLiveRate": conversion.IsLiveRate,
	}

	switch flow {
	case domain.PaymentFlowHosted:
		paymentURL, gwErr := s.gateway.CreatePaymentSession(ctx, req)
		if gwErr != nil {
			logger.Warn("Hosted payment session failed, falling back to redirect URL", slog.String("error", gwErr.Error()))
			result.PaymentURL = s.redirectURL(s.baseFields(req))
			debug["fallback"] = true
			debug["gatewayError"] = gwErr.Error()
		} else {
			result.PaymentURL = paymentURL
		}
	case domain.PaymentFlowLegacy:
		fields := s.baseFields(req)
		fields.Set("display", s.checkoutCfg.Language)
		fields.Set("theme", s.checkoutCfg.Theme)
		fields.Set("type", s.checkoutCfg.EmbedMode)
		result.PaymentURL = s.redirectURL(fields)
	case domain.PaymentFlowDirect:
		fields := s.baseFields(req)
		result.PaymentURL = s.redirectURL(fields)
		result.FormFields = flatten(fields)
	}

	if s.includeDebug {
		result.Debug = debug
	}

	logger.Info("Checkout initiated",
		slog.String("amount", req.Amount),
		slog.String("original_currency", conversion.OriginalCurrency.String()),
		slog.Bool("live_rate", conversion.IsLiveRate))
	s.Track(ctx, EventCheckoutInitiated, map[string]any{
		"flow":              string(flow),
		"order_id":          orderID,
		"amount":            req.Amount,
		"currency":          req.Currency.String(),
		"original_currency": conversion.OriginalCurrency.String(),
		"is_live_rate":      conversion.IsLiveRate,
	})
	return result, nil
}

// failure builds the structured failure result. The order id is fresh and never sent to the gateway.
func (s *checkoutService) failure(ctx context.Context, flow domain.PaymentFlow, err error) *domain.CheckoutResult {
	orderID, genErr := GenerateOrderID(flow.OrderIDPrefix(), s.now())
	if genErr != nil {
		orderID = fmt.Sprintf("%s-%d-000000", flow.OrderIDPrefix(), s.now().UnixMilli())
	}

	message := genericCheckoutErr
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if errors.Is(err, apperrors.ErrValidation) {
		s.LogWarn(ctx, "Checkout rejected", slog.String("flow", string(flow)), slog.String("error", err.Error()))
	} else {
		s.LogError(ctx, err, "Checkout failed", slog.String("flow", string(flow)))
	}
	s.Track(ctx, EventCheckoutFailed, map[string]any{
		"flow":  string(flow),
		"error": message,
	})

	result := &domain.CheckoutResult{
		Success:    false,
		Flow:       flow,
		OrderID:    orderID,
		PaymentURL: domain.PlaceholderPaymentURL,
		Error:      message,
	}
	if s.includeDebug {
		result.Debug = map[string]any{"error": err.Error()}
	}
	return result
}

// baseFields is the signed field set shared by every redirect-style encoding.
func (s *checkoutService) baseFields(req domain.PaymentRequest) url.Values {
	fields := url.Values{}
	fields.Set("merchantId", req.MerchantID)
	fields.Set("orderId", req.OrderID)
	fields.Set("amount", req.Amount)
	fields.Set("currency", req.Currency.String())
	fields.Set("hash", req.Hash)
	fields.Set("mode", req.Mode)
	fields.Set("merchantRedirect", req.URLs.Success)
	fields.Set("failureRedirect", req.URLs.Failure)
	fields.Set("cancelRedirect", req.URLs.Cancel)
	fields.Set("serverWebhook", req.URLs.Webhook)
	fields.Set("redirectMethod", "get")
	fields.Set("customerName", req.Customer.FullName())
	fields.Set("customerEmail", req.Customer.Email)
	fields.Set("customerPhone", req.Customer.Phone)
	fields.Set("description", req.Description)
	return fields
}

func (s *checkoutService) redirectURL(fields url.Values) string {
	return s.kashier.CheckoutURL + "/?" + fields.Encode()
}

func (s *checkoutService) cleanCustomer(c domain.Customer) domain.Customer {
	return domain.Customer{
		FirstName: SanitizeText(c.FirstName, s.checkoutCfg.SanitizeMode),
		LastName:  SanitizeText(c.LastName, s.checkoutCfg.SanitizeMode),
		Email:     SanitizeText(c.Email, config.SanitizeModeBasic),
		Phone:     FormatPhone(c.Phone),
	}
}

func (s *checkoutService) describe(order domain.Order, orderID string) string {
	names := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		if name := strings.TrimSpace(it.Name); name != "" {
			names = append(names, name)
		}
	}
	desc := SanitizeText(strings.Join(names, ", "), s.checkoutCfg.SanitizeMode)
	if desc == "" {
		return "Order " + orderID
	}
	return desc
}

func validateOrder(order domain.Order) error {
	if len(order.Items) == 0 {
		return apperrors.NewValidationError("items: order must contain at least one item")
	}
	if strings.TrimSpace(order.Customer.Email) == "" {
		return apperrors.NewValidationError("customer.email: customer email is required")
	}
	if FormatPhone(order.Customer.Phone) == "" {
		return apperrors.NewValidationError("customer.phone: customer phone must contain digits")
	}
	if !order.Total.IsPositive() {
		return apperrors.NewValidationError("totals.total: order total must be greater than zero")
	}
	return nil
}

func flatten(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for k := range values {
		out[k] = values.Get(k)
	}
	return out
}

// GenerateOrderID returns "<prefix>-<epoch millis>-<6 random base-36 chars>".
func GenerateOrderID(prefix string, now time.Time) (string, error) {
	suffix, err := utils.GenerateBase36String(orderIDRandomLength)
	if err != nil {
		return "", err
	}
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + suffix, nil
}

// SignPaymentRequest is hex(SHA256(merchantID + orderID + amount + currency + secret)).
// amount must already be the final settlement amount string.
func SignPaymentRequest(merchantID, orderID, amount string, currency domain.CurrencyCode, secret string) string {
	return utils.SHA256Hex(merchantID + orderID + amount + currency.String() + secret)
}

// BuildPaymentURLs derives the gateway callback URLs for one order.
func BuildPaymentURLs(baseURL, orderID string) domain.PaymentURLs {
	base := strings.TrimRight(baseURL, "/")
	q := "?orderId=" + url.QueryEscape(orderID)
	return domain.PaymentURLs{
		Success: base + "/checkout/success" + q,
		Failure: base + "/checkout/failure" + q,
		Cancel:  base + "/checkout/cancel" + q,
		Webhook: base + "/api/v1/payments/webhook" + q,
	}
}

// SanitizeText strips markup characters, collapses whitespace and caps the length.
// Strict mode additionally keeps only letters, digits, spaces and "-_.@".
func SanitizeText(s, mode string) string {
	s = unsafeCharsPattern.ReplaceAllString(s, "")
	if mode != config.SanitizeModeBasic {
		s = strictDisallowed.ReplaceAllString(s, "")
	}
	s = strings.TrimSpace(repeatedSpacePattern.ReplaceAllString(s, " "))
	if utf8.RuneCountInString(s) > maxFreeTextLength {
		s = strings.TrimSpace(string([]rune(s)[:maxFreeTextLength]))
	}
	return s
}

// FormatPhone normalizes to a single leading "+" form.
// Egyptian local numbers ("01...") become "+201...".
func FormatPhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	digits := nonDigitsPattern.ReplaceAllString(trimmed, "")
	if digits == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(trimmed, "+"):
		return "+" + digits
	case strings.HasPrefix(digits, "00"):
		if len(digits) == 2 {
			return ""
		}
		return "+" + digits[2:]
	case strings.HasPrefix(digits, "01"):
		return "+2" + digits
	default:
		return "+" + digits
	}
}
