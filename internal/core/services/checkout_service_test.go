package services_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/AhmedRagabRG/exabytex-sub001/internal/apperrors"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	portssvc "github.com/AhmedRagabRG/exabytex-sub001/internal/core/ports/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/services"
	"github.com/AhmedRagabRG/exabytex-sub001/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock SettlementResolverSvc ---
type MockSettlementResolver struct {
	mock.Mock
}

func (m *MockSettlementResolver) ResolveForGateway(ctx context.Context, amount decimal.Decimal) (*domain.SettlementConversion, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementConversion), args.Error(1)
}

// --- Mock PaymentSessionCreator ---
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreatePaymentSession(ctx context.Context, req domain.PaymentRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

var (
	_ portssvc.SettlementResolverSvc = (*MockSettlementResolver)(nil)
	_ services.PaymentSessionCreator = (*MockPaymentGateway)(nil)
)

type panickingResolver struct{}

func (panickingResolver) ResolveForGateway(context.Context, decimal.Decimal) (*domain.SettlementConversion, error) {
	panic("rate table corrupted")
}

const referenceHash = "1b8ab5bc7b30d7f553c40729331a9c40c827363f808ad39397587525c206faba"

func testCheckoutConfig() *config.Config {
	return &config.Config{
		Kashier: config.KashierConfig{
			MerchantID:  "MID-1",
			APIKey:      "api-key",
			SecretKey:   "secret",
			TestMode:    true,
			CheckoutURL: "https://checkout.kashier.io",
		},
		URLs: config.URLConfig{
			PublicBaseURL: "https://shop.example.com",
			IsTestMode:    true,
		},
		Checkout: config.CheckoutConfig{
			SanitizeMode: config.SanitizeModeStrict,
			Language:     "ar",
			Theme:        "dark",
			EmbedMode:    "external",
		},
	}
}

func testOrder() domain.Order {
	return domain.Order{
		Items: []domain.OrderItem{
			{ID: "p-1", Name: "Gold <Coin>", Price: d("10.00"), Quantity: 1},
		},
		Customer: domain.Customer{
			FirstName: "Sara",
			LastName:  "Ali",
			Email:     "sara@example.com",
			Phone:     "01012345678",
		},
		Total: d("10.00"),
	}
}

func usdConversion() *domain.SettlementConversion {
	rate := d("49.5")
	return &domain.SettlementConversion{
		OriginalAmount:   d("10.00"),
		OriginalCurrency: "USD",
		KashierAmount:    d("495"),
		KashierCurrency:  "EGP",
		ExchangeRate:     &rate,
		IsLiveRate:       false,
	}
}

func orderIDPattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`^` + prefix + `-\d+-[0-9a-z]{6}$`)
}

func queryOf(t require.TestingT, raw string) url.Values {
	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	return parsed.Query()
}

// --- Test Suite ---
type CheckoutServiceTestSuite struct {
	suite.Suite
	cfg        *config.Config
	settlement *MockSettlementResolver
	gateway    *MockPaymentGateway
	service    portssvc.CheckoutSvc
}

func (suite *CheckoutServiceTestSuite) SetupTest() {
	suite.cfg = testCheckoutConfig()
	suite.settlement = new(MockSettlementResolver)
	suite.gateway = new(MockPaymentGateway)
	suite.service = services.NewCheckoutService(suite.cfg, suite.settlement, suite.gateway)
}

func (suite *CheckoutServiceTestSuite) rebuild() {
	suite.service = services.NewCheckoutService(suite.cfg, suite.settlement, suite.gateway)
}

func (suite *CheckoutServiceTestSuite) TestHosted_Success() {
	ctx := context.Background()
	suite.settlement.On("ResolveForGateway", ctx, mock.Anything).Return(usdConversion(), nil).Once()

	var sent domain.PaymentRequest
	suite.gateway.On("CreatePaymentSession", ctx, mock.AnythingOfType("domain.PaymentRequest")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(domain.PaymentRequest) }).
		Return("https://checkout.kashier.io/session/abc", nil).Once()

	result, err := suite.service.Checkout(ctx, domain.PaymentFlowHosted, testOrder())

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.Equal(domain.PaymentFlowHosted, result.Flow)
	suite.Equal("https://checkout.kashier.io/session/abc", result.PaymentURL)
	suite.Regexp(orderIDPattern("HPP"), result.OrderID)
	suite.Equal(usdConversion().KashierAmount, result.CurrencyConversion.KashierAmount)

	suite.Equal(result.OrderID, sent.OrderID)
	suite.Equal("495.00", sent.Amount)
	suite.Equal(domain.CurrencyCode("EGP"), sent.Currency)
	suite.Equal("test", sent.Mode)
	suite.Equal(services.SignPaymentRequest("MID-1", sent.OrderID, "495.00", "EGP", "secret"), sent.Hash)
	suite.Equal("+201012345678", sent.Customer.Phone)
	suite.Equal("Gold Coin", sent.Description)
	suite.Equal("https://shop.example.com/checkout/success?orderId="+sent.OrderID, sent.URLs.Success)
	suite.NotContains(result.Debug, "fallback")
	suite.gateway.AssertExpectations(suite.T())
}

func (suite *CheckoutServiceTestSuite) TestHosted_GatewayFailureFallsBackToRedirect() {
	ctx := context.Background()
	suite.settlement.On("ResolveForGateway", ctx, mock.Anything).Return(usdConversion(), nil).Once()
	suite.gateway.On("CreatePaymentSession", ctx, mock.Anything).
		Return("", fmt.Errorf("%w: status 401", apperrors.ErrUpstream)).Once()

	result, err := suite.service.Checkout(ctx, domain.PaymentFlowHosted, testOrder())

	suite.Require().NoError(err)
	suite.True(result.Success)
	suite.True(strings.HasPrefix(result.PaymentURL, "https://checkout.kashier.io/?"))
	q := queryOf(suite.T(), result.PaymentURL)
	suite.Equal("MID-1", q.Get("merchantId"))
	suite.Equal(result.OrderID, q.Get("orderId"))
	suite.Equal("495.00", q.Get("amount"))
	suite.Equal("EGP", q.Get("currency"))
	suite.Equal(services.SignPaymentRequest("MID-1", result.OrderID, "495.00", "EGP", "secret"), q.Get("hash"))
	suite.Equal(true, result.Debug["fallback"])
	suite.Contains(result.Debug["gatewayError"], "status 401")
}

func (suite *CheckoutServiceTestSuite) TestLegacy_AddsUIHintsWithoutGatewayCall() {
	ctx := context.Background()
	suite.settlement.On("ResolveForGateway", ctx, mock.Anything).Return(usdConversion(), nil).Once()

	result, err := suite.service.Checkout(ctx, domain.PaymentFlowLegacy, testOrder())

	suite.Require().NoError(err)
	suite.Regexp(orderIDPattern("LUI"), result.OrderID)
	q := queryOf(suite.T(), result.PaymentURL)
	suite.Equal("ar", q.Get("display"))
	suite.Equal("dark", q.Get("theme"))
	suite.Equal("external", q.Get("type"))
	suite.Equal("495.00", q.Get("amount"))
	suite.Nil(result.FormFields)
	suite.gateway.AssertNotCalled(suite.T(), "CreatePaymentSession", mock.Anything, mock.Anything)
}

func (suite *CheckoutServiceTestSuite) TestDirect_ReturnsFormFieldsMatchingRedirect() {
	ctx := context.Background()
	suite.settlement.On("ResolveForGateway", ctx, mock.Anything).Return(usdConversion(), nil).Once()

	result, err := suite.service.Checkout(ctx, domain.PaymentFlowDirect, testOrder())

	suite.Require().NoError(err)
	suite.Regexp(orderIDPattern("DFP"), result.OrderID)
	suite.Require().NotEmpty(result.FormFields)
	q := queryOf(suite.T(), result.PaymentURL)
	suite.Len(q, len(result.FormFields))
	for k, v := range result.FormFields {
		suite.Equal(v, q.Get(k), "field %s", k)
	}
	suite.Equal("495.00", result.FormFields["amount"])
	suite.Equal("Sara Ali", result.FormFields["customerName"])
	suite.Equal(services.SignPaymentRequest("MID-1", result.OrderID, "495.00", "EGP", "secret"), result.FormFields["hash"])
	suite.gateway.AssertNotCalled(suite.T(), "CreatePaymentSession", mock.Anything, mock.Anything)
}

func (suite *CheckoutServiceTestSuite) TestMissingCredentials_ConfigurationFailure() {
	ctx := context.Background()
	suite.cfg.Kashier.SecretKey = ""
	suite.rebuild()

	result, err := suite.service.Checkout(ctx, domain.PaymentFlowLegacy, testOrder())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.False(result.Success)
	suite.Equal(domain.PlaceholderPaymentURL, result.PaymentURL)
	suite.Contains(result.Error, "secret key")
	suite.Regexp(orderIDPattern("LUI"), result.OrderID)
	suite.settlement.AssertNotCalled(suite.T(), "ResolveForGateway", mock.Anything, mock.Anything)
}

func (suite *CheckoutServiceTestSuite) TestLiveModeWithoutPublicURL_ConfigurationFailure() {
	suite.cfg.Kashier.TestMode = false
	suite.cfg.URLs = config.URLConfig{PublicBaseURL: "http://localhost:3000", IsTestMode: false}
	suite.rebuild()

	result, err := suite.service.Checkout(context.Background(), domain.PaymentFlowHosted, testOrder())

	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.Equal(domain.PlaceholderPaymentURL, result.PaymentURL)
}

func (suite *CheckoutServiceTestSuite) TestValidationFailures() {
	tests := map[string]func(o *domain.Order){
		"no items":     func(o *domain.Order) { o.Items = nil },
		"no email":     func(o *domain.Order) { o.Customer.Email = " " },
		"no phone":     func(o *domain.Order) { o.Customer.Phone = "" },
		"phone dashes": func(o *domain.Order) { o.Customer.Phone = "---" },
		"phone plus":   func(o *domain.Order) { o.Customer.Phone = "+" },
		"zero total":   func(o *domain.Order) { o.Total = decimal.Zero },
		"unknown flow": nil,
	}
	for name, mutate := range tests {
		suite.Run(name, func() {
			order := testOrder()
			flow := domain.PaymentFlowDirect
			if mutate == nil {
				flow = "carrier-pigeon"
			} else {
				mutate(&order)
			}

			result, err := suite.service.Checkout(context.Background(), flow, order)

			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.False(result.Success)
			suite.Equal(domain.PlaceholderPaymentURL, result.PaymentURL)
			suite.NotEmpty(result.Error)
		})
	}
	suite.settlement.AssertNotCalled(suite.T(), "ResolveForGateway", mock.Anything, mock.Anything)
}

func (suite *CheckoutServiceTestSuite) TestSettlementError_GenericFailure() {
	ctx := context.Background()
	suite.settlement.On("ResolveForGateway", ctx, mock.Anything).Return(nil, assert.AnError).Once()

	result, err := suite.service.Checkout(ctx, domain.PaymentFlowHosted, testOrder())

	suite.ErrorIs(err, assert.AnError)
	suite.False(result.Success)
	suite.Equal(domain.PlaceholderPaymentURL, result.PaymentURL)
	suite.Regexp(orderIDPattern("HPP"), result.OrderID)
	suite.NotEmpty(result.Error)
	suite.Contains(result.Debug["error"], assert.AnError.Error())
}

func (suite *CheckoutServiceTestSuite) TestPanicIsRecoveredIntoFailure() {
	service := services.NewCheckoutService(suite.cfg, panickingResolver{}, suite.gateway)

	result, err := service.Checkout(context.Background(), domain.PaymentFlowDirect, testOrder())

	suite.Require().Error(err)
	suite.Require().NotNil(result)
	suite.False(result.Success)
	suite.Equal(domain.PlaceholderPaymentURL, result.PaymentURL)
	suite.Regexp(orderIDPattern("DFP"), result.OrderID)
}

func (suite *CheckoutServiceTestSuite) TestProductionOmitsDebug() {
	ctx := context.Background()
	suite.cfg.IsProduction = true
	suite.rebuild()
	suite.settlement.On("ResolveForGateway", ctx, mock.Anything).Return(usdConversion(), nil).Once()

	result, err := suite.service.Checkout(ctx, domain.PaymentFlowLegacy, testOrder())

	suite.Require().NoError(err)
	suite.Nil(result.Debug)
}

func (suite *CheckoutServiceTestSuite) TestFailureOrderIDIsFresh() {
	ctx := context.Background()
	clock := newFakeClock()
	tracker := new(MockEventTracker)
	tracker.On("Enqueue", mock.Anything, services.EventCheckoutFailed, mock.Anything).Once()
	service := services.NewCheckoutService(suite.cfg, suite.settlement, suite.gateway,
		services.WithCheckoutClock(clock.Now),
		services.WithCheckoutEventTracker(tracker))
	suite.settlement.On("ResolveForGateway", ctx, mock.Anything).Return(nil, errors.New("db down")).Once()

	result, err := service.Checkout(ctx, domain.PaymentFlowHosted, testOrder())

	suite.Require().Error(err)
	suite.True(strings.HasPrefix(result.OrderID, fmt.Sprintf("HPP-%d-", clock.Now().UnixMilli())))
	tracker.AssertExpectations(suite.T())
}

func TestCheckoutServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutServiceTestSuite))
}

func TestSignPaymentRequest_ReferenceDigest(t *testing.T) {
	got := services.SignPaymentRequest("MID-1", "ORD-1", "100.00", "EGP", "secret")
	assert.Equal(t, referenceHash, got)

	for i := 0; i < 5; i++ {
		assert.Equal(t, got, services.SignPaymentRequest("MID-1", "ORD-1", "100.00", "EGP", "secret"))
	}
	assert.NotEqual(t, got, services.SignPaymentRequest("MID-1", "ORD-1", "100.0", "EGP", "secret"))
}

func TestGenerateOrderID_FormatAndUniqueness(t *testing.T) {
	for _, flow := range []domain.PaymentFlow{domain.PaymentFlowHosted, domain.PaymentFlowLegacy, domain.PaymentFlowDirect} {
		prefix := flow.OrderIDPrefix()
		pattern := orderIDPattern(prefix)
		seen := make(map[string]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			id, err := services.GenerateOrderID(prefix, time.Now())
			require.NoError(t, err)
			require.Regexp(t, pattern, id)
			_, dup := seen[id]
			require.False(t, dup, "duplicate order id %s", id)
			seen[id] = struct{}{}
		}
	}
}

func TestBuildPaymentURLs(t *testing.T) {
	urls := services.BuildPaymentURLs("https://shop.example.com/", "HPP-1-abcdef")

	assert.Equal(t, "https://shop.example.com/checkout/success?orderId=HPP-1-abcdef", urls.Success)
	assert.Equal(t, "https://shop.example.com/checkout/failure?orderId=HPP-1-abcdef", urls.Failure)
	assert.Equal(t, "https://shop.example.com/checkout/cancel?orderId=HPP-1-abcdef", urls.Cancel)
	assert.Equal(t, "https://shop.example.com/api/v1/payments/webhook?orderId=HPP-1-abcdef", urls.Webhook)
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		mode string
		want string
	}{
		{"strict strips markup and punctuation", `<script>alert("x")</script>`, config.SanitizeModeStrict, "scriptalertxscript"},
		{"basic strips only markup chars", `<script>alert("x")</script>`, config.SanitizeModeBasic, "scriptalert(x)/script"},
		{"strict keeps arabic letters", "محمد علي", config.SanitizeModeStrict, "محمد علي"},
		{"strict keeps allowed symbols", "jo-ann_o.k@shop", config.SanitizeModeStrict, "jo-ann_o.k@shop"},
		{"collapses whitespace", "  John \n  Doe ", config.SanitizeModeStrict, "John Doe"},
		{"ampersand removed", "Tom & Jerry", config.SanitizeModeBasic, "Tom Jerry"},
		{"empty", "", config.SanitizeModeStrict, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.SanitizeText(tt.in, tt.mode))
		})
	}

	long := strings.Repeat("a", 150)
	assert.Len(t, services.SanitizeText(long, config.SanitizeModeStrict), 100)
}

func TestFormatPhone(t *testing.T) {
	tests := map[string]string{
		"01012345678":       "+201012345678",
		"201012345678":      "+201012345678",
		"+20 101 234 5678":  "+201012345678",
		"00201012345678":    "+201012345678",
		"0101-234-5678":     "+201012345678",
		"(555) 123-4567":    "+5551234567",
		"+1 (555) 123-4567": "+15551234567",
		"":                  "",
		"n/a":               "",
		"+":                 "",
		"00":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, services.FormatPhone(in), "FormatPhone(%q)", in)
	}
}
