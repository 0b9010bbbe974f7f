package domain

import "github.com/shopspring/decimal"

// PaymentFlow selects how a checkout is handed to the gateway.
type PaymentFlow string

const (
	// PaymentFlowHosted creates a payment session server-to-server and redirects to the returned page.
	PaymentFlowHosted PaymentFlow = "hosted"
	// PaymentFlowLegacy redirects straight to the gateway checkout UI with a signed query string.
	PaymentFlowLegacy PaymentFlow = "legacy"
	// PaymentFlowDirect builds a form payload and also exposes it as a GET redirect.
	PaymentFlowDirect PaymentFlow = "direct"
)

// OrderIDPrefix is the prefix each flow stamps on the order ids it generates.
func (f PaymentFlow) OrderIDPrefix() string {
	switch f {
	case PaymentFlowHosted:
		return "HPP"
	case PaymentFlowLegacy:
		return "LUI"
	case PaymentFlowDirect:
		return "DFP"
	default:
		return "ORD"
	}
}

// IsValid reports whether f is a known flow.
func (f PaymentFlow) IsValid() bool {
	switch f {
	case PaymentFlowHosted, PaymentFlowLegacy, PaymentFlowDirect:
		return true
	}
	return false
}

// OrderItem is a single cart line.
type OrderItem struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Customer holds the buyer details sent to the gateway.
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Order is what the storefront hands over at checkout. Total is in the site display currency.
type Order struct {
	Items    []OrderItem
	Customer Customer
	Total    decimal.Decimal
}

// PaymentURLs are the gateway callback destinations for one order.
type PaymentURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Cancel  string `json:"cancel"`
	Webhook string `json:"webhook"`
}

// PaymentRequest is the signed, flow-independent request sent to the gateway.
// Amount is the settlement amount fixed to two decimals.
type PaymentRequest struct {
	MerchantID  string
	OrderID     string
	Amount      string
	Currency    CurrencyCode
	Hash        string
	Mode        string
	Description string
	Customer    Customer
	URLs        PaymentURLs
}

// PlaceholderPaymentURL is returned whenever no usable payment page exists.
const PlaceholderPaymentURL = "#"

// CheckoutResult is returned to the storefront for every checkout attempt.
type CheckoutResult struct {
	Success            bool                  `json:"success"`
	Flow               PaymentFlow           `json:"flow"`
	OrderID            string                `json:"orderId"`
	PaymentURL         string                `json:"paymentUrl"`
	CurrencyConversion *SettlementConversion `json:"currencyConversion,omitempty"`
	FormFields         map[string]string     `json:"formFields,omitempty"`
	Error              string                `json:"error,omitempty"`
	Debug              map[string]any        `json:"debug,omitempty"`
}
