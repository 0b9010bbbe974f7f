package dto

import (
	"github.com/AhmedRagabRG/exabytex-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CheckoutItemRequest is a single cart line as posted by the storefront.
type CheckoutItemRequest struct {
	ID       string          `json:"id" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
}

// CheckoutCustomerRequest holds the buyer details.
type CheckoutCustomerRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
}

// CheckoutTotalsRequest carries the cart total in the site display currency.
type CheckoutTotalsRequest struct {
	Total decimal.Decimal `json:"total"`
}

// CheckoutRequest is the order payload accepted by all three checkout flows.
type CheckoutRequest struct {
	Items    []CheckoutItemRequest   `json:"items" binding:"required,min=1,dive"`
	Customer CheckoutCustomerRequest `json:"customer"`
	Totals   CheckoutTotalsRequest   `json:"totals"`
}

// ToDomainOrder converts the request into a domain.Order.
func (r CheckoutRequest) ToDomainOrder() domain.Order {
	items := make([]domain.OrderItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.OrderItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		}
	}
	return domain.Order{
		Items: items,
		Customer: domain.Customer{
			FirstName: r.Customer.FirstName,
			LastName:  r.Customer.LastName,
			Email:     r.Customer.Email,
			Phone:     r.Customer.Phone,
		},
		Total: r.Totals.Total,
	}
}
