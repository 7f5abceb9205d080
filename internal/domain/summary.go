package domain

import "github.com/shopspring/decimal"

// OrderSummary is derived from cart lines on every read, never stored.
// All amounts are rounded to 2 decimal places (half-up) at this snapshot.
type OrderSummary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

// FreeDelivery reports whether the delivery fee line should render as free.
func (s OrderSummary) FreeDelivery() bool {
	return s.DeliveryFee.IsZero()
}
