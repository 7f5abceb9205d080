package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one priced, quantity-bearing entry in a cart, keyed by
// product + canonical selection. UnitPrice is fixed when the line is first
// added and is never recomputed from the live catalog.
type CartLine struct {
	ID        string          `json:"id"`
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	Selection Selection       `json:"selection,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Total is the line's extended price (unit price times quantity).
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
