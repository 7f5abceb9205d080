// Package pricing computes line prices from a base price and a
// customization selection resolved against the option catalog.
package pricing

import (
	"github.com/shopspring/decimal"

	"dogohouse/internal/domain"
)

// OptionCatalog resolves an option id within a group to its price delta.
type OptionCatalog interface {
	OptionDelta(groupKey, optionID string) (decimal.Decimal, bool)
}

type Engine struct {
	catalog OptionCatalog
}

func New(catalog OptionCatalog) *Engine {
	return &Engine{catalog: catalog}
}

// LinePrice returns basePrice plus the sum of all resolvable option deltas.
// Ids missing from the catalog contribute zero; the engine never errors so
// that catalog drift cannot fail a cart operation. Negative deltas pass
// through unclamped.
func (e *Engine) LinePrice(basePrice decimal.Decimal, sel domain.Selection) decimal.Decimal {
	total := basePrice
	for group, ids := range sel.Canonical() {
		for _, id := range ids {
			delta, ok := e.catalog.OptionDelta(group, id)
			if !ok {
				continue
			}
			total = total.Add(delta)
		}
	}
	return total
}
