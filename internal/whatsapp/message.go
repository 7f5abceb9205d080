// Package whatsapp renders an order into the click-to-chat text message and
// deep link. The message is plain text only: the web storefront decorated
// sections with emoji, but those are replaced here by text labels so the
// payload survives percent-encoding everywhere (a documented lossy step).
package whatsapp

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"dogohouse/internal/domain"
)

// maxCustomizationsPerLine caps the group:value pairs rendered per cart
// line to bound the total message length.
const maxCustomizationsPerLine = 3

// groupOrder fixes the render order of well-known customization groups;
// unknown groups follow alphabetically.
var groupOrder = []string{"size", "bread", "ingredients", "sauces"}

// OptionNamer resolves catalog display names. Unresolvable ids fall back
// to their raw value so formatting never fails on catalog drift.
type OptionNamer interface {
	OptionName(groupKey, optionID string) (string, bool)
}

type Formatter struct {
	businessName string
	names        OptionNamer
}

func NewFormatter(businessName string, names OptionNamer) *Formatter {
	return &Formatter{businessName: businessName, names: names}
}

// Format serializes customer info, cart lines and the order summary into
// the outbound message. Formatting an empty cart is a caller error.
func (f *Formatter) Format(customer domain.CustomerInfo, lines []domain.CartLine, summary domain.OrderSummary) (string, error) {
	if len(lines) == 0 {
		return "", domain.ErrEmptyCart
	}

	var b strings.Builder
	fmt.Fprintf(&b, "NUEVO PEDIDO - %s\n", f.businessName)
	b.WriteString("------------------------------\n")

	fmt.Fprintf(&b, "Cliente: %s\n", strings.TrimSpace(customer.Name))
	fmt.Fprintf(&b, "Telefono: %s\n", customer.Phone)
	if customer.DeliveryMode == domain.DeliveryModePickup {
		b.WriteString("Entrega: Recoger en tienda\n")
	} else {
		b.WriteString("Entrega: A domicilio\n")
		fmt.Fprintf(&b, "Direccion: %s\n", strings.TrimSpace(customer.Address))
	}
	if notes := strings.TrimSpace(customer.Notes); notes != "" {
		fmt.Fprintf(&b, "Notas: %s\n", notes)
	}

	b.WriteString("\nPedido:\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "- %s x%d ($%s c/u)\n", line.Product.Name, line.Quantity, money(line.UnitPrice))
		for _, pair := range f.customizationPairs(line.Selection) {
			fmt.Fprintf(&b, "  %s\n", pair)
		}
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", money(summary.Subtotal))
	fmt.Fprintf(&b, "IVA: $%s\n", money(summary.Tax))
	if summary.FreeDelivery() {
		b.WriteString("Envio: GRATIS\n")
	} else {
		fmt.Fprintf(&b, "Envio: $%s\n", money(summary.DeliveryFee))
	}
	fmt.Fprintf(&b, "TOTAL: $%s\n", money(summary.Total))

	return b.String(), nil
}

// BuildDeepLink produces the wa.me click-to-chat URL with the message as
// the percent-encoded text parameter. The business phone keeps digits only.
func (f *Formatter) BuildDeepLink(businessPhone, message string) (string, error) {
	var digits strings.Builder
	for _, r := range businessPhone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", fmt.Errorf("business phone %q has no digits", businessPhone)
	}
	if message == "" {
		return "", fmt.Errorf("empty message")
	}

	// url.QueryEscape uses + for spaces; WhatsApp wants %20.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + digits.String() + "?text=" + encoded, nil
}

// customizationPairs renders at most maxCustomizationsPerLine "Group:
// names" pairs in a deterministic order.
func (f *Formatter) customizationPairs(sel domain.Selection) []string {
	canonical := sel.Canonical()
	if len(canonical) == 0 {
		return nil
	}

	keys := make([]string, 0, len(canonical))
	for key := range canonical {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return groupRank(keys[i]) < groupRank(keys[j]) ||
			(groupRank(keys[i]) == groupRank(keys[j]) && keys[i] < keys[j])
	})

	pairs := make([]string, 0, maxCustomizationsPerLine)
	for _, key := range keys {
		if len(pairs) == maxCustomizationsPerLine {
			break
		}
		names := make([]string, 0, len(canonical[key]))
		for _, id := range canonical[key] {
			if name, ok := f.names.OptionName(key, id); ok {
				names = append(names, name)
			} else {
				names = append(names, id)
			}
		}
		pairs = append(pairs, fmt.Sprintf("%s: %s", groupLabel(key), strings.Join(names, ", ")))
	}
	return pairs
}

func groupRank(key string) int {
	for i, k := range groupOrder {
		if k == key {
			return i
		}
	}
	return len(groupOrder)
}

var groupLabels = map[string]string{
	"size":        "Tamano",
	"bread":       "Pan",
	"ingredients": "Ingredientes",
	"sauces":      "Salsas",
}

func groupLabel(key string) string {
	if label, ok := groupLabels[key]; ok {
		return label
	}
	return key
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
