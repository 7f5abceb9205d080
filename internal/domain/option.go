package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Option is a single selectable customization (e.g. "tocino") with its price delta.
// Negative deltas are allowed; pricing does not clamp them.
type Option struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"priceDelta"`
}

// OptionGroup is one customization dimension of a product (size, bread,
// ingredients, sauces). Single-choice groups carry exactly one selected id.
type OptionGroup struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	MultiChoice bool     `json:"multiChoice"`
	Options     []Option `json:"options"`
}

// Selection maps an option-group key to the chosen option ids.
type Selection map[string][]string

// Canonical returns a normalized copy: ids sorted and deduplicated, empty
// groups dropped. Canonical forms are what cart merging compares.
func (s Selection) Canonical() Selection {
	if len(s) == 0 {
		return Selection{}
	}
	out := make(Selection, len(s))
	for group, ids := range s {
		if len(ids) == 0 {
			continue
		}
		seen := make(map[string]struct{}, len(ids))
		clean := make([]string, 0, len(ids))
		for _, id := range ids {
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			clean = append(clean, id)
		}
		if len(clean) == 0 {
			continue
		}
		sort.Strings(clean)
		out[group] = clean
	}
	return out
}

// Equal reports whether two selections are the same regardless of id order.
func (s Selection) Equal(other Selection) bool {
	a, b := s.Canonical(), other.Canonical()
	if len(a) != len(b) {
		return false
	}
	for group, ids := range a {
		bids, ok := b[group]
		if !ok || len(bids) != len(ids) {
			return false
		}
		for i := range ids {
			if ids[i] != bids[i] {
				return false
			}
		}
	}
	return true
}
