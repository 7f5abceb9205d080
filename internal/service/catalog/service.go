// Package catalog holds the menu as an immutable in-memory snapshot loaded
// once at startup. Pricing and the HTTP handlers read from the snapshot, so
// unit prices captured in the cart are not affected by later catalog edits.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"

	"dogohouse/internal/domain"
)

type menuRepo interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListOptionGroups(ctx context.Context) ([]domain.OptionGroup, error)
}

type Service struct {
	logger   *log.Logger
	products []domain.Product
	byID     map[string]int
	groups   []domain.OptionGroup
	deltas   map[string]map[string]decimal.Decimal
	names    map[string]map[string]string
}

// Load reads the full menu from the repository into a snapshot.
func Load(ctx context.Context, repo menuRepo, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	groups, err := repo.ListOptionGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list option groups: %w", err)
	}

	s := &Service{
		logger:   logger,
		products: products,
		byID:     make(map[string]int, len(products)),
		groups:   groups,
		deltas:   make(map[string]map[string]decimal.Decimal, len(groups)),
		names:    make(map[string]map[string]string, len(groups)),
	}
	for i, p := range products {
		s.byID[p.ID] = i
	}
	for _, g := range groups {
		deltas := make(map[string]decimal.Decimal, len(g.Options))
		names := make(map[string]string, len(g.Options))
		for _, opt := range g.Options {
			deltas[opt.ID] = opt.PriceDelta
			names[opt.ID] = opt.Name
		}
		s.deltas[g.Key] = deltas
		s.names[g.Key] = names
	}
	logger.Printf("catalog: loaded products=%d option_groups=%d", len(products), len(groups))
	return s, nil
}

// Products lists the menu, optionally filtered by category.
func (s *Service) Products(category string) []domain.Product {
	if category == "" {
		out := make([]domain.Product, len(s.products))
		copy(out, s.products)
		return out
	}
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) Product(id string) (*domain.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p := s.products[i]
	return &p, nil
}

func (s *Service) OptionGroups() []domain.OptionGroup {
	out := make([]domain.OptionGroup, len(s.groups))
	copy(out, s.groups)
	return out
}

// OptionDelta implements the pricing engine's catalog lookup.
func (s *Service) OptionDelta(groupKey, optionID string) (decimal.Decimal, bool) {
	delta, ok := s.deltas[groupKey][optionID]
	return delta, ok
}

// OptionName resolves an option id to its display name for message rendering.
func (s *Service) OptionName(groupKey, optionID string) (string, bool) {
	name, ok := s.names[groupKey][optionID]
	return name, ok
}
