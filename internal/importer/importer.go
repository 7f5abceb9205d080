// Package importer loads a JSON menu document into the repository, for
// taking over an existing menu export instead of the built-in seed.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"dogohouse/internal/domain"
)

type MenuWriter interface {
	UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	UpsertOptionGroup(ctx context.Context, g domain.OptionGroup) error
}

// JSONImporter reads a menu document and inserts/updates products and
// option groups.
type JSONImporter struct {
	reader io.Reader
	repo   MenuWriter
}

func NewJSONImporter(r io.Reader, repo MenuWriter) *JSONImporter {
	return &JSONImporter{reader: r, repo: repo}
}

type menuDocument struct {
	Products     []productDoc     `json:"products"`
	OptionGroups []optionGroupDoc `json:"optionGroups"`
}

type productDoc struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	BasePrice   string `json:"basePrice"`
	Category    string `json:"category"`
	Available   *bool  `json:"available"`
}

type optionGroupDoc struct {
	Key         string      `json:"key"`
	Name        string      `json:"name"`
	MultiChoice bool        `json:"multiChoice"`
	Options     []optionDoc `json:"options"`
}

type optionDoc struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta string `json:"priceDelta"`
}

// Run parses the document and upserts its contents. Returns the number of
// products imported.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var doc menuDocument
	if err := json.NewDecoder(i.reader).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode menu document: %w", err)
	}

	imported := 0
	for _, p := range doc.Products {
		product, err := parseProduct(p)
		if err != nil {
			return imported, err
		}
		if _, err := i.repo.UpsertProduct(ctx, *product); err != nil {
			return imported, fmt.Errorf("upsert product %s: %w", product.Key, err)
		}
		imported++
	}

	for _, g := range doc.OptionGroups {
		group, err := parseOptionGroup(g)
		if err != nil {
			return imported, err
		}
		if err := i.repo.UpsertOptionGroup(ctx, *group); err != nil {
			return imported, fmt.Errorf("upsert option group %s: %w", group.Key, err)
		}
	}
	return imported, nil
}

func parseProduct(p productDoc) (*domain.Product, error) {
	if strings.TrimSpace(p.Key) == "" || strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("product %q: key and name are required", p.Key)
	}
	price, err := decimal.NewFromString(p.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("product %s: bad basePrice %q", p.Key, p.BasePrice)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("product %s: negative basePrice", p.Key)
	}
	available := true
	if p.Available != nil {
		available = *p.Available
	}
	return &domain.Product{
		Key:         p.Key,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   price,
		Category:    p.Category,
		Available:   available,
	}, nil
}

func parseOptionGroup(g optionGroupDoc) (*domain.OptionGroup, error) {
	if strings.TrimSpace(g.Key) == "" {
		return nil, fmt.Errorf("option group: key is required")
	}
	group := domain.OptionGroup{
		Key:         g.Key,
		Name:        g.Name,
		MultiChoice: g.MultiChoice,
		Options:     make([]domain.Option, 0, len(g.Options)),
	}
	for _, opt := range g.Options {
		if strings.TrimSpace(opt.ID) == "" {
			return nil, fmt.Errorf("option group %s: option id is required", g.Key)
		}
		delta := decimal.Zero
		if opt.PriceDelta != "" {
			var err error
			delta, err = decimal.NewFromString(opt.PriceDelta)
			if err != nil {
				return nil, fmt.Errorf("option %s/%s: bad priceDelta %q", g.Key, opt.ID, opt.PriceDelta)
			}
		}
		group.Options = append(group.Options, domain.Option{ID: opt.ID, Name: opt.Name, PriceDelta: delta})
	}
	return &group, nil
}
