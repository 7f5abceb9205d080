package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"dogohouse/internal/domain"
)

type menuWriter interface {
	UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	UpsertOptionGroup(ctx context.Context, g domain.OptionGroup) error
}

// Apply inserts the default hot-dog menu. Idempotent via upserts.
func Apply(ctx context.Context, repo menuWriter) error {
	products := []domain.Product{
		{Key: "dogo-clasico", Name: "Dogo Clásico", Description: "Salchicha de pavo, pan clásico, vegetales frescos", BasePrice: decimal.NewFromInt(45), Category: "dogos", Available: true},
		{Key: "dogo-especial", Name: "Dogo Especial", Description: "Salchicha envuelta en tocino con queso fundido", BasePrice: decimal.NewFromInt(60), Category: "dogos", Available: true},
		{Key: "dogo-momia", Name: "Dogo Momia", Description: "Salchicha envuelta en masa hojaldrada", BasePrice: decimal.NewFromInt(75), Category: "dogos", Available: true},
		{Key: "hamburguesa-casera", Name: "Hamburguesa Casera", Description: "Carne de res, queso y vegetales", BasePrice: decimal.NewFromInt(70), Category: "hamburguesas", Available: true},
		{Key: "refresco", Name: "Refresco", Description: "Lata 355 ml", BasePrice: decimal.NewFromInt(25), Category: "bebidas", Available: true},
		{Key: "agua-fresca", Name: "Agua Fresca", Description: "Vaso 500 ml, sabor del día", BasePrice: decimal.NewFromInt(20), Category: "bebidas", Available: true},
	}

	groups := []domain.OptionGroup{
		{
			Key: "size", Name: "Tamaño", MultiChoice: false,
			Options: []domain.Option{
				{ID: "sencillo", Name: "Sencillo", PriceDelta: decimal.Zero},
				{ID: "jumbo", Name: "Jumbo", PriceDelta: decimal.NewFromInt(15)},
			},
		},
		{
			Key: "bread", Name: "Pan", MultiChoice: false,
			Options: []domain.Option{
				{ID: "clasico", Name: "Clásico", PriceDelta: decimal.Zero},
				{ID: "brioche", Name: "Brioche", PriceDelta: decimal.NewFromInt(5)},
				{ID: "integral", Name: "Integral", PriceDelta: decimal.NewFromInt(5)},
			},
		},
		{
			Key: "ingredients", Name: "Ingredientes", MultiChoice: true,
			Options: []domain.Option{
				{ID: "tocino", Name: "Tocino", PriceDelta: decimal.NewFromInt(10)},
				{ID: "queso", Name: "Queso", PriceDelta: decimal.NewFromInt(8)},
				{ID: "aguacate", Name: "Aguacate", PriceDelta: decimal.NewFromInt(12)},
				{ID: "pina", Name: "Piña", PriceDelta: decimal.NewFromInt(5)},
				{ID: "jalapeno", Name: "Jalapeño", PriceDelta: decimal.NewFromInt(3)},
				{ID: "champinones", Name: "Champiñones", PriceDelta: decimal.NewFromInt(8)},
			},
		},
		{
			Key: "sauces", Name: "Salsas", MultiChoice: true,
			Options: []domain.Option{
				{ID: "ketchup", Name: "Ketchup", PriceDelta: decimal.Zero},
				{ID: "mostaza", Name: "Mostaza", PriceDelta: decimal.Zero},
				{ID: "mayonesa", Name: "Mayonesa", PriceDelta: decimal.Zero},
				{ID: "chipotle", Name: "Chipotle", PriceDelta: decimal.NewFromInt(5)},
				{ID: "habanero", Name: "Habanero", PriceDelta: decimal.NewFromInt(5)},
			},
		},
	}

	for _, p := range products {
		if _, err := repo.UpsertProduct(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Key, err)
		}
	}
	for _, g := range groups {
		if err := repo.UpsertOptionGroup(ctx, g); err != nil {
			return fmt.Errorf("upsert option group %s: %w", g.Key, err)
		}
	}
	return nil
}
