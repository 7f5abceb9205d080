package menu

import (
	"context"

	"dogohouse/internal/domain"
)

// Repository stores the menu reference data: products and the
// customization option catalog.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListOptionGroups(ctx context.Context) ([]domain.OptionGroup, error)
	UpsertProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	UpsertOptionGroup(ctx context.Context, g domain.OptionGroup) error
}
