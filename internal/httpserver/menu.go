package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dogohouse/internal/domain"
)

type menuProduct struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BasePrice   string `json:"basePrice"`
	Category    string `json:"category"`
	Available   bool   `json:"available"`
}

type menuOption struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta string `json:"priceDelta"`
}

type menuOptionGroup struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	MultiChoice bool         `json:"multiChoice"`
	Options     []menuOption `json:"options"`
}

func listMenuHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		products := deps.Catalog.Products(c.Query("category"))
		out := make([]menuProduct, 0, len(products))
		for _, p := range products {
			out = append(out, toMenuProduct(p))
		}
		c.JSON(http.StatusOK, gin.H{"products": out})
	}
}

func listOptionsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		groups := deps.Catalog.OptionGroups()
		out := make([]menuOptionGroup, 0, len(groups))
		for _, g := range groups {
			options := make([]menuOption, 0, len(g.Options))
			for _, opt := range g.Options {
				options = append(options, menuOption{
					ID:         opt.ID,
					Name:       opt.Name,
					PriceDelta: opt.PriceDelta.StringFixed(2),
				})
			}
			out = append(out, menuOptionGroup{
				Key:         g.Key,
				Name:        g.Name,
				MultiChoice: g.MultiChoice,
				Options:     options,
			})
		}
		c.JSON(http.StatusOK, gin.H{"optionGroups": out})
	}
}

func toMenuProduct(p domain.Product) menuProduct {
	return menuProduct{
		ID:          p.ID,
		Key:         p.Key,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice.StringFixed(2),
		Category:    p.Category,
		Available:   p.Available,
	}
}
