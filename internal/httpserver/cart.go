package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dogohouse/internal/domain"
)

type addItemRequest struct {
	ProductID string              `json:"productId" binding:"required"`
	Selection map[string][]string `json:"selection"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartLineResponse struct {
	ID        string              `json:"id"`
	Product   menuProduct         `json:"product"`
	Quantity  int                 `json:"quantity"`
	Selection map[string][]string `json:"selection,omitempty"`
	UnitPrice string              `json:"unitPrice"`
	LineTotal string              `json:"lineTotal"`
	AddedAt   time.Time           `json:"addedAt"`
}

type summaryResponse struct {
	DeliveryMode string `json:"deliveryMode"`
	Subtotal     string `json:"subtotal"`
	Tax          string `json:"tax"`
	DeliveryFee  string `json:"deliveryFee"`
	FreeDelivery bool   `json:"freeDelivery"`
	Total        string `json:"total"`
}

type cartResponse struct {
	SessionID     string             `json:"sessionId"`
	Lines         []cartLineResponse `json:"lines"`
	TotalQuantity int                `json:"totalQuantity"`
	Summary       summaryResponse    `json:"summary"`
}

func addItemHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product, err := deps.Catalog.Product(req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !product.Available {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product not available"})
			return
		}

		deps.Carts.AddItem(sessionID(c), *product, domain.Selection(req.Selection))
		c.JSON(http.StatusCreated, buildCartResponse(c, deps, domain.DeliveryModeDelivery))
	}
}

func getCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := domain.DeliveryModeDelivery
		if raw := c.Query("mode"); raw != "" {
			parsed, err := domain.ParseDeliveryMode(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			mode = parsed
		}
		c.JSON(http.StatusOK, buildCartResponse(c, deps, mode))
	}
}

func setQuantityHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		deps.Carts.SetQuantity(sessionID(c), c.Param("lineID"), *req.Quantity)
		c.JSON(http.StatusOK, buildCartResponse(c, deps, domain.DeliveryModeDelivery))
	}
}

func removeLineHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Carts.RemoveLine(sessionID(c), c.Param("lineID"))
		c.JSON(http.StatusOK, buildCartResponse(c, deps, domain.DeliveryModeDelivery))
	}
}

func clearCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Carts.Clear(sessionID(c))
		c.JSON(http.StatusOK, buildCartResponse(c, deps, domain.DeliveryModeDelivery))
	}
}

func buildCartResponse(c *gin.Context, deps Deps, mode domain.DeliveryMode) cartResponse {
	sid := sessionID(c)
	lines := deps.Carts.Lines(sid)
	summary := deps.Checkout.Summarize(lines, mode)

	out := make([]cartLineResponse, 0, len(lines))
	total := 0
	for _, line := range lines {
		total += line.Quantity
		out = append(out, cartLineResponse{
			ID:        line.ID,
			Product:   toMenuProduct(line.Product),
			Quantity:  line.Quantity,
			Selection: line.Selection,
			UnitPrice: line.UnitPrice.StringFixed(2),
			LineTotal: line.Total().StringFixed(2),
			AddedAt:   line.AddedAt,
		})
	}

	return cartResponse{
		SessionID:     sid,
		Lines:         out,
		TotalQuantity: total,
		Summary: summaryResponse{
			DeliveryMode: string(mode),
			Subtotal:     summary.Subtotal.StringFixed(2),
			Tax:          summary.Tax.StringFixed(2),
			DeliveryFee:  summary.DeliveryFee.StringFixed(2),
			FreeDelivery: summary.FreeDelivery(),
			Total:        summary.Total.StringFixed(2),
		},
	}
}
