package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dogohouse/internal/domain"
)

type reviewRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	DeliveryMode string `json:"deliveryMode"`
	Address      string `json:"address"`
	Notes        string `json:"notes"`
	Country      string `json:"country"`
}

type checkoutStateResponse struct {
	SessionID string               `json:"sessionId"`
	State     string               `json:"state"`
	Customer  *domain.CustomerInfo `json:"customer,omitempty"`
}

func checkoutStateHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		resp := checkoutStateResponse{
			SessionID: sid,
			State:     string(deps.Checkout.State(sid)),
		}
		if customer, ok := deps.Checkout.Customer(sid); ok && customer.Name != "" {
			resp.Customer = &customer
		}
		c.JSON(http.StatusOK, resp)
	}
}

func checkoutBeginHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Checkout.Begin(sessionID(c)); err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": string(deps.Checkout.State(sessionID(c)))})
	}
}

func checkoutReviewHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		customer := domain.CustomerInfo{
			Name:         req.Name,
			Phone:        req.Phone,
			DeliveryMode: domain.DeliveryMode(req.DeliveryMode),
			Address:      req.Address,
			Notes:        req.Notes,
			Country:      domain.Country(req.Country),
		}
		fields, err := deps.Checkout.Review(sessionID(c), customer)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		if len(fields) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"fields": fields})
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": string(deps.Checkout.State(sessionID(c)))})
	}
}

func checkoutBackHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Checkout.Back(sessionID(c)); err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"state": string(deps.Checkout.State(sessionID(c)))})
	}
}

func checkoutDispatchHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		dispatch, err := deps.Checkout.DispatchOrder(sessionID(c))
		if err != nil {
			respondCheckoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, dispatch)
	}
}

func respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
