package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dogohouse/internal/domain"
	"dogohouse/internal/service/cart"
	"dogohouse/internal/service/catalog"
	"dogohouse/internal/service/checkout"
	"dogohouse/internal/service/pricing"
	"dogohouse/internal/whatsapp"
)

type stubMenuRepo struct{}

func (stubMenuRepo) ListProducts(context.Context) ([]domain.Product, error) {
	return []domain.Product{
		{ID: "p1", Key: "dogo-especial", Name: "Dogo Especial", BasePrice: decimal.NewFromInt(75), Category: "dogos", Available: true},
		{ID: "p2", Key: "agua-fresca", Name: "Agua Fresca", BasePrice: decimal.NewFromInt(20), Category: "bebidas", Available: true},
		{ID: "p3", Key: "dogo-momia", Name: "Dogo Momia", BasePrice: decimal.NewFromInt(80), Category: "dogos", Available: false},
	}, nil
}

func (stubMenuRepo) ListOptionGroups(context.Context) ([]domain.OptionGroup, error) {
	return []domain.OptionGroup{
		{Key: "size", Name: "Tamaño", Options: []domain.Option{
			{ID: "jumbo", Name: "Jumbo", PriceDelta: decimal.NewFromInt(15)},
		}},
		{Key: "ingredients", Name: "Ingredientes", MultiChoice: true, Options: []domain.Option{
			{ID: "queso", Name: "Queso", PriceDelta: decimal.NewFromInt(5)},
		}},
	}, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogSvc, err := catalog.Load(context.Background(), stubMenuRepo{}, nil)
	require.NoError(t, err)

	carts := cart.New(pricing.New(catalogSvc), nil)
	checkoutSvc := checkout.New(checkout.Config{
		TaxRate:               decimal.RequireFromString("0.16"),
		FreeDeliveryThreshold: decimal.NewFromInt(200),
		FlatDeliveryFee:       decimal.NewFromInt(35),
		BusinessPhones: map[domain.Country]string{
			domain.CountryMexico: "528199990000",
		},
	}, carts, whatsapp.NewFormatter("Dogo House", catalogSvc), nil)

	logger := log.New(io.Discard, "", 0)
	return buildRouter(logger, nil, Deps{Catalog: catalogSvc, Carts: carts, Checkout: checkoutSvc}, nil)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, session string, body any) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(sessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, rec.Header().Get(sessionHeader)
}

func TestMenuFiltersByCategory(t *testing.T) {
	router := testRouter(t)
	rec, _ := doJSON(t, router, http.MethodGet, "/menu?category=dogos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products []menuProduct `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Products, 2)
	for _, p := range resp.Products {
		assert.Equal(t, "dogos", p.Category)
	}
}

func TestMenuOptions(t *testing.T) {
	router := testRouter(t)
	rec, _ := doJSON(t, router, http.MethodGet, "/menu/options", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OptionGroups []menuOptionGroup `json:"optionGroups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.OptionGroups, 2)
	assert.Equal(t, "15.00", resp.OptionGroups[0].Options[0].PriceDelta)
}

func TestAddItemIssuesSession(t *testing.T) {
	router := testRouter(t)
	rec, session := doJSON(t, router, http.MethodPost, "/cart/items", "", addItemRequest{ProductID: "p1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, session)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, session, resp.SessionID)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "75.00", resp.Lines[0].UnitPrice)
}

func TestAddItemMergesAndPrices(t *testing.T) {
	router := testRouter(t)
	body := addItemRequest{
		ProductID: "p1",
		Selection: map[string][]string{"size": {"jumbo"}, "ingredients": {"queso"}},
	}
	_, session := doJSON(t, router, http.MethodPost, "/cart/items", "", body)
	rec, _ := doJSON(t, router, http.MethodPost, "/cart/items", session, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 2, resp.Lines[0].Quantity)
	assert.Equal(t, "95.00", resp.Lines[0].UnitPrice)
	// subtotal 190 <= 200 so delivery still charges
	assert.Equal(t, "190.00", resp.Summary.Subtotal)
	assert.Equal(t, "30.40", resp.Summary.Tax)
	assert.Equal(t, "35.00", resp.Summary.DeliveryFee)
	assert.Equal(t, "255.40", resp.Summary.Total)
}

func TestGetCartPickupMode(t *testing.T) {
	router := testRouter(t)
	_, session := doJSON(t, router, http.MethodPost, "/cart/items", "", addItemRequest{ProductID: "p2"})

	rec, _ := doJSON(t, router, http.MethodGet, "/cart?mode=pickup", session, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0.00", resp.Summary.DeliveryFee)
	assert.True(t, resp.Summary.FreeDelivery)
}

func TestAddItemRejections(t *testing.T) {
	router := testRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/cart/items", "", addItemRequest{ProductID: "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/cart/items", "", addItemRequest{ProductID: "p3"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/cart/items", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	router := testRouter(t)
	rec, session := doJSON(t, router, http.MethodPost, "/cart/items", "", addItemRequest{ProductID: "p1"})
	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	lineID := resp.Lines[0].ID

	zero := 0
	rec, _ = doJSON(t, router, http.MethodPatch, "/cart/items/"+lineID, session, setQuantityRequest{Quantity: &zero})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Lines)
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	router := testRouter(t)
	_, session := doJSON(t, router, http.MethodPost, "/cart/items", "", addItemRequest{ProductID: "p1"})

	rec, _ := doJSON(t, router, http.MethodPost, "/checkout/begin", session, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// invalid customer blocks the transition with a field map
	rec, _ = doJSON(t, router, http.MethodPost, "/checkout/review", session, reviewRequest{
		Name: "", Phone: "123", DeliveryMode: "delivery", Country: "mexico",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var invalid struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &invalid))
	assert.Contains(t, invalid.Fields, "name")
	assert.Contains(t, invalid.Fields, "phone")
	assert.Contains(t, invalid.Fields, "address")

	rec, _ = doJSON(t, router, http.MethodPost, "/checkout/review", session, reviewRequest{
		Name:         "Ana",
		Phone:        "81 1234 5678",
		DeliveryMode: "delivery",
		Address:      "Av. Juárez 123",
		Country:      "mexico",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPost, "/checkout/dispatch", session, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dispatch checkout.Dispatch
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dispatch))
	assert.Contains(t, dispatch.Link, "https://wa.me/528199990000?text=")
	assert.Contains(t, dispatch.Message, "Dogo Especial")

	// dispatch cleared the cart
	rec, _ = doJSON(t, router, http.MethodGet, "/cart", session, nil)
	var cartResp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	assert.Empty(t, cartResp.Lines)
}

func TestCheckoutBeginEmptyCartConflicts(t *testing.T) {
	router := testRouter(t)
	rec, _ := doJSON(t, router, http.MethodPost, "/checkout/begin", "fresh-session", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
