package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dogohouse/internal/domain"
)

type stubCarts struct {
	lines   []domain.CartLine
	cleared bool
}

func (s *stubCarts) Lines(string) []domain.CartLine {
	if s.cleared {
		return nil
	}
	return s.lines
}

func (s *stubCarts) TotalQuantity(string) int {
	total := 0
	for _, l := range s.Lines("") {
		total += l.Quantity
	}
	return total
}

func (s *stubCarts) Clear(string) { s.cleared = true }

type stubBuilder struct {
	formatErr error
	linkErr   error
}

func (s *stubBuilder) Format(c domain.CustomerInfo, _ []domain.CartLine, sum domain.OrderSummary) (string, error) {
	if s.formatErr != nil {
		return "", s.formatErr
	}
	return "pedido de " + c.Name + " total " + sum.Total.StringFixed(2), nil
}

func (s *stubBuilder) BuildDeepLink(phone, msg string) (string, error) {
	if s.linkErr != nil {
		return "", s.linkErr
	}
	return "https://wa.me/" + phone + "?text=" + msg, nil
}

func defaultConfig() Config {
	return Config{
		TaxRate:               decimal.RequireFromString("0.16"),
		FreeDeliveryThreshold: decimal.NewFromInt(200),
		FlatDeliveryFee:       decimal.NewFromInt(35),
		BusinessPhones: map[domain.Country]string{
			domain.CountryMexico: "528199990000",
		},
	}
}

func lineWithTotal(unit int64, qty int) domain.CartLine {
	return domain.CartLine{
		ID:        "l1",
		Product:   domain.Product{ID: "p1", Name: "Dogo Especial"},
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(unit),
	}
}

func validCustomer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:         "Ana",
		Phone:        "81 1234 5678",
		DeliveryMode: domain.DeliveryModeDelivery,
		Address:      "Av. Juárez 123",
		Country:      domain.CountryMexico,
	}
}

func TestSummarizeDeliveryUnderThreshold(t *testing.T) {
	// base 75 + customizations 15+5 = unit 95, x2 = 190
	svc := New(defaultConfig(), &stubCarts{}, &stubBuilder{}, nil)
	sum := svc.Summarize([]domain.CartLine{lineWithTotal(95, 2)}, domain.DeliveryModeDelivery)

	assert.Equal(t, "190.00", sum.Subtotal.StringFixed(2))
	assert.Equal(t, "30.40", sum.Tax.StringFixed(2))
	assert.Equal(t, "35.00", sum.DeliveryFee.StringFixed(2))
	assert.Equal(t, "255.40", sum.Total.StringFixed(2))
}

func TestSummarizeDeliveryOverThresholdIsFree(t *testing.T) {
	svc := New(defaultConfig(), &stubCarts{}, &stubBuilder{}, nil)
	sum := svc.Summarize([]domain.CartLine{lineWithTotal(125, 2)}, domain.DeliveryModeDelivery)

	assert.Equal(t, "250.00", sum.Subtotal.StringFixed(2))
	assert.True(t, sum.DeliveryFee.IsZero())
	assert.Equal(t, sum.Subtotal.Add(sum.Tax).StringFixed(2), sum.Total.StringFixed(2))
}

func TestSummarizeThresholdBoundaryStillCharges(t *testing.T) {
	svc := New(defaultConfig(), &stubCarts{}, &stubBuilder{}, nil)
	sum := svc.Summarize([]domain.CartLine{lineWithTotal(200, 1)}, domain.DeliveryModeDelivery)
	assert.Equal(t, "35.00", sum.DeliveryFee.StringFixed(2), "fee waived only above the threshold")
}

func TestSummarizePickupNeverCharges(t *testing.T) {
	svc := New(defaultConfig(), &stubCarts{}, &stubBuilder{}, nil)
	sum := svc.Summarize([]domain.CartLine{lineWithTotal(10, 1)}, domain.DeliveryModePickup)
	assert.True(t, sum.DeliveryFee.IsZero())
}

func TestSummarizePure(t *testing.T) {
	svc := New(defaultConfig(), &stubCarts{}, &stubBuilder{}, nil)
	lines := []domain.CartLine{lineWithTotal(95, 2)}
	a := svc.Summarize(lines, domain.DeliveryModeDelivery)
	b := svc.Summarize(lines, domain.DeliveryModeDelivery)
	assert.Equal(t, a, b)
}

func TestValidateCustomerCollectsFieldErrors(t *testing.T) {
	svc := New(defaultConfig(), &stubCarts{}, &stubBuilder{}, nil)
	fields := svc.ValidateCustomer(domain.CustomerInfo{
		Name:         "  ",
		Phone:        "123",
		DeliveryMode: domain.DeliveryModeDelivery,
		Country:      domain.CountryMexico,
	})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "address")
	assert.NotContains(t, fields, "country")
}

func TestValidateCustomerPickupNeedsNoAddress(t *testing.T) {
	svc := New(defaultConfig(), &stubCarts{}, &stubBuilder{}, nil)
	c := validCustomer()
	c.DeliveryMode = domain.DeliveryModePickup
	c.Address = ""
	assert.Empty(t, svc.ValidateCustomer(c))
}

func TestBeginRequiresNonEmptyCart(t *testing.T) {
	svc := New(defaultConfig(), &stubCarts{}, &stubBuilder{}, nil)
	err := svc.Begin("s1")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, StateIdle, svc.State("s1"))
}

func TestCheckoutHappyPath(t *testing.T) {
	carts := &stubCarts{lines: []domain.CartLine{lineWithTotal(95, 2)}}
	svc := New(defaultConfig(), carts, &stubBuilder{}, nil)

	require.NoError(t, svc.Begin("s1"))
	assert.Equal(t, StateCollecting, svc.State("s1"))

	fields, err := svc.Review("s1", validCustomer())
	require.NoError(t, err)
	assert.Empty(t, fields)
	assert.Equal(t, StateReviewing, svc.State("s1"))

	stored, ok := svc.Customer("s1")
	require.True(t, ok)
	assert.Equal(t, "+528112345678", stored.Phone, "phone stored normalized")

	dispatch, err := svc.DispatchOrder("s1")
	require.NoError(t, err)
	assert.Equal(t, StateDispatched, svc.State("s1"))
	assert.True(t, carts.cleared)
	assert.Contains(t, dispatch.Link, "wa.me/528199990000")
	assert.Equal(t, "255.40", dispatch.Summary.Total.StringFixed(2))
}

func TestReviewValidationFailureKeepsState(t *testing.T) {
	carts := &stubCarts{lines: []domain.CartLine{lineWithTotal(95, 2)}}
	svc := New(defaultConfig(), carts, &stubBuilder{}, nil)
	require.NoError(t, svc.Begin("s1"))

	bad := validCustomer()
	bad.Phone = "123"
	fields, err := svc.Review("s1", bad)
	require.NoError(t, err)
	assert.Contains(t, fields, "phone")
	assert.Equal(t, StateCollecting, svc.State("s1"))
}

func TestBackReturnsToCollecting(t *testing.T) {
	carts := &stubCarts{lines: []domain.CartLine{lineWithTotal(95, 2)}}
	svc := New(defaultConfig(), carts, &stubBuilder{}, nil)
	require.NoError(t, svc.Begin("s1"))
	_, err := svc.Review("s1", validCustomer())
	require.NoError(t, err)

	require.NoError(t, svc.Back("s1"))
	assert.Equal(t, StateCollecting, svc.State("s1"))

	// collected info survives the backward transition
	stored, ok := svc.Customer("s1")
	require.True(t, ok)
	assert.Equal(t, "Ana", stored.Name)
}

func TestTransitionsOutOfOrder(t *testing.T) {
	carts := &stubCarts{lines: []domain.CartLine{lineWithTotal(95, 2)}}
	svc := New(defaultConfig(), carts, &stubBuilder{}, nil)

	_, err := svc.Review("s1", validCustomer())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.ErrorIs(t, svc.Back("s1"), domain.ErrInvalidTransition)

	_, err = svc.DispatchOrder("s1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, svc.Begin("s1"))
	_, err = svc.Review("s1", validCustomer())
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Begin("s1"), domain.ErrInvalidTransition, "no restart while reviewing")
}

func TestDispatchFailureLeavesCartIntact(t *testing.T) {
	carts := &stubCarts{lines: []domain.CartLine{lineWithTotal(95, 2)}}
	cfg := defaultConfig()
	cfg.BusinessPhones = map[domain.Country]string{} // force link construction to fail
	svc := New(cfg, carts, &stubBuilder{}, nil)

	require.NoError(t, svc.Begin("s1"))
	_, err := svc.Review("s1", validCustomer())
	require.NoError(t, err)

	_, err = svc.DispatchOrder("s1")
	assert.Error(t, err)
	assert.False(t, carts.cleared)
	assert.Equal(t, StateReviewing, svc.State("s1"), "dispatch stays retryable")
}
