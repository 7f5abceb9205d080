// Package checkout owns the order summary rules and the per-session
// checkout flow: idle -> collecting -> reviewing -> dispatched.
package checkout

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"dogohouse/internal/domain"
	"dogohouse/internal/phone"
)

// Config carries the business rule constants. Defaults live in
// internal/config; tests inject their own values.
type Config struct {
	TaxRate               decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	FlatDeliveryFee       decimal.Decimal
	BusinessPhones        map[domain.Country]string
}

type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateReviewing  State = "reviewing"
	StateDispatched State = "dispatched"
)

type cartLedger interface {
	Lines(sessionID string) []domain.CartLine
	TotalQuantity(sessionID string) int
	Clear(sessionID string)
}

type messageBuilder interface {
	Format(customer domain.CustomerInfo, lines []domain.CartLine, summary domain.OrderSummary) (string, error)
	BuildDeepLink(businessPhone, message string) (string, error)
}

type session struct {
	state    State
	customer domain.CustomerInfo
}

type Service struct {
	cfg     Config
	carts   cartLedger
	builder messageBuilder
	logger  *log.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

func New(cfg Config, carts cartLedger, builder messageBuilder, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		cfg:      cfg,
		carts:    carts,
		builder:  builder,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// Summarize derives the tax/delivery-adjusted totals for a set of cart
// lines. Pure: identical inputs yield identical summaries. Amounts are
// rounded half-up to 2 decimals at this snapshot only.
func (s *Service) Summarize(lines []domain.CartLine, mode domain.DeliveryMode) domain.OrderSummary {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Total())
	}

	tax := subtotal.Mul(s.cfg.TaxRate).Round(2)

	fee := decimal.Zero
	if mode != domain.DeliveryModePickup && !subtotal.GreaterThan(s.cfg.FreeDeliveryThreshold) {
		fee = s.cfg.FlatDeliveryFee
	}

	subtotal = subtotal.Round(2)
	return domain.OrderSummary{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       subtotal.Add(tax).Add(fee),
	}
}

// ValidateCustomer collects field violations as a field -> message map.
// An empty map means the customer info is acceptable.
func (s *Service) ValidateCustomer(c domain.CustomerInfo) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(c.Name) == "" {
		fields["name"] = "El nombre es obligatorio"
	}
	if _, err := domain.ParseCountry(string(c.Country)); err != nil {
		fields["country"] = "País no soportado"
	} else if res := phone.Validate(c.Phone, c.Country); !res.Valid {
		fields["phone"] = res.Err
	}
	if _, err := domain.ParseDeliveryMode(string(c.DeliveryMode)); err != nil {
		fields["deliveryMode"] = "Selecciona entrega a domicilio o recoger en tienda"
	} else if c.DeliveryMode == domain.DeliveryModeDelivery && strings.TrimSpace(c.Address) == "" {
		fields["address"] = "La dirección es obligatoria para entrega a domicilio"
	}
	return fields
}

// State reports the session's current checkout state.
func (s *Service) State(sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return sess.state
	}
	return StateIdle
}

// Customer returns the info collected for the session so far.
func (s *Service) Customer(sessionID string) (domain.CustomerInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.CustomerInfo{}, false
	}
	return sess.customer, sess.state != StateIdle
}

// Begin enters the collecting step. The cart must be non-empty; starting
// over from idle, collecting or a previous dispatch is allowed, but not
// while a review is pending.
func (s *Service) Begin(sessionID string) error {
	if s.carts.TotalQuantity(sessionID) == 0 {
		return domain.ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	if sess.state == StateReviewing {
		return domain.ErrInvalidTransition
	}
	sess.state = StateCollecting
	return nil
}

// Review validates the customer info and, when clean, advances to the
// reviewing step with the phone stored in normalized form. Validation
// failures are returned as a field map and leave the state unchanged.
func (s *Service) Review(sessionID string, customer domain.CustomerInfo) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	if sess.state != StateCollecting {
		return nil, domain.ErrInvalidTransition
	}

	if fields := s.ValidateCustomer(customer); len(fields) > 0 {
		return fields, nil
	}

	res := phone.Validate(customer.Phone, customer.Country)
	customer.Phone = res.Normalized
	sess.customer = customer
	sess.state = StateReviewing
	return nil, nil
}

// Back returns from reviewing to collecting. Collected info is kept.
func (s *Service) Back(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	if sess.state != StateReviewing {
		return domain.ErrInvalidTransition
	}
	sess.state = StateCollecting
	return nil
}

// Dispatch is the result of a successful checkout.
type Dispatch struct {
	Message string              `json:"message"`
	Link    string              `json:"link"`
	Summary domain.OrderSummary `json:"summary"`
}

// DispatchOrder formats the order message and builds the WhatsApp deep
// link. The cart is cleared only after the link was constructed, so a
// failed dispatch leaves the order intact and retryable.
func (s *Service) DispatchOrder(sessionID string) (*Dispatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(sessionID)
	if sess.state != StateReviewing {
		return nil, domain.ErrInvalidTransition
	}

	lines := s.carts.Lines(sessionID)
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	summary := s.Summarize(lines, sess.customer.DeliveryMode)
	message, err := s.builder.Format(sess.customer, lines, summary)
	if err != nil {
		return nil, fmt.Errorf("format order message: %w", err)
	}

	businessPhone, ok := s.cfg.BusinessPhones[sess.customer.Country]
	if !ok {
		return nil, fmt.Errorf("no business phone configured for country %q", sess.customer.Country)
	}
	link, err := s.builder.BuildDeepLink(businessPhone, message)
	if err != nil {
		return nil, fmt.Errorf("build deep link: %w", err)
	}

	s.carts.Clear(sessionID)
	sess.state = StateDispatched
	s.logger.Printf("checkout: dispatched session=%s total=%s", sessionID, summary.Total)
	return &Dispatch{Message: message, Link: link, Summary: summary}, nil
}

// session returns the tracked session, creating an idle one on first use.
// Callers must hold s.mu.
func (s *Service) session(sessionID string) *session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{state: StateIdle}
		s.sessions[sessionID] = sess
	}
	return sess
}
