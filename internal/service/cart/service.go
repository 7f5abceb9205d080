// Package cart keeps per-session in-memory cart ledgers. There is no
// persistence: a ledger lives and dies with its session.
package cart

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dogohouse/internal/domain"
)

type pricer interface {
	LinePrice(basePrice decimal.Decimal, sel domain.Selection) decimal.Decimal
}

type Service struct {
	mu      sync.Mutex
	ledgers map[string][]*domain.CartLine
	pricer  pricer
	logger  *log.Logger
	now     func() time.Time
}

func New(pricer pricer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		ledgers: make(map[string][]*domain.CartLine),
		pricer:  pricer,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// AddItem adds one unit of product with the given customizations. A line with
// the same product and a deep-equal selection absorbs the add as quantity+1
// and keeps its original unit price; otherwise a new line is created and
// priced once against the current catalog.
func (s *Service) AddItem(sessionID string, product domain.Product, sel domain.Selection) domain.CartLine {
	canonical := sel.Canonical()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.ledgers[sessionID] {
		if line.Product.ID == product.ID && line.Selection.Equal(canonical) {
			line.Quantity++
			s.logger.Printf("cart: merged line=%s product=%s qty=%d", line.ID, product.ID, line.Quantity)
			return *line
		}
	}

	line := &domain.CartLine{
		ID:        uuid.NewString(),
		Product:   product,
		Quantity:  1,
		Selection: canonical,
		UnitPrice: s.pricer.LinePrice(product.BasePrice, canonical),
		AddedAt:   s.now(),
	}
	s.ledgers[sessionID] = append(s.ledgers[sessionID], line)
	s.logger.Printf("cart: new line=%s product=%s unit_price=%s", line.ID, product.ID, line.UnitPrice)
	return *line
}

// Lines returns a copy of the session's cart lines in insertion order.
func (s *Service) Lines(sessionID string) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.ledgers[sessionID]
	out := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, *line)
	}
	return out
}

// SetQuantity overwrites a line's quantity. Zero or negative removes the
// line. Unknown line ids are a no-op.
func (s *Service) SetQuantity(sessionID, lineID string, quantity int) {
	if quantity <= 0 {
		s.RemoveLine(sessionID, lineID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.ledgers[sessionID] {
		if line.ID == lineID {
			line.Quantity = quantity
			return
		}
	}
}

// RemoveLine deletes a line. Absent ids are a no-op, not an error.
func (s *Service) RemoveLine(sessionID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.ledgers[sessionID]
	for i, line := range lines {
		if line.ID == lineID {
			s.ledgers[sessionID] = append(lines[:i], lines[i+1:]...)
			return
		}
	}
}

// Clear empties the session's ledger.
func (s *Service) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, sessionID)
}

// TotalQuantity sums quantities over all lines.
func (s *Service) TotalQuantity(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.ledgers[sessionID] {
		total += line.Quantity
	}
	return total
}

// Subtotal sums unit price times quantity over all lines.
func (s *Service) Subtotal(sessionID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.ledgers[sessionID] {
		total = total.Add(line.Total())
	}
	return total
}
