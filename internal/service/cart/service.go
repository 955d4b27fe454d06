package cart

import (
	"sync"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"go.uber.org/zap"
)

// Catalog is the stock side of the ledger. Every +1 on a cart line pairs with
// exactly one Reserve, and every removal releases exactly the removed amount.
type Catalog interface {
	Get(id string) (model.Book, error)
	Reserve(id string) (model.Book, error)
	Release(id string, n int)
}

// Service keeps one ordered line list per session. Lines are insertion
// ordered; totals are always recomputed from the lines, never stored.
type Service struct {
	mu    sync.Mutex
	carts map[string][]model.CartLine

	catalog Catalog
	log     *zap.Logger
}

func NewService(catalog Catalog, log *zap.Logger) *Service {
	return &Service{
		carts:   make(map[string][]model.CartLine),
		catalog: catalog,
		log:     log.Named("cart"),
	}
}

func (s *Service) Get(sessionID string) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.carts[sessionID])
}

// AddItem puts one copy into the cart: availability gate, per-title cap gate,
// then a stock reservation. On the first add the line snapshots title and
// price.
func (s *Service) AddItem(sessionID, bookID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.catalog.Get(bookID)
	if err != nil {
		return snapshot(s.carts[sessionID]), err
	}
	lines := s.carts[sessionID]
	idx := findLine(lines, bookID)

	if err := availabilityGate(book.Availability); err != nil {
		return snapshot(lines), err
	}
	if book.TotalQuantity > 0 && idx >= 0 && lines[idx].Quantity >= book.TotalQuantity {
		return snapshot(lines), errs.ErrQuantityCap
	}

	if _, err := s.catalog.Reserve(bookID); err != nil {
		return snapshot(lines), err
	}

	if idx >= 0 {
		lines[idx].Quantity++
	} else {
		lines = append(lines, model.CartLine{
			BookID:   book.ID,
			Title:    book.Title,
			Price:    book.Price,
			Quantity: 1,
		})
	}
	s.carts[sessionID] = lines
	return snapshot(lines), nil
}

// RemoveItem drops the whole line and returns every reserved unit to stock.
func (s *Service) RemoveItem(sessionID, bookID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(sessionID, bookID)
}

// ReduceQuantity takes one copy off the line; at quantity one it behaves
// exactly like RemoveItem.
func (s *Service) ReduceQuantity(sessionID, bookID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	idx := findLine(lines, bookID)
	if idx < 0 {
		return snapshot(lines), errs.ErrLineNotFound
	}
	if lines[idx].Quantity == 1 {
		return s.remove(sessionID, bookID)
	}

	lines[idx].Quantity--
	s.carts[sessionID] = lines
	s.catalog.Release(bookID, 1)
	return snapshot(lines), nil
}

// IncreaseQuantity adds one copy to an existing line, gated only on
// remaining stock.
func (s *Service) IncreaseQuantity(sessionID, bookID string) (model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[sessionID]
	idx := findLine(lines, bookID)
	if idx < 0 {
		return snapshot(lines), errs.ErrLineNotFound
	}

	if _, err := s.catalog.Reserve(bookID); err != nil {
		return snapshot(lines), err
	}
	lines[idx].Quantity++
	s.carts[sessionID] = lines
	return snapshot(lines), nil
}

func (s *Service) remove(sessionID, bookID string) (model.Cart, error) {
	lines := s.carts[sessionID]
	idx := findLine(lines, bookID)
	if idx < 0 {
		return snapshot(lines), errs.ErrLineNotFound
	}

	restore := lines[idx].Quantity
	lines = append(lines[:idx], lines[idx+1:]...)
	if len(lines) == 0 {
		delete(s.carts, sessionID)
	} else {
		s.carts[sessionID] = lines
	}
	s.catalog.Release(bookID, restore)
	return snapshot(lines), nil
}

func findLine(lines []model.CartLine, bookID string) int {
	for i := range lines {
		if lines[i].BookID == bookID {
			return i
		}
	}
	return -1
}

func availabilityGate(a model.Availability) error {
	switch a {
	case model.AvailabilityReserved:
		return errs.ErrBookReserved
	case model.AvailabilitySold:
		return errs.ErrBookSold
	case model.AvailabilityUnavailable:
		return errs.ErrBookUnavailable
	default:
		return nil
	}
}

func snapshot(lines []model.CartLine) model.Cart {
	cart := model.Cart{Items: make([]model.CartLine, len(lines))}
	copy(cart.Items, lines)
	for _, l := range lines {
		cart.TotalPrice += l.Price * l.Quantity
		cart.TotalCount += l.Quantity
	}
	return cart
}
