package catalog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/repository"
	"go.uber.org/zap"
)

// Publisher pushes full catalog snapshots to other instances. Nil when the
// feed is not configured.
type Publisher interface {
	Publish(v any) error
}

// Service owns the in-memory catalog view. Every state transition runs to
// completion under one mutex, so cart operations, admin writes, feed
// callbacks and sweep ticks never interleave mid-update.
type Service struct {
	mu    sync.Mutex
	books []model.Book

	repo repository.Repository
	pub  Publisher
	log  *zap.Logger
}

func NewService(repo repository.Repository, pub Publisher, log *zap.Logger) *Service {
	return &Service{
		repo: repo,
		pub:  pub,
		log:  log.Named("catalog"),
	}
}

// Load replaces the view with the repository's current list.
func (s *Service) Load(ctx context.Context) error {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		return err
	}
	s.Replace(books)
	return nil
}

// Replace swaps in a whole new list. Last writer wins; there is no merging.
func (s *Service) Replace(books []model.Book) {
	next := make([]model.Book, len(books))
	copy(next, books)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = next
}

func (s *Service) List() []model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	books := make([]model.Book, len(s.books))
	copy(books, s.books)
	return books
}

// Search returns purchasable-quantity records matching the query by title or
// author. An empty query returns every record with stock remaining.
func (s *Service) Search(query string) []model.Book {
	query = strings.ToLower(strings.TrimSpace(query))

	s.mu.Lock()
	defer s.mu.Unlock()
	books := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		if b.Quantity <= 0 {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(b.Title), query) &&
			!strings.Contains(strings.ToLower(b.Author), query) {
			continue
		}
		books = append(books, b)
	}
	return books
}

func (s *Service) Get(id string) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.books {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Book{}, errs.ErrNotFound
}

// Reserve claims one unit of remaining stock. It is the only way stock goes
// down, so quantity can never drop below zero.
func (s *Service) Reserve(id string) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID != id {
			continue
		}
		if s.books[i].Quantity <= 0 {
			return model.Book{}, errs.ErrOutOfStock
		}
		s.books[i].Quantity--
		return s.books[i], nil
	}
	return model.Book{}, errs.ErrNotFound
}

// Release returns n units to the pool, clamped to the declared inventory
// ceiling. Unknown ids are ignored: the record may have been deleted while
// its copies sat in a cart.
func (s *Service) Release(id string, n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.books {
		if s.books[i].ID != id {
			continue
		}
		s.books[i].Quantity += n
		if s.books[i].TotalQuantity > 0 && s.books[i].Quantity > s.books[i].TotalQuantity {
			s.books[i].Quantity = s.books[i].TotalQuantity
		}
		return
	}
}

// Upsert writes a whole record through to the repository, refreshes the view
// and publishes the new snapshot. An explicit "reserved" status stamps the
// hold time; any other status clears it.
func (s *Service) Upsert(ctx context.Context, book model.Book) error {
	if book.Availability == model.AvailabilityReserved {
		if book.ReservedAt == nil {
			now := time.Now()
			book.ReservedAt = &now
		}
	} else {
		book.ReservedAt = nil
	}

	if err := s.repo.UpsertBook(ctx, book); err != nil {
		return err
	}
	s.refresh(ctx)
	s.publish()
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteBook(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	s.publish()
	return nil
}

func (s *Service) refresh(ctx context.Context) {
	books, err := s.repo.ListBooks(ctx)
	if err != nil {
		s.log.Warn("catalog refresh failed, keeping previous view", zap.Error(err))
		return
	}
	s.Replace(books)
}

func (s *Service) publish() {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(s.List()); err != nil {
		s.log.Warn("snapshot publish failed", zap.Error(err))
	}
}
