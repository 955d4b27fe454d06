package repository

import (
	"context"
	"sync"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"go.uber.org/zap"
)

// memoryRepository backs the catalog when no database is configured. Newest
// records go first, matching the created_at ordering of the real store.
type memoryRepository struct {
	mu    sync.RWMutex
	books []model.Book
	log   *zap.Logger
}

func NewMemoryRepository(seed []model.Book, log *zap.Logger) *memoryRepository {
	books := make([]model.Book, len(seed))
	copy(books, seed)
	return &memoryRepository{
		books: books,
		log:   log.Named("memrepo"),
	}
}

func (r *memoryRepository) ListBooks(_ context.Context) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	books := make([]model.Book, len(r.books))
	copy(books, r.books)
	return books, nil
}

func (r *memoryRepository) UpsertBook(_ context.Context, book model.Book) error {
	if book.Quantity < 0 || book.Quantity > book.TotalQuantity {
		return errs.ErrInvalidBook
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.books {
		if r.books[i].ID == book.ID {
			r.books[i] = book
			return nil
		}
	}
	r.books = append([]model.Book{book}, r.books...)
	return nil
}

func (r *memoryRepository) DeleteBook(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.books {
		if r.books[i].ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (r *memoryRepository) Close() {}
