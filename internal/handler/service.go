package handler

import (
	"context"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=service_mocks

type CatalogService interface {
	List() []model.Book
	Search(query string) []model.Book
	Get(id string) (model.Book, error)
	Upsert(ctx context.Context, book model.Book) error
	Delete(ctx context.Context, id string) error
}

type CartService interface {
	Get(sessionID string) model.Cart
	AddItem(sessionID, bookID string) (model.Cart, error)
	RemoveItem(sessionID, bookID string) (model.Cart, error)
	IncreaseQuantity(sessionID, bookID string) (model.Cart, error)
	ReduceQuantity(sessionID, bookID string) (model.Cart, error)
}

type CheckoutService interface {
	Link(cart model.Cart) (string, error)
}

type AuthService interface {
	Authenticate(ctx context.Context, email, password string) error
}

type ImageService interface {
	Upload(ctx context.Context, filename string, image []byte) (string, error)
}
