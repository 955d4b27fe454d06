package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("book not found")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrOutOfStock         = errors.New("no copies left in stock")
	ErrQuantityCap        = errors.New("no more copies than the declared inventory can be added")
	ErrBookReserved       = errors.New("book is reserved by another customer")
	ErrBookSold           = errors.New("book is already sold")
	ErrBookUnavailable    = errors.New("book is currently unavailable")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidBook        = errors.New("book record violates stock constraints")
	ErrMissingImage       = errors.New("cover image is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
