package model

import (
	"time"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
)

type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityReserved    Availability = "reserved"
	AvailabilitySold        Availability = "sold"
	AvailabilityUnavailable Availability = "unavailable"
)

// Book is a fully populated catalog record. Quantity is the number of copies
// not currently claimed by any cart line; it never leaves [0, TotalQuantity].
type Book struct {
	ID            string       `json:"id" db:"id"`
	Title         string       `json:"title" db:"title"`
	Author        string       `json:"author" db:"author"`
	Price         int          `json:"price" db:"price"`
	ImageURL      string       `json:"imageUrl" db:"image_url"`
	Condition     Condition    `json:"condition" db:"condition"`
	Quantity      int          `json:"quantity" db:"quantity"`
	TotalQuantity int          `json:"totalQuantity" db:"total_quantity"`
	Availability  Availability `json:"availability" db:"availability"`
	ReservedAt    *time.Time   `json:"reservedAt,omitempty" db:"reserved_at"`
	CreatedAt     time.Time    `json:"-" db:"created_at"`
}

func (b Book) Purchasable() bool {
	return b.Availability == AvailabilityAvailable && b.Quantity > 0
}

// BookSnapshot is a catalog record as delivered by the feed, with optional
// fields kept as pointers so absent values can be told apart from zeroes.
type BookSnapshot struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	Price         *int          `json:"price"`
	ImageURL      string        `json:"imageUrl"`
	Condition     *Condition    `json:"condition"`
	Quantity      *int          `json:"quantity"`
	TotalQuantity *int          `json:"totalQuantity"`
	Availability  *Availability `json:"availability"`
	ReservedAt    *time.Time    `json:"reservedAt"`
	CreatedAt     *time.Time    `json:"createdAt"`
}

// Normalize applies feed defaults once, at the boundary, so only fully
// populated records enter the catalog.
func (s BookSnapshot) Normalize() (Book, error) {
	if s.ID == "" || s.Title == "" {
		return Book{}, errs.ErrInvalidBook
	}
	b := Book{
		ID:            s.ID,
		Title:         s.Title,
		Author:        s.Author,
		ImageURL:      s.ImageURL,
		Condition:     ConditionNew,
		Quantity:      1,
		TotalQuantity: 1,
		Availability:  AvailabilityAvailable,
	}
	if s.Price != nil && *s.Price > 0 {
		b.Price = *s.Price
	}
	if s.Condition != nil && *s.Condition != "" {
		b.Condition = *s.Condition
	}
	if s.Quantity != nil {
		b.Quantity = *s.Quantity
	}
	if s.TotalQuantity != nil {
		b.TotalQuantity = *s.TotalQuantity
	} else {
		b.TotalQuantity = b.Quantity
	}
	if b.TotalQuantity < 1 {
		b.TotalQuantity = 1
	}
	if b.Quantity < 0 {
		b.Quantity = 0
	}
	if b.Quantity > b.TotalQuantity {
		b.Quantity = b.TotalQuantity
	}
	if s.Availability != nil && *s.Availability != "" {
		b.Availability = *s.Availability
	}
	if b.Availability == AvailabilityReserved {
		b.ReservedAt = s.ReservedAt
	}
	if s.CreatedAt != nil {
		b.CreatedAt = *s.CreatedAt
	}
	return b, nil
}

// CartLine snapshots title and price at the moment of the first add; later
// catalog edits do not touch it.
type CartLine struct {
	BookID   string `json:"bookId"`
	Title    string `json:"title"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

type Cart struct {
	Items      []CartLine `json:"items"`
	TotalPrice int        `json:"totalPrice"`
	TotalCount int        `json:"totalCount"`
}

type BookRequest struct {
	Title        string       `json:"title" validate:"required"`
	Author       string       `json:"author" validate:"required"`
	Price        int          `json:"price" validate:"required,gt=0"`
	ImageURL     string       `json:"imageUrl" validate:"omitempty,url"`
	Condition    Condition    `json:"condition" validate:"omitempty,oneof=new used"`
	Quantity     int          `json:"quantity" validate:"required,gt=0"`
	Availability Availability `json:"availability" validate:"omitempty,oneof=available reserved sold unavailable"`
}

type AddCartItemRequest struct {
	BookID string `json:"bookId" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
