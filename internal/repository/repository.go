package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MichaelMansour256/Diwan-Mansour/internal/errs"
	"github.com/MichaelMansour256/Diwan-Mansour/internal/model"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	UpsertBook(ctx context.Context, book model.Book) error
	DeleteBook(ctx context.Context, id string) error
	Close()
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const booksTableName = `books`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "price", "image_url", "condition",
		"quantity", "total_quantity", "availability", "reserved_at", "created_at").
		From(booksTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		r.log.Error("ListBooks", zap.String("q", query), zap.Error(err))
		return nil, err
	}
	return books, nil
}

func (r *repository) UpsertBook(ctx context.Context, book model.Book) error {
	q := fmt.Sprintf(`
insert into %s (id, title, author, price, image_url, condition, quantity, total_quantity, availability, reserved_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
on conflict (id) do update set
    title          = excluded.title,
    author         = excluded.author,
    price          = excluded.price,
    image_url      = excluded.image_url,
    condition      = excluded.condition,
    quantity       = excluded.quantity,
    total_quantity = excluded.total_quantity,
    availability   = excluded.availability,
    reserved_at    = excluded.reserved_at`, booksTableName)

	_, err := r.db.ExecContext(ctx, q,
		book.ID, book.Title, book.Author, book.Price, book.ImageURL, book.Condition,
		book.Quantity, book.TotalQuantity, book.Availability, book.ReservedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			return errs.ErrInvalidBook
		}
		return err
	}
	return nil
}

func (r *repository) DeleteBook(ctx context.Context, id string) error {
	query, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *repository) Close() {
	r.db.Close()
}
