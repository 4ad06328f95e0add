package archive

import (
	"context"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

type IRepo interface {
	Transact(ctx context.Context, fn func(ctx context.Context) error) error
	UpsertOrder(ctx context.Context, order model.Order) error
	CountOrders(ctx context.Context) (int, error)
}

func NewRepo(db *sqlx.DB) IRepo {
	return &repo{
		db: db,
	}
}

type repo struct {
	db *sqlx.DB
}

type txKey struct{}

var upsertOrderQuery = `INSERT INTO orders_archive (id, customer, item, category, quantity, total, created_at)
VALUES (:id, :customer, :item, :category, :quantity, :total, :created_at)
ON DUPLICATE KEY UPDATE item = VALUES(item), category = VALUES(category), quantity = VALUES(quantity), total = VALUES(total)`

func (r repo) UpsertOrder(ctx context.Context, order model.Order) error {
	_, err := sqlx.NamedExecContext(ctx, r.ext(ctx), upsertOrderQuery, order)
	return err
}

var countOrdersQuery = "SELECT COUNT(*) FROM orders_archive"

func (r repo) CountOrders(ctx context.Context) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.ext(ctx), &n, countOrdersQuery)
	return n, err
}

// Transact runs fn inside one transaction. Repo calls made with the ctx
// handed to fn join it.
func (r repo) Transact(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r repo) ext(ctx context.Context) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return r.db
}
