package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/unmoha/restaurant-customer-order-management/model"
	"github.com/unmoha/restaurant-customer-order-management/store"
)

var ledgerHeader = []string{"ID", "Customer", "Item", "Category", "Quantity", "Total", "Time"}

type IRepo interface {
	Load(ctx context.Context) ([]model.Order, error)
	Save(ctx context.Context, orders []model.Order) error
}

func NewRepo(path string) IRepo {
	return &repo{
		file: store.File{Path: path, Delimiter: store.Comma, Header: ledgerHeader},
	}
}

type repo struct {
	file store.File
}

// Load returns the ledger in file order. Rows written before the category
// column existed come back with an empty Category.
func (r repo) Load(ctx context.Context) ([]model.Order, error) {
	if err := r.file.Touch(); err != nil {
		return nil, err
	}
	rows, err := r.file.ReadRows()
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(rows))
	for i, row := range rows {
		o, err := decodeOrder(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", r.file.Path, i+2, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r repo) Save(ctx context.Context, orders []model.Order) error {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, encodeOrder(o))
	}
	return r.file.WriteRows(rows)
}

func encodeOrder(o model.Order) []string {
	return []string{
		strconv.FormatInt(o.ID, 10),
		o.Customer,
		o.Item,
		string(o.Category),
		o.Quantity.StringFixed(2),
		o.Total.StringFixed(2),
		o.Timestamp,
	}
}

func decodeOrder(row []string) (model.Order, error) {
	var o model.Order
	if len(row) != 7 && len(row) != 6 {
		return o, fmt.Errorf("%w: ledger row has %d fields", model.ErrIO, len(row))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return o, fmt.Errorf("%w: bad order id %q", model.ErrIO, row[0])
	}
	o.ID = id
	o.Customer = row[1]
	o.Item = row[2]

	rest := row[3:]
	if len(row) == 7 {
		o.Category = model.Category(strings.TrimSpace(row[3]))
		rest = row[4:]
	}

	if o.Quantity, err = decimal.NewFromString(strings.TrimSpace(rest[0])); err != nil {
		return o, fmt.Errorf("%w: bad quantity %q", model.ErrIO, rest[0])
	}
	if o.Total, err = decimal.NewFromString(strings.TrimSpace(rest[1])); err != nil {
		return o, fmt.Errorf("%w: bad total %q", model.ErrIO, rest[1])
	}
	o.Timestamp = rest[2]
	return o, nil
}
