package menu

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/unmoha/restaurant-customer-order-management/model"
	"github.com/unmoha/restaurant-customer-order-management/store"
)

type IRepo interface {
	Load(ctx context.Context) ([]model.MenuItem, error)
	Save(ctx context.Context, items []model.MenuItem) error
}

func NewRepo(path string) IRepo {
	return &repo{
		file: store.File{Path: path, Delimiter: store.Comma},
	}
}

type repo struct {
	file store.File
}

func (r repo) Load(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.file.ReadRows()
	if err != nil {
		return nil, err
	}

	items := make([]model.MenuItem, 0, len(rows))
	for i, row := range rows {
		item, err := decodeItem(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", r.file.Path, i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r repo) Save(ctx context.Context, items []model.MenuItem) error {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, encodeItem(item))
	}
	return r.file.WriteRows(rows)
}

func encodeItem(item model.MenuItem) []string {
	return []string{
		strconv.Itoa(item.ID),
		item.Name,
		string(item.Category),
		item.Price.StringFixed(2),
	}
}

// decodeItem accepts id,name,category,price and the older id,name,price rows,
// which only ever held food.
func decodeItem(row []string) (model.MenuItem, error) {
	var item model.MenuItem
	var priceField string

	switch len(row) {
	case 4:
		item.Category = model.Category(strings.TrimSpace(row[2]))
		priceField = row[3]
	case 3:
		item.Category = model.CategoryFood
		priceField = row[2]
	default:
		return item, fmt.Errorf("%w: menu row has %d fields", model.ErrIO, len(row))
	}

	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return item, fmt.Errorf("%w: bad menu id %q", model.ErrIO, row[0])
	}
	price, err := decimal.NewFromString(strings.TrimSpace(priceField))
	if err != nil {
		return item, fmt.Errorf("%w: bad price %q", model.ErrIO, priceField)
	}

	item.ID = id
	item.Name = row[1]
	item.Price = price
	return item, nil
}
