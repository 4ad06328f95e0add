package model

import (
	"github.com/shopspring/decimal"
)

// TimeLayout is the fixed, zero-padded timestamp format of every persisted
// record. Lexicographic order on it equals chronological order.
const TimeLayout = "2006-01-02 15:04:05"

// DeletedItem replaces the item name of a soft-deleted order.
const DeletedItem = "[DELETED]"

type Category string

const (
	CategoryFood  Category = "food"
	CategoryDrink Category = "drink"
)

func (c Category) Valid() bool {
	return c == CategoryFood || c == CategoryDrink
}

type Order struct {
	ID        int64           `db:"id"`
	Customer  string          `db:"customer"`
	Item      string          `db:"item"`
	Category  Category        `db:"category"`
	Quantity  decimal.Decimal `db:"quantity"`
	Total     decimal.Decimal `db:"total"`
	Timestamp string          `db:"created_at"`
}

func (o Order) Deleted() bool {
	return o.Item == DeletedItem
}

// Date is the YYYY-MM-DD component of the creation timestamp.
func (o Order) Date() string {
	if len(o.Timestamp) < 10 {
		return o.Timestamp
	}
	return o.Timestamp[:10]
}

// Equal compares field values; decimals compare by value, not representation.
func (o Order) Equal(other Order) bool {
	return o.ID == other.ID &&
		o.Customer == other.Customer &&
		o.Item == other.Item &&
		o.Category == other.Category &&
		o.Quantity.Equal(other.Quantity) &&
		o.Total.Equal(other.Total) &&
		o.Timestamp == other.Timestamp
}
