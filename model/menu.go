package model

import "github.com/shopspring/decimal"

type MenuItem struct {
	ID       int             `db:"id"`
	Name     string          `db:"name"`
	Category Category        `db:"category"`
	Price    decimal.Decimal `db:"price"`
}

func (m MenuItem) Equal(other MenuItem) bool {
	return m.ID == other.ID &&
		m.Name == other.Name &&
		m.Category == other.Category &&
		m.Price.Equal(other.Price)
}
