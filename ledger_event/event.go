package ledger_event

import "github.com/unmoha/restaurant-customer-order-management/model"

type Kind string

const (
	OrderCreated Kind = "ORDER_CREATED"
	OrderUpdated Kind = "ORDER_UPDATED"
	OrderDeleted Kind = "ORDER_DELETED"
	OrdersSorted Kind = "ORDERS_SORTED"
)

type OrderEvent struct {
	Kind       Kind   `json:"kind"`
	OrderID    int64  `json:"order_id,omitempty"`
	Customer   string `json:"customer,omitempty"`
	Item       string `json:"item,omitempty"`
	Category   string `json:"category,omitempty"`
	Quantity   string `json:"quantity,omitempty"`
	Total      string `json:"total,omitempty"`
	Delta      string `json:"delta,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

func FromOrder(kind Kind, o model.Order, occurredAt string) OrderEvent {
	return OrderEvent{
		Kind:       kind,
		OrderID:    o.ID,
		Customer:   o.Customer,
		Item:       o.Item,
		Category:   string(o.Category),
		Quantity:   o.Quantity.StringFixed(2),
		Total:      o.Total.StringFixed(2),
		CreatedAt:  o.Timestamp,
		OccurredAt: occurredAt,
	}
}
