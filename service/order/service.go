package order

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/unmoha/restaurant-customer-order-management/kafka"
	"github.com/unmoha/restaurant-customer-order-management/ledger_event"
	"github.com/unmoha/restaurant-customer-order-management/model"
)

const (
	DefaultMaxOrders    = 60
	DefaultFirstOrderID = 1001
)

type IService interface {
	Create(ctx context.Context, itemID int, customer string, quantity string) (model.Order, error)
	Update(ctx context.Context, id int64, quantity string) (model.Order, decimal.Decimal, error)
	SoftDelete(ctx context.Context, id int64) (model.Order, error)
	Find(id int64) (model.Order, error)
	SortByTimestamp(ctx context.Context) error
	List() []model.Order
	ActiveCount() int
	Capacity() int
}

// Catalog is the part of the menu the ledger prices orders against.
type Catalog interface {
	Get(id int) (model.MenuItem, error)
	PriceOf(name string) (decimal.Decimal, error)
	CategoryOf(name string) (model.Category, bool)
}

type Options struct {
	MaxOrders    int
	FirstOrderID int64
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.MaxOrders <= 0 {
		o.MaxOrders = DefaultMaxOrders
	}
	if o.FirstOrderID <= 0 {
		o.FirstOrderID = DefaultFirstOrderID
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// NewService loads the ledger. The next id is the larger of FirstOrderID and
// one past the highest loaded id. The active counter starts at the number of
// loaded orders that are not soft-deleted.
func NewService(
	ctx context.Context,
	repo IRepo,
	catalog Catalog,
	producer kafka.IProducer,
	log zerolog.Logger,
	opts Options,
) (IService, error) {
	opts = opts.withDefaults()
	orders, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &service{
		repo:     repo,
		catalog:  catalog,
		producer: producer,
		log:      log.With().Str("component", "ledger").Logger(),
		opts:     opts,
		nextID:   opts.FirstOrderID,
	}
	for i := range orders {
		if orders[i].Category == "" {
			orders[i].Category = s.inferCategory(orders[i].Item)
		}
		if orders[i].ID >= s.nextID {
			s.nextID = orders[i].ID + 1
		}
		if !orders[i].Deleted() {
			s.active++
		}
	}
	s.orders = orders

	s.log.Debug().Int("orders", len(orders)).Int64("next_id", s.nextID).Int("active", s.active).Msg("ledger loaded")
	return s, nil
}

type service struct {
	mu       sync.Mutex
	orders   []model.Order
	nextID   int64
	active   int
	repo     IRepo
	catalog  Catalog
	producer kafka.IProducer
	log      zerolog.Logger
	opts     Options
}

func (s *service) Create(ctx context.Context, itemID int, customer string, quantity string) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active >= s.opts.MaxOrders {
		return model.Order{}, model.ErrCapacityExceeded
	}
	item, err := s.catalog.Get(itemID)
	if err != nil {
		return model.Order{}, err
	}
	if !model.ValidCustomerName(customer) {
		return model.Order{}, model.ErrInvalidName
	}
	q, err := model.ParseQuantity(item.Category, quantity)
	if err != nil {
		return model.Order{}, err
	}

	o := model.Order{
		ID:        s.nextID,
		Customer:  customer,
		Item:      item.Name,
		Category:  item.Category,
		Quantity:  q,
		Total:     model.LineTotal(item.Price, q),
		Timestamp: s.now(),
	}

	s.orders = append(s.orders, o)
	if err := s.repo.Save(ctx, s.orders); err != nil {
		s.orders = s.orders[:len(s.orders)-1]
		return model.Order{}, err
	}
	s.nextID++
	s.active++

	s.log.Info().Int64("order_id", o.ID).Str("item", o.Item).Str("total", o.Total.StringFixed(2)).Msg("order created")
	s.publish(ledger_event.FromOrder(ledger_event.OrderCreated, o, o.Timestamp))
	return o, nil
}

// Update sets a new quantity and reprices the order with the current catalog
// price of its item name. When no catalog item carries that name the new
// quantity is kept, the total is left as it was and ErrUnknownItem is
// returned together with the updated order. Soft-deleted orders cannot be
// updated and are reported as not found.
func (s *service) Update(ctx context.Context, id int64, quantity string) (model.Order, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 || s.orders[i].Deleted() {
		return model.Order{}, decimal.Zero, model.ErrNotFoundOrder
	}
	prev := s.orders[i]

	q, err := model.ParseQuantity(prev.Category, quantity)
	if err != nil {
		return model.Order{}, decimal.Zero, err
	}

	o := prev
	o.Quantity = q
	price, priceErr := s.catalog.PriceOf(o.Item)
	if priceErr == nil {
		o.Total = model.LineTotal(price, q)
	}

	s.orders[i] = o
	if err := s.repo.Save(ctx, s.orders); err != nil {
		s.orders[i] = prev
		return model.Order{}, decimal.Zero, err
	}

	delta := o.Total.Sub(prev.Total)
	s.log.Info().Int64("order_id", id).Str("total", o.Total.StringFixed(2)).Str("delta", delta.StringFixed(2)).Msg("order updated")
	event := ledger_event.FromOrder(ledger_event.OrderUpdated, o, s.now())
	event.Delta = delta.StringFixed(2)
	s.publish(event)

	if priceErr != nil {
		s.log.Warn().Int64("order_id", id).Str("item", o.Item).Msg("no menu price for item, total unchanged")
		return o, delta, priceErr
	}
	return o, delta, nil
}

// SoftDelete blanks the order in place. Deleting an already deleted order
// has no further effect, neither on the record nor on the active counter.
func (s *service) SoftDelete(ctx context.Context, id int64) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Order{}, model.ErrNotFoundOrder
	}
	prev := s.orders[i]
	if prev.Deleted() {
		return prev, nil
	}

	o := prev
	o.Item = model.DeletedItem
	o.Quantity = decimal.Zero
	o.Total = decimal.Zero

	s.orders[i] = o
	if err := s.repo.Save(ctx, s.orders); err != nil {
		s.orders[i] = prev
		return model.Order{}, err
	}
	s.active--

	s.log.Info().Int64("order_id", id).Str("item", prev.Item).Msg("order deleted")
	s.publish(ledger_event.FromOrder(ledger_event.OrderDeleted, o, s.now()))
	return o, nil
}

func (s *service) Find(id int64) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Order{}, model.ErrNotFoundOrder
	}
	return s.orders[i], nil
}

func (s *service) SortByTimestamp(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.orders
	s.orders = MergeSort(s.orders, ByTimestamp)
	if err := s.repo.Save(ctx, s.orders); err != nil {
		s.orders = prev
		return err
	}

	s.log.Info().Int("orders", len(s.orders)).Msg("orders sorted by time")
	s.publish(ledger_event.OrderEvent{Kind: ledger_event.OrdersSorted, OccurredAt: s.now()})
	return nil
}

func (s *service) List() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]model.Order, len(s.orders))
	copy(res, s.orders)
	return res
}

func (s *service) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *service) Capacity() int {
	return s.opts.MaxOrders
}

func (s *service) indexOf(id int64) int {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *service) inferCategory(item string) model.Category {
	if category, ok := s.catalog.CategoryOf(item); ok {
		return category
	}
	return model.CategoryFood
}

func (s *service) now() string {
	return s.opts.Now().Format(model.TimeLayout)
}

