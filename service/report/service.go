package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

const dateLayout = "2006-01-02"

type ItemSales struct {
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
}

type DailyReport struct {
	Date         string
	TotalOrders  int
	TotalRevenue decimal.Decimal
	Items        map[string]ItemSales
}

// Names returns the item names of the report in ascending order.
func (r DailyReport) Names() []string {
	names := make([]string, 0, len(r.Items))
	for name := range r.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Popular struct {
	Name     string
	Quantity decimal.Decimal
}

// Filter selects the orders counted towards popularity.
type Filter func(o model.Order) bool

func CategoryFilter(category model.Category) Filter {
	return func(o model.Order) bool { return o.Category == category }
}

func AnyCategory(model.Order) bool { return true }

// Orders is the read-only view of the ledger the reports scan.
type Orders interface {
	List() []model.Order
}

type IService interface {
	DailyReport(day string) DailyReport
	MostPopular(filter Filter) (Popular, bool)
}

func NewService(orders Orders) IService {
	return &service{orders: orders}
}

type service struct {
	orders Orders
}

// Today is the report day for now.
func Today(now time.Time) string {
	return now.Format(dateLayout)
}

func (s service) DailyReport(day string) DailyReport {
	r := DailyReport{
		Date:         day,
		TotalRevenue: decimal.Zero,
		Items:        make(map[string]ItemSales),
	}
	for _, o := range s.orders.List() {
		if o.Deleted() || o.Date() != day {
			continue
		}
		r.TotalOrders++
		r.TotalRevenue = r.TotalRevenue.Add(o.Total)

		sales, ok := r.Items[o.Item]
		if !ok {
			sales = ItemSales{Quantity: decimal.Zero, Revenue: decimal.Zero}
		}
		sales.Quantity = sales.Quantity.Add(o.Quantity)
		sales.Revenue = sales.Revenue.Add(o.Total)
		r.Items[o.Item] = sales
	}
	return r
}

// MostPopular sums quantities per item name over live orders accepted by
// filter and returns the item with the greatest sum. A nil filter counts food
// only. Among equal sums the name that sorts first wins. ok is false when
// nothing qualifies.
func (s service) MostPopular(filter Filter) (Popular, bool) {
	if filter == nil {
		filter = CategoryFilter(model.CategoryFood)
	}
	counts := make(map[string]decimal.Decimal)
	for _, o := range s.orders.List() {
		if o.Deleted() || !filter(o) {
			continue
		}
		if q, ok := counts[o.Item]; ok {
			counts[o.Item] = q.Add(o.Quantity)
		} else {
			counts[o.Item] = o.Quantity
		}
	}
	if len(counts) == 0 {
		return Popular{}, false
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	best := Popular{Name: names[0], Quantity: counts[names[0]]}
	for _, name := range names[1:] {
		if counts[name].GreaterThan(best.Quantity) {
			best = Popular{Name: name, Quantity: counts[name]}
		}
	}
	return best, true
}
