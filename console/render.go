package console

import (
	"strings"

	"github.com/unmoha/restaurant-customer-order-management/model"
	"github.com/unmoha/restaurant-customer-order-management/service/report"
)

func (s *Session) showMenu() {
	s.println("\n----- FOOD MENU -----")
	for _, item := range s.Menu.ListByCategory(model.CategoryFood) {
		s.printf("%d. %-20s: %s birr\n", item.ID, item.Name, item.Price.StringFixed(2))
	}
	s.println("\n----- DRINK MENU -----")
	for _, item := range s.Menu.ListByCategory(model.CategoryDrink) {
		s.printf("%d. %-20s: %s birr\n", item.ID, item.Name, item.Price.StringFixed(2))
	}
	s.println("------------------------")
}

func (s *Session) renderOrders(orders []model.Order) {
	if len(orders) == 0 {
		s.println("\nNo orders to display.")
		return
	}
	s.println("\n------ Order List ------")
	s.printf("%-6s%-20s%-20s%-8s%-10s%s\n", "ID", "Customer", "Item", "Qty", "Total", "Time")
	s.println(strings.Repeat("-", 70))
	for _, o := range orders {
		s.printf("%-6d%-20s%-20s%-8s%-10s%s\n",
			o.ID, o.Customer, o.Item, o.Quantity.StringFixed(2), o.Total.StringFixed(2), o.Timestamp)
	}
}

func (s *Session) renderReport(r report.DailyReport) {
	s.println("\n====== Daily Sales Report ======")
	s.printf("Date: %s\n", r.Date)
	s.printf("Total Orders: %d\n", r.TotalOrders)
	s.printf("Total Revenue: %s birr\n\n", r.TotalRevenue.StringFixed(2))

	if len(r.Items) == 0 {
		s.println("No sales today.")
	} else {
		s.println("Item-wise Sales:")
		s.printf("%-20s%-10s%-15s\n", "Item", "Quantity", "Revenue (birr)")
		s.println(strings.Repeat("-", 45))
		for _, name := range r.Names() {
			sales := r.Items[name]
			s.printf("%-20s%-10s%-15s\n", name, sales.Quantity.StringFixed(2), sales.Revenue.StringFixed(2))
		}
	}
	s.println("===============================")
}

func (s *Session) renderFeedback(entries []model.Feedback) {
	if len(entries) == 0 {
		s.println("No feedback available.")
		return
	}
	s.println("\n====== Customer Feedbacks ======")
	s.printf("%-10s%-20s%s\n", "Order ID", "Time", "Feedback")
	s.println(strings.Repeat("-", 70))
	for _, fb := range entries {
		s.printf("%-10d%-20s%s\n", fb.OrderID, fb.Timestamp, fb.Message)
	}
	s.println("===============================")
}

func (s *Session) popularBanner() {
	if len(s.Orders.List()) == 0 {
		s.printf("** Most Popular %s: (No orders yet) **\n", s.PopularLabel)
		return
	}
	best, ok := s.Reports.MostPopular(s.Popular)
	if !ok {
		s.printf("** Most Popular %s: (No valid orders) **\n", s.PopularLabel)
		return
	}
	s.printf("** Most Popular %s: %s (Sold %s units) **\n", s.PopularLabel, best.Name, best.Quantity.String())
}
