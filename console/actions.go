package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/unmoha/restaurant-customer-order-management/model"
	"github.com/unmoha/restaurant-customer-order-management/service/auth"
	"github.com/unmoha/restaurant-customer-order-management/service/report"
)

const (
	customerMenu = "\n=== Customer Menu ===\n1. Create Order\n2. Search Order by ID\n3. Update Order by ID\n" +
		"4. Delete Order by ID\n5. Submit Feedback\n0. Back\nChoose: "
	cashierMenu = "\n===== Cashier Menu =====\n1. Create Order\n2. List Orders\n3. Update Order\n4. Delete Order\n" +
		"5. Search Order\n6. Sort Orders\n7. Update Menu\n8. Daily Sales Report\n9. Change Password\n0. Exit\nChoose: "
	chefMenu = "\n=== Chef Menu ===\n1. View Feedbacks\n2. List Orders\n3. Change Password\n0. Back\nChoose: "
)

func (s *Session) createOrder(ctx context.Context) error {
	if s.Orders.ActiveCount() >= s.Orders.Capacity() {
		s.printf("Maximum order limit (%d) reached!\n", s.Orders.Capacity())
		return nil
	}

	s.showMenu()
	s.println("0. Cancel")
	choice, err := s.readInt("Enter menu number: ")
	if errors.Is(err, errQuit) {
		return err
	}
	if err == nil && choice == 0 {
		return nil
	}
	item, lookupErr := s.Menu.Get(choice)
	if err != nil || lookupErr != nil {
		s.println("Invalid selection.")
		return nil
	}

	var customer string
	for {
		if customer, err = s.readLine("Enter customer name: "); err != nil {
			return err
		}
		if model.ValidCustomerName(customer) {
			break
		}
		s.println("Invalid name. Use letters and spaces only.")
	}

	prompt, hint := "Enter quantity: ", "Invalid quantity. Use digits only."
	if item.Category == model.CategoryDrink {
		prompt, hint = "Enter liters: ", "Invalid amount. Use a number of liters."
	}
	var quantity string
	for {
		if quantity, err = s.readLine(prompt); err != nil {
			return err
		}
		if _, err := model.ParseQuantity(item.Category, quantity); err == nil {
			break
		}
		s.println(hint)
	}

	o, err := s.Orders.Create(ctx, item.ID, customer, quantity)
	if err != nil {
		return err
	}
	s.printf("Order ID %d created at %s. Total: %s birr.\n", o.ID, o.Timestamp, o.Total.StringFixed(2))
	return nil
}

func (s *Session) listOrders(ctx context.Context) error {
	s.renderOrders(s.Orders.List())
	return nil
}

func (s *Session) searchOrder(ctx context.Context) error {
	id, err := s.readOrderID("Enter Order ID to search: ")
	if err != nil {
		return err
	}
	o, err := s.Orders.Find(id)
	if err != nil {
		return err
	}
	s.printf("Found Order: %s ordered %s x%s at %s. Total: %s birr.\n",
		o.Customer, o.Item, o.Quantity.String(), o.Timestamp, o.Total.StringFixed(2))
	return nil
}

func (s *Session) updateOrder(ctx context.Context) error {
	id, err := s.readOrderID("Enter Order ID to update: ")
	if err != nil {
		return err
	}
	current, err := s.Orders.Find(id)
	if err != nil {
		return err
	}
	if current.Deleted() {
		return model.ErrNotFoundOrder
	}

	prompt := "Enter new quantity: "
	if current.Category == model.CategoryDrink {
		prompt = "Enter new liters: "
	}
	var quantity string
	for {
		if quantity, err = s.readLine(prompt); err != nil {
			return err
		}
		if _, err := model.ParseQuantity(current.Category, quantity); err == nil {
			break
		}
		s.println("Invalid quantity.")
	}

	o, delta, err := s.Orders.Update(ctx, id, quantity)
	if errors.Is(err, model.ErrUnknownItem) {
		s.printf("Order %d updated, but %q is no longer on the menu; total left at %s birr.\n",
			id, o.Item, o.Total.StringFixed(2))
		return nil
	}
	if err != nil {
		return err
	}
	s.printf("Order %d updated. New total: %s birr.\n", id, o.Total.StringFixed(2))
	if !delta.IsZero() {
		sign := ""
		if delta.IsPositive() {
			sign = "+"
		}
		s.printf("Price changed by: %s birr (%s%s)\n", delta.Abs().StringFixed(2), sign, delta.StringFixed(2))
	}
	return nil
}

func (s *Session) deleteOrder(ctx context.Context) error {
	id, err := s.readOrderID("Enter Order ID to delete: ")
	if err != nil {
		return err
	}
	if _, err := s.Orders.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.printf("Order %d marked as deleted.\n", id)
	return nil
}

func (s *Session) sortOrders(ctx context.Context) error {
	if err := s.Orders.SortByTimestamp(ctx); err != nil {
		return err
	}
	s.println("Orders sorted by time.")
	s.renderOrders(s.Orders.List())
	return nil
}

func (s *Session) updateMenu(ctx context.Context) error {
	option, err := s.readInt("\n1. Update Existing Item\n2. Add New Item\nChoose: ")
	if errors.Is(err, errQuit) {
		return err
	}
	switch {
	case err == nil && option == 1:
		return s.editMenuItem(ctx)
	case err == nil && option == 2:
		return s.addMenuItem(ctx)
	}
	s.println("Invalid option.")
	return nil
}

func (s *Session) editMenuItem(ctx context.Context) error {
	id, err := s.readInt("Enter item ID to update: ")
	if errors.Is(err, errQuit) {
		return err
	}
	if err != nil {
		s.println("Item ID not found.")
		return nil
	}
	if _, err := s.Menu.Get(id); err != nil {
		s.println("Item ID not found.")
		return nil
	}

	change, err := s.readInt("Update:\n1. Name only\n2. Price only\n3. Both\nChoose: ")
	if errors.Is(err, errQuit) {
		return err
	}
	if err != nil || change < 1 || change > 3 {
		s.println("Invalid option.")
		return nil
	}

	var name *string
	var price *decimal.Decimal
	if change == 1 || change == 3 {
		n, err := s.readLine("Enter new name: ")
		if err != nil {
			return err
		}
		name = &n
	}
	if change == 2 || change == 3 {
		p, err := s.readPrice("Enter new price: ")
		if err != nil {
			return err
		}
		price = &p
	}

	if err := s.Menu.Update(ctx, id, name, price); err != nil {
		return err
	}
	switch change {
	case 1:
		s.println("Item name updated.")
	case 2:
		s.println("Item price updated.")
	default:
		s.println("Item name and price updated.")
	}
	return nil
}

func (s *Session) addMenuItem(ctx context.Context) error {
	name, err := s.readLine("Enter item name: ")
	if err != nil {
		return err
	}
	category, err := s.readLine("Enter category (food/drink): ")
	if err != nil {
		return err
	}
	price, err := s.readPrice("Enter price: ")
	if err != nil {
		return err
	}

	if _, err := s.Menu.Add(ctx, name, model.Category(strings.ToLower(strings.TrimSpace(category))), price); err != nil {
		return err
	}
	s.println("New menu item added.")
	return nil
}

func (s *Session) dailyReport(ctx context.Context) error {
	s.renderReport(s.Reports.DailyReport(report.Today(s.Now())))
	return nil
}

func (s *Session) submitFeedback(ctx context.Context) error {
	id, err := s.readOrderID("Enter your Order ID: ")
	if err != nil {
		return err
	}
	if o, err := s.Orders.Find(id); err != nil || o.Deleted() {
		return model.ErrOrderNotFound
	}
	msg, err := s.readLine("Enter your feedback: ")
	if err != nil {
		return err
	}
	if _, err := s.Feedback.Submit(ctx, id, msg); err != nil {
		return err
	}
	s.println("Thank you for your feedback!")
	return nil
}

func (s *Session) viewFeedback(ctx context.Context) error {
	s.renderFeedback(s.Feedback.List())
	return nil
}

func (s *Session) changePassword(ctx context.Context, role auth.Role) error {
	label := ""
	if role == auth.RoleChef {
		label = "chef "
	}
	current, err := s.readPassword("Enter current " + label + "password: ")
	if err != nil {
		return err
	}
	next, err := s.readPassword("\nEnter new " + label + "password: ")
	if err != nil {
		return err
	}
	if err := s.Gate.Change(ctx, role, current, next); err != nil {
		return err
	}
	if role == auth.RoleChef {
		s.println("\nChef password changed successfully.")
	} else {
		s.println("\nCashier password changed successfully.")
	}
	return nil
}

func (s *Session) readOrderID(prompt string) (int64, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0, model.ErrNotFoundOrder
	}
	return id, nil
}

func (s *Session) readPrice(prompt string) (decimal.Decimal, error) {
	for {
		line, err := s.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		p, err := decimal.NewFromString(strings.TrimSpace(line))
		if err == nil && !p.IsNegative() {
			return p.Round(2), nil
		}
		s.println("Invalid price.")
	}
}
