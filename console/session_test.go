package console

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmoha/restaurant-customer-order-management/kafka"
	"github.com/unmoha/restaurant-customer-order-management/service/auth"
	"github.com/unmoha/restaurant-customer-order-management/service/feedback"
	"github.com/unmoha/restaurant-customer-order-management/service/menu"
	"github.com/unmoha/restaurant-customer-order-management/service/order"
	"github.com/unmoha/restaurant-customer-order-management/service/report"
)

var clock = func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local) }

type env struct {
	dir  string
	deps Deps
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()
	log := zerolog.Nop()

	catalog, err := menu.NewService(ctx, menu.NewRepo(filepath.Join(dir, "menu.txt")), log)
	require.NoError(t, err)
	orders, err := order.NewService(ctx, order.NewRepo(filepath.Join(dir, "orders.txt")), catalog,
		kafka.NopProducer{}, log, order.Options{Now: clock})
	require.NoError(t, err)
	fb, err := feedback.NewService(ctx, feedback.NewRepo(filepath.Join(dir, "feedbacks.txt")), orders, log, clock)
	require.NoError(t, err)
	gate, err := auth.NewFileGate(map[auth.Role]string{
		auth.RoleCashier: filepath.Join(dir, "password.txt"),
		auth.RoleChef:    filepath.Join(dir, "chef_password.txt"),
	}, log)
	require.NoError(t, err)

	return &env{dir: dir, deps: Deps{
		Orders:   orders,
		Menu:     catalog,
		Feedback: fb,
		Reports:  report.NewService(orders),
		Gate:     gate,
		Log:      log,
		Now:      clock,
	}}
}

func (e *env) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(in, &out, e.deps).Run(context.Background()))
	return out.String()
}

func Test_Customer_CreateOrder(t *testing.T) {
	e := newEnv(t)

	out := e.run(t, "1", "1", "1", "Abel", "2", "0", "0")

	assert.Contains(t, out, "** Most Popular Food: (No orders yet) **")
	assert.Contains(t, out, "1. TIBS                : 500.00 birr")
	assert.Contains(t, out, "Order ID 1001 created at 2026-10-17 09:00:00. Total: 1000.00 birr.")
	assert.Contains(t, out, "** Most Popular Food: TIBS (Sold 2 units) **")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func Test_Customer_CreateOrder_Reprompts(t *testing.T) {
	e := newEnv(t)

	out := e.run(t, "1", "1", "9", "1", "1", "Abel1", "Abel", "x", "2", "0", "0")

	assert.Contains(t, out, "Invalid selection.")
	assert.Contains(t, out, "Invalid name. Use letters and spaces only.")
	assert.Contains(t, out, "Invalid quantity. Use digits only.")
	assert.Contains(t, out, "Total: 1000.00 birr.")
}

func Test_Customer_DrinkInLiters(t *testing.T) {
	e := newEnv(t)

	out := e.run(t, "1", "1", "5", "Sara", "1.5", "0", "0")

	assert.Contains(t, out, "Enter liters: ")
	assert.Contains(t, out, "Total: 180.00 birr.")
}

func Test_Cashier_WrongPassword(t *testing.T) {
	e := newEnv(t)

	out := e.run(t, "2", "nope", "0")

	assert.Contains(t, out, "Wrong password.")
	assert.NotContains(t, out, "Cashier Menu")
}

func Test_Cashier_UpdateReportSortDelete(t *testing.T) {
	e := newEnv(t)
	_, err := e.deps.Orders.Create(context.Background(), 1, "Abel", "2")
	require.NoError(t, err)

	out := e.run(t,
		"2", "123",
		"3", "1001", "3",
		"8",
		"6",
		"4", "1001",
		"5", "1001",
		"0", "0",
	)

	assert.Contains(t, out, "Order 1001 updated. New total: 1500.00 birr.")
	assert.Contains(t, out, "Price changed by: 500.00 birr (+500.00)")
	assert.Contains(t, out, "Date: 2026-10-17\nTotal Orders: 1\nTotal Revenue: 1500.00 birr")
	assert.Contains(t, out, "TIBS                3.00      1500.00")
	assert.Contains(t, out, "Orders sorted by time.")
	assert.Contains(t, out, "Order 1001 marked as deleted.")
	assert.Contains(t, out, "Found Order: Abel ordered [DELETED] x0 at 2026-10-17 09:00:00. Total: 0.00 birr.")
}

func Test_Cashier_UpdateDeletedOrder(t *testing.T) {
	e := newEnv(t)
	_, err := e.deps.Orders.Create(context.Background(), 1, "Abel", "2")
	require.NoError(t, err)

	out := e.run(t, "2", "123", "4", "1001", "3", "1001", "0", "0")

	assert.Contains(t, out, "Order 1001 marked as deleted.")
	assert.Contains(t, out, "Order ID not found.")
	assert.NotContains(t, out, "Enter new quantity: ")
}

func Test_Cashier_UnknownOrder(t *testing.T) {
	e := newEnv(t)

	out := e.run(t, "2", "123", "3", "4242", "5", "abc", "0", "0")

	assert.Equal(t, 2, strings.Count(out, "Order ID not found."))
}

func Test_Cashier_UpdateMenuAndPassword(t *testing.T) {
	e := newEnv(t)

	out := e.run(t,
		"2", "123",
		"7", "1", "2", "2", "650",
		"7", "2", "TEJ", "drink", "95",
		"9", "123", "456",
		"0",
		"2", "123",
		"2", "456", "0",
		"0",
	)

	assert.Contains(t, out, "Item price updated.")
	assert.Contains(t, out, "New menu item added.")
	assert.Contains(t, out, "Cashier password changed successfully.")
	assert.Contains(t, out, "Wrong password.")

	item, err := e.deps.Menu.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "650.00", item.Price.StringFixed(2))
	added, err := e.deps.Menu.Get(6)
	require.NoError(t, err)
	assert.Equal(t, "TEJ", added.Name)
	assert.True(t, e.deps.Gate.Verify(auth.RoleCashier, "456"))
}

func Test_Feedback_CustomerToChef(t *testing.T) {
	e := newEnv(t)
	_, err := e.deps.Orders.Create(context.Background(), 2, "Abel", "1")
	require.NoError(t, err)

	out := e.run(t,
		"1", "5", "1001", "Lovely kitfo", "5", "77", "0",
		"3", "123", "1", "0",
		"0",
	)

	assert.Contains(t, out, "Thank you for your feedback!")
	assert.Contains(t, out, "Order ID not found or invalid.")
	assert.Contains(t, out, "1001      2026-10-17 09:00:00 Lovely kitfo")
}

func Test_Run_EndsOnEOF(t *testing.T) {
	e := newEnv(t)

	var out bytes.Buffer
	err := New(strings.NewReader("1\n1\n"), &out, e.deps).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out.String(), "Goodbye!\n"))
	assert.Empty(t, e.deps.Orders.List())
}

func Test_Run_InvalidRole(t *testing.T) {
	e := newEnv(t)
	out := e.run(t, "7", "x", "0")
	assert.Equal(t, 2, strings.Count(out, "Invalid role selected."))
}

func Test_Capacity_Message(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for i := 0; i < order.DefaultMaxOrders; i++ {
		_, err := e.deps.Orders.Create(ctx, 1, "Abel", "1")
		require.NoError(t, err)
	}

	out := e.run(t, "1", "1", "0", "0")
	assert.Contains(t, out, "Maximum order limit (60) reached!")
}
