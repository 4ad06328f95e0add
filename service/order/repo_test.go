package order

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

func Test_Repo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.txt")
	repo := NewRepo(path)
	ctx := context.Background()

	orders := []model.Order{
		{
			ID: 1001, Customer: "Abel", Item: "TIBS", Category: model.CategoryFood,
			Quantity: decimal.NewFromInt(2), Total: decimal.NewFromInt(1000),
			Timestamp: "2026-10-17 09:00:00",
		},
		{
			ID: 1002, Customer: "Sara Bekele", Item: "BEER", Category: model.CategoryDrink,
			Quantity: decimal.RequireFromString("1.5"), Total: decimal.NewFromInt(180),
			Timestamp: "2026-10-17 09:05:00",
		},
		{
			ID: 1003, Customer: "Hana", Item: model.DeletedItem, Category: model.CategoryFood,
			Quantity: decimal.Zero, Total: decimal.Zero,
			Timestamp: "2026-10-17 09:10:00",
		},
	}
	require.NoError(t, repo.Save(ctx, orders))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"ID,Customer,Item,Category,Quantity,Total,Time\n"+
			"1001,Abel,TIBS,food,2.00,1000.00,2026-10-17 09:00:00\n"+
			"1002,Sara Bekele,BEER,drink,1.50,180.00,2026-10-17 09:05:00\n"+
			"1003,Hana,[DELETED],food,0.00,0.00,2026-10-17 09:10:00\n",
		string(raw),
	)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(orders))
	for i := range orders {
		assert.True(t, orders[i].Equal(loaded[i]), "order %d: %+v != %+v", i, orders[i], loaded[i])
	}
}

func Test_Repo_LoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.txt")
	orders, err := NewRepo(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func Test_Repo_LoadLegacyRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.txt")
	content := "ID,Customer,Item,Quantity,Total,Time\n1001,Abel,KITFO,2.00,1200.00,2026-10-16 12:00:00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	orders, err := NewRepo(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, model.Category(""), orders[0].Category)
	assert.Equal(t, "KITFO", orders[0].Item)
	assert.Equal(t, "1200.00", orders[0].Total.StringFixed(2))
	assert.Equal(t, "2026-10-16 12:00:00", orders[0].Timestamp)
}

func Test_Repo_LoadCorruptRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.txt")
	content := "ID,Customer,Item,Category,Quantity,Total,Time\nabc,Abel,TIBS,food,1,500,2026-10-17 09:00:00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := NewRepo(path).Load(context.Background())
	assert.ErrorIs(t, err, model.ErrIO)
}
