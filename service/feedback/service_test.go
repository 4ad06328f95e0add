package feedback

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

type stubOrders map[int64]model.Order

func (s stubOrders) Find(id int64) (model.Order, error) {
	o, ok := s[id]
	if !ok {
		return model.Order{}, model.ErrNotFoundOrder
	}
	return o, nil
}

var fixedNow = func() time.Time { return time.Date(2026, 10, 17, 13, 30, 0, 0, time.Local) }

func newTestService(t *testing.T, orders stubOrders) (IService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feedbacks.txt")
	svc, err := NewService(context.Background(), NewRepo(path), orders, zerolog.Nop(), fixedNow)
	require.NoError(t, err)
	return svc, path
}

func Test_Submit(t *testing.T) {
	orders := stubOrders{1001: {ID: 1001, Item: "TIBS"}}
	svc, path := newTestService(t, orders)

	fb, err := svc.Submit(context.Background(), 1001, "great tibs, thanks")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-17 13:30:00", fb.Timestamp)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1001;2026-10-17 13:30:00;great tibs, thanks\n", string(raw))
	assert.Equal(t, []model.Feedback{fb}, svc.List())
}

func Test_Submit_Errors(t *testing.T) {
	orders := stubOrders{
		1001: {ID: 1001, Item: "TIBS"},
		1002: {ID: 1002, Item: model.DeletedItem},
	}
	svc, _ := newTestService(t, orders)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 999, "hello")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)

	_, err = svc.Submit(ctx, 1002, "hello")
	assert.ErrorIs(t, err, model.ErrOrderNotFound)

	_, err = svc.Submit(ctx, 1001, "  ")
	assert.ErrorIs(t, err, model.ErrEmptyMessage)

	_, err = svc.Submit(ctx, 1001, "good;bad")
	assert.ErrorIs(t, err, model.ErrInvalidMessage)

	assert.Empty(t, svc.List())
}

func Test_Feedback_SurvivesOrderDeletion(t *testing.T) {
	orders := stubOrders{1001: {ID: 1001, Item: "TIBS"}}
	svc, path := newTestService(t, orders)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 1001, "first")
	require.NoError(t, err)
	orders[1001] = model.Order{ID: 1001, Item: model.DeletedItem}

	reloaded, err := NewService(ctx, NewRepo(path), orders, zerolog.Nop(), fixedNow)
	require.NoError(t, err)
	assert.Len(t, reloaded.List(), 1)
}

func Test_RoundTrip_AppendOnly(t *testing.T) {
	orders := stubOrders{1001: {ID: 1001, Item: "TIBS"}, 1002: {ID: 1002, Item: "BEER"}}
	svc, path := newTestService(t, orders)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 1001, `the "special" was cold`)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, 1002, "cold beer")
	require.NoError(t, err)

	reloaded, err := NewService(ctx, NewRepo(path), orders, zerolog.Nop(), fixedNow)
	require.NoError(t, err)
	assert.Equal(t, svc.List(), reloaded.List())
}

func Test_Load_LegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedbacks.txt")
	require.NoError(t, os.WriteFile(path, []byte("1001;2026-10-16 10:00:00;nice place\n"), 0644))

	svc, err := NewService(context.Background(), NewRepo(path), stubOrders{}, zerolog.Nop(), nil)
	require.NoError(t, err)
	assert.Equal(t, []model.Feedback{{OrderID: 1001, Timestamp: "2026-10-16 10:00:00", Message: "nice place"}}, svc.List())
}
