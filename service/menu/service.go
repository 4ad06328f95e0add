package menu

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

type IService interface {
	Get(id int) (model.MenuItem, error)
	PriceOf(name string) (decimal.Decimal, error)
	CategoryOf(name string) (model.Category, bool)
	Update(ctx context.Context, id int, name *string, price *decimal.Decimal) error
	Add(ctx context.Context, name string, category model.Category, price decimal.Decimal) (model.MenuItem, error)
	List() []model.MenuItem
	ListByCategory(category model.Category) []model.MenuItem
}

// DefaultItems is the catalog written on first start.
func DefaultItems() []model.MenuItem {
	return []model.MenuItem{
		{ID: 1, Name: "TIBS", Category: model.CategoryFood, Price: decimal.NewFromInt(500)},
		{ID: 2, Name: "KITFO", Category: model.CategoryFood, Price: decimal.NewFromInt(600)},
		{ID: 3, Name: "DORO WOTIE", Category: model.CategoryFood, Price: decimal.NewFromInt(1050)},
		{ID: 4, Name: "MINERAL WATER", Category: model.CategoryDrink, Price: decimal.NewFromInt(30)},
		{ID: 5, Name: "BEER", Category: model.CategoryDrink, Price: decimal.NewFromInt(120)},
	}
}

// NewService loads the catalog. An absent or empty store is seeded with
// DefaultItems and written back so later runs start from the same baseline.
func NewService(ctx context.Context, repo IRepo, log zerolog.Logger) (IService, error) {
	items, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &service{repo: repo, log: log.With().Str("component", "menu").Logger()}
	if len(items) == 0 {
		items = DefaultItems()
		if err := repo.Save(ctx, items); err != nil {
			return nil, err
		}
		s.log.Info().Int("items", len(items)).Msg("seeded default menu")
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	s.items = items
	return s, nil
}

type service struct {
	mu    sync.Mutex
	items []model.MenuItem
	repo  IRepo
	log   zerolog.Logger
}

func (s *service) Get(id int) (model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.MenuItem{}, model.ErrUnknownItem
	}
	return s.items[i], nil
}

// PriceOf returns the price of the lowest-id item with the given name.
func (s *service) PriceOf(name string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.Name == name {
			return item.Price, nil
		}
	}
	return decimal.Zero, model.ErrUnknownItem
}

func (s *service) CategoryOf(name string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.Name == name {
			return item.Category, true
		}
	}
	return "", false
}

func (s *service) Update(ctx context.Context, id int, name *string, price *decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.ErrUnknownItem
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return model.ErrInvalidName
	}
	if price != nil && price.IsNegative() {
		return model.ErrInvalidPrice
	}

	prev := s.items[i]
	item := prev
	if name != nil {
		item.Name = *name
	}
	if price != nil {
		item.Price = *price
	}
	s.items[i] = item

	if err := s.repo.Save(ctx, s.items); err != nil {
		s.items[i] = prev
		return err
	}
	s.log.Info().Int("item_id", id).Str("name", item.Name).Str("price", item.Price.StringFixed(2)).Msg("menu item updated")
	return nil
}

func (s *service) Add(ctx context.Context, name string, category model.Category, price decimal.Decimal) (model.MenuItem, error) {
	if strings.TrimSpace(name) == "" {
		return model.MenuItem{}, model.ErrInvalidName
	}
	if !category.Valid() {
		return model.MenuItem{}, model.ErrInvalidCategory
	}
	if price.IsNegative() {
		return model.MenuItem{}, model.ErrInvalidPrice
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, item := range s.items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	item := model.MenuItem{ID: maxID + 1, Name: name, Category: category, Price: price}
	s.items = append(s.items, item)

	if err := s.repo.Save(ctx, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return model.MenuItem{}, err
	}
	s.log.Info().Int("item_id", item.ID).Str("name", name).Msg("menu item added")
	return item, nil
}

func (s *service) List() []model.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]model.MenuItem, len(s.items))
	copy(res, s.items)
	return res
}

func (s *service) ListByCategory(category model.Category) []model.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []model.MenuItem
	for _, item := range s.items {
		if item.Category == category {
			res = append(res, item)
		}
	}
	return res
}

func (s *service) indexOf(id int) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
