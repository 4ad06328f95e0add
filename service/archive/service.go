package archive

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

type IService interface {
	// Archive copies the whole ledger into the archive database and returns
	// the number of rows written. Rows already archived are refreshed.
	Archive(ctx context.Context) (int, error)
	// Archived returns the number of orders held in the archive database.
	Archived(ctx context.Context) (int, error)
}

type Orders interface {
	List() []model.Order
}

func NewService(repo IRepo, orders Orders, log zerolog.Logger) IService {
	return &service{
		repo:   repo,
		orders: orders,
		log:    log.With().Str("component", "archive").Logger(),
	}
}

type service struct {
	repo   IRepo
	orders Orders
	log    zerolog.Logger
}

func (s service) Archive(ctx context.Context) (int, error) {
	orders := s.orders.List()
	err := s.repo.Transact(ctx, func(ctx context.Context) error {
		for _, o := range orders {
			if err := s.repo.UpsertOrder(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("orders", len(orders)).Msg("ledger archived")
	return len(orders), nil
}

func (s service) Archived(ctx context.Context) (int, error) {
	return s.repo.CountOrders(ctx)
}
