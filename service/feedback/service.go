package feedback

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/unmoha/restaurant-customer-order-management/model"
)

type IService interface {
	Submit(ctx context.Context, orderID int64, message string) (model.Feedback, error)
	List() []model.Feedback
}

// Orders resolves the order a feedback refers to.
type Orders interface {
	Find(id int64) (model.Order, error)
}

func NewService(ctx context.Context, repo IRepo, orders Orders, log zerolog.Logger, now func() time.Time) (IService, error) {
	entries, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		entries: entries,
		repo:    repo,
		orders:  orders,
		log:     log.With().Str("component", "feedback").Logger(),
		now:     now,
	}, nil
}

type service struct {
	mu      sync.Mutex
	entries []model.Feedback
	repo    IRepo
	orders  Orders
	log     zerolog.Logger
	now     func() time.Time
}

// Submit checks the order only at submission time; deleting the order later
// leaves its feedback in place.
func (s *service) Submit(ctx context.Context, orderID int64, message string) (model.Feedback, error) {
	o, err := s.orders.Find(orderID)
	if err != nil || o.Deleted() {
		return model.Feedback{}, model.ErrOrderNotFound
	}
	if strings.TrimSpace(message) == "" {
		return model.Feedback{}, model.ErrEmptyMessage
	}
	if strings.ContainsAny(message, ";\r\n") {
		return model.Feedback{}, model.ErrInvalidMessage
	}

	fb := model.Feedback{
		OrderID:   orderID,
		Message:   message,
		Timestamp: s.now().Format(model.TimeLayout),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Append(ctx, fb); err != nil {
		return model.Feedback{}, err
	}
	s.entries = append(s.entries, fb)

	s.log.Info().Int64("order_id", orderID).Msg("feedback received")
	return fb, nil
}

func (s *service) List() []model.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]model.Feedback, len(s.entries))
	copy(res, s.entries)
	return res
}
