package order

import (
	"encoding/json"

	"github.com/unmoha/restaurant-customer-order-management/ledger_event"
)

// publish relays a ledger event. The text store is the system of record, so
// a failed push is logged and the mutation still stands.
func (s *service) publish(event ledger_event.OrderEvent) {
	if s.producer == nil {
		return
	}
	content, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Str("kind", string(event.Kind)).Msg("failed to encode ledger event")
		return
	}
	if err := s.producer.Push([][]byte{content}); err != nil {
		s.log.Warn().Err(err).Str("kind", string(event.Kind)).Int64("order_id", event.OrderID).Msg("failed to publish ledger event")
	}
}
