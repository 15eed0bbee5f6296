package ordersearch

import (
	"context"

	historyuc "github.com/glassline/ordersearch/internal/usecase/history"
)

// HistoryService exposes the per-user search history log. Every operation
// requires a store-backed engine and returns ErrNoStore otherwise.
type HistoryService struct {
	svc *historyuc.Service
}

// List returns the user's history, most recent first.
func (s *HistoryService) List(ctx context.Context, userID string) ([]HistoryEntry, error) {
	if s.svc == nil {
		return nil, ErrNoStore
	}
	entries, err := s.svc.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return fromHistoryEntries(entries), nil
}

// MarkOpened records that the user opened a result of a past search.
// Unknown entry ids are ignored.
func (s *HistoryService) MarkOpened(ctx context.Context, userID, entryID, orderID string) error {
	if s.svc == nil {
		return ErrNoStore
	}
	return s.svc.MarkOpened(ctx, userID, entryID, orderID)
}

// Clear drops the user's entire history.
func (s *HistoryService) Clear(ctx context.Context, userID string) error {
	if s.svc == nil {
		return ErrNoStore
	}
	return s.svc.Clear(ctx, userID)
}
