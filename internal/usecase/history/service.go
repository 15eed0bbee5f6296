// Package history records executed searches per user with a bounded,
// oldest-evicted log that feeds the suggestion generator.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/domain/history"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
)

// Repository persists per-user history lists.
type Repository interface {
	Load(ctx context.Context, userID string) ([]history.Entry, error)
	Save(ctx context.Context, userID string, entries []history.Entry) error
	Clear(ctx context.Context, userID string) error
}

// Service manages the search history log.
type Service struct {
	repo   Repository
	logger *zap.Logger
	cap    int
	now    func() time.Time
	newID  func() string
}

// New creates a history service with the default per-user cap.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		cap:    history.MaxPerUser,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithCap overrides the per-user retention cap.
func (s *Service) WithCap(n int) *Service {
	if n > 0 {
		s.cap = n
	}
	return s
}

// WithClock overrides the time source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Record appends one executed search, evicting the oldest entries beyond
// the cap. Entries are stored newest-first.
func (s *Service) Record(
	ctx context.Context, userID, text string,
	criteria filter.Criteria, resultCount int, elapsed time.Duration,
) error {
	entries, err := s.repo.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("load history for %s: %w", userID, err)
	}

	entry := history.Entry{
		ID:          s.newID(),
		UserID:      userID,
		Text:        text,
		Criteria:    criteria,
		ResultCount: resultCount,
		Duration:    elapsed,
		SearchedAt:  s.now(),
	}

	entries = append([]history.Entry{entry}, entries...)
	entries = history.Trim(entries, s.cap)

	if err := s.repo.Save(ctx, userID, entries); err != nil {
		return fmt.Errorf("save history for %s: %w", userID, err)
	}
	return nil
}

// Clear drops the user's entire history.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear history for %s: %w", userID, err)
	}
	return nil
}

// List returns the user's history, most recent first.
func (s *Service) List(ctx context.Context, userID string) ([]history.Entry, error) {
	entries, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load history for %s: %w", userID, err)
	}
	return entries, nil
}

// MarkOpened records that the user opened a result of a past search. The
// opened set feeds future ranking; unknown entry ids are ignored.
func (s *Service) MarkOpened(ctx context.Context, userID, entryID, orderID string) error {
	entries, err := s.repo.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("load history for %s: %w", userID, err)
	}

	changed := false
	for i := range entries {
		if entries[i].ID != entryID {
			continue
		}
		for _, id := range entries[i].OpenedOrderIDs {
			if id == orderID {
				return nil
			}
		}
		entries[i].OpenedOrderIDs = append(entries[i].OpenedOrderIDs, orderID)
		changed = true
		break
	}
	if !changed {
		return nil
	}

	if err := s.repo.Save(ctx, userID, entries); err != nil {
		return fmt.Errorf("save history for %s: %w", userID, err)
	}
	return nil
}
