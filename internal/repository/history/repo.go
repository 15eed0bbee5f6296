// Package history persists per-user search history as a single JSON blob.
// The list is small (bounded by the retention cap) so a whole-list
// read-modify-write keeps the storage model trivial.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glassline/ordersearch/internal/db"
	"github.com/glassline/ordersearch/internal/domain"
	domhistory "github.com/glassline/ordersearch/internal/domain/history"
	"github.com/glassline/ordersearch/internal/repository/criteriajson"
)

// store is the consumer interface for history persistence.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/history.Repository.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a history repository.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = domain.KeyPrefix
	}
	return &Repo{store: s, keyPrefix: keyPrefix}
}

type entryRow struct {
	ID             string          `json:"id"`
	Text           string          `json:"text,omitempty"`
	Criteria       json.RawMessage `json:"criteria,omitempty"`
	ResultCount    int             `json:"result_count"`
	DurationMillis int64           `json:"duration_ms"`
	OpenedOrderIDs []string        `json:"opened_order_ids,omitempty"`
	SearchedAt     time.Time       `json:"searched_at"`
}

// Load returns the user's history, newest-first as stored. A missing key
// means the user has no history yet.
func (r *Repo) Load(ctx context.Context, userID string) ([]domhistory.Entry, error) {
	data, err := r.store.Get(ctx, r.key(userID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []domhistory.Entry{}, nil
		}
		return nil, fmt.Errorf("get history %s: %w", userID, err)
	}

	var rows []entryRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal history %s: %w", userID, err)
	}

	entries := make([]domhistory.Entry, 0, len(rows))
	for _, row := range rows {
		criteria, err := criteriajson.Decode(row.Criteria)
		if err != nil {
			return nil, fmt.Errorf("decode history criteria %s: %w", userID, err)
		}
		entries = append(entries, domhistory.Entry{
			ID:             row.ID,
			UserID:         userID,
			Text:           row.Text,
			Criteria:       criteria,
			ResultCount:    row.ResultCount,
			Duration:       time.Duration(row.DurationMillis) * time.Millisecond,
			OpenedOrderIDs: row.OpenedOrderIDs,
			SearchedAt:     row.SearchedAt,
		})
	}
	return entries, nil
}

// Save overwrites the user's history list.
func (r *Repo) Save(ctx context.Context, userID string, entries []domhistory.Entry) error {
	rows := make([]entryRow, 0, len(entries))
	for _, e := range entries {
		criteria, err := criteriajson.Encode(e.Criteria)
		if err != nil {
			return fmt.Errorf("encode history criteria %s: %w", userID, err)
		}
		rows = append(rows, entryRow{
			ID:             e.ID,
			Text:           e.Text,
			Criteria:       criteria,
			ResultCount:    e.ResultCount,
			DurationMillis: e.Duration.Milliseconds(),
			OpenedOrderIDs: e.OpenedOrderIDs,
			SearchedAt:     e.SearchedAt,
		})
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal history %s: %w", userID, err)
	}
	if err := r.store.Set(ctx, r.key(userID), data); err != nil {
		return fmt.Errorf("set history %s: %w", userID, err)
	}
	return nil
}

// Clear drops the user's history.
func (r *Repo) Clear(ctx context.Context, userID string) error {
	if err := r.store.Del(ctx, r.key(userID)); err != nil {
		return fmt.Errorf("del history %s: %w", userID, err)
	}
	return nil
}

func (r *Repo) key(userID string) string {
	return r.keyPrefix + "history:" + userID
}
