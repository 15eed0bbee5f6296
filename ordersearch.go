// Package ordersearch embeds the purchase-order search engine into a host
// application: full-text relevance search, structured filtering, saved
// filter presets, search history, and autocomplete suggestions.
package ordersearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/catalog"
	"github.com/glassline/ordersearch/internal/db"
	dbRedis "github.com/glassline/ordersearch/internal/db/redis"
	"github.com/glassline/ordersearch/internal/domain"
	"github.com/glassline/ordersearch/internal/domain/search/request"
	historyrepo "github.com/glassline/ordersearch/internal/repository/history"
	orderrepo "github.com/glassline/ordersearch/internal/repository/order"
	presetrepo "github.com/glassline/ordersearch/internal/repository/preset"
	historyuc "github.com/glassline/ordersearch/internal/usecase/history"
	ingestuc "github.com/glassline/ordersearch/internal/usecase/ingest"
	presetuc "github.com/glassline/ordersearch/internal/usecase/preset"
	searchuc "github.com/glassline/ordersearch/internal/usecase/search"
	suggestuc "github.com/glassline/ordersearch/internal/usecase/suggest"
)

const defaultReadinessTimeout = 10 * time.Second

// Sentinel errors surfaced by the engine. Compare with errors.Is.
var (
	ErrNotFound       = domain.ErrNotFound
	ErrAlreadyExists  = domain.ErrAlreadyExists
	ErrForbidden      = domain.ErrForbidden
	ErrInvalidRequest = domain.ErrInvalidRequest

	// ErrNoStore is returned by operations that require persistence on an
	// engine created with InMemory.
	ErrNoStore = errors.New("ordersearch: no database configured")
)

// Engine is the ordersearch SDK entry point.
type Engine struct {
	store      db.Store
	cat        *catalog.Catalog
	searchSvc  *searchuc.Service
	suggestSvc *suggestuc.Service
	presetSvc  *presetuc.Service
	historySvc *historyuc.Service
	ingestSvc  *ingestuc.Service
}

// New creates an ordersearch Engine. With WithValkey or WithRedis it
// connects to the database and warms the catalog from stored orders; with
// InMemory it runs without persistence.
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{
		keyPrefix: domain.KeyPrefix,
		weights:   searchuc.DefaultWeights(),
		logger:    zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.inMemory {
		return wireInMemory(cfg), nil
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New(
			"ordersearch: database address required (use WithValkey, WithRedis or InMemory)",
		)
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("ordersearch: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("ordersearch: database not ready: %w", err)
	}

	return wireEngine(ctx, store, cfg)
}

func wireEngine(ctx context.Context, store db.Store, cfg *engineConfig) (*Engine, error) {
	presetRepo := presetrepo.New(store, cfg.keyPrefix)
	historyRepo := historyrepo.New(store, cfg.keyPrefix)
	orderRepo := orderrepo.New(store, cfg.keyPrefix)

	cat := catalog.New()
	ingestSvc := ingestuc.New(orderRepo, cat, nil, cfg.logger)
	if _, err := ingestSvc.Rebuild(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ordersearch: warm catalog: %w", err)
	}

	historySvc := historyuc.New(historyRepo, cfg.logger)
	if cfg.historyCap > 0 {
		historySvc = historySvc.WithCap(cfg.historyCap)
	}
	presetSvc := presetuc.New(presetRepo, cfg.logger)
	searchSvc := searchuc.New(cat, cat.Index(), historySvc, cfg.logger).
		WithWeights(cfg.weights)
	suggestSvc := suggestuc.New(historySvc, presetSvc, cat, cfg.logger)

	return &Engine{
		store:      store,
		cat:        cat,
		searchSvc:  searchSvc,
		suggestSvc: suggestSvc,
		presetSvc:  presetSvc,
		historySvc: historySvc,
		ingestSvc:  ingestSvc,
	}, nil
}

// wireInMemory builds an engine without persistence: searches are not
// recorded and presets are unavailable, but the full query pipeline and
// catalog-derived suggestions work.
func wireInMemory(cfg *engineConfig) *Engine {
	cat := catalog.New()
	searchSvc := searchuc.New(cat, cat.Index(), nil, cfg.logger).
		WithWeights(cfg.weights)
	suggestSvc := suggestuc.New(nil, nil, cat, cfg.logger)

	return &Engine{
		cat:        cat,
		searchSvc:  searchSvc,
		suggestSvc: suggestSvc,
	}
}

// Close releases all resources.
func (e *Engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// Ping checks database connectivity. In-memory engines always succeed.
func (e *Engine) Ping(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	if err := e.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs the full query pipeline: filter, score, rank, paginate.
// userID attributes the search in history; pass "" when untracked.
func (e *Engine) Search(ctx context.Context, userID string, q Query) (SearchResponse, error) {
	criteria, err := toInternalFilters(q.Filters)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	req := request.New(
		q.Text, criteria,
		request.SortKey(q.SortBy), request.Direction(q.Direction),
		q.Limit, q.Offset,
	)
	resp := fromSearchResponse(e.searchSvc.Search(ctx, userID, req))
	if req.Text() != "" {
		resp.Suggestions = fromSuggestions(e.suggestSvc.Suggest(ctx, userID, req.Text()))
	}
	return resp, nil
}

// Suggest returns ranked autocomplete candidates for a partial input.
func (e *Engine) Suggest(ctx context.Context, userID, partial string) []Suggestion {
	return fromSuggestions(e.suggestSvc.Suggest(ctx, userID, partial))
}

// Orders returns the order ingestion service.
func (e *Engine) Orders() *OrderService {
	return &OrderService{engine: e}
}

// Presets returns the saved filter preset service.
func (e *Engine) Presets() *PresetService {
	return &PresetService{svc: e.presetSvc}
}

// History returns the search history service.
func (e *Engine) History() *HistoryService {
	return &HistoryService{svc: e.historySvc}
}
