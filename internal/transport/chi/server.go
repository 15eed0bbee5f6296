// Package chi exposes the search engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/domain"
	domhistory "github.com/glassline/ordersearch/internal/domain/history"
	"github.com/glassline/ordersearch/internal/domain/order"
	dompreset "github.com/glassline/ordersearch/internal/domain/preset"
	"github.com/glassline/ordersearch/internal/domain/search/filter"
	"github.com/glassline/ordersearch/internal/domain/search/request"
	"github.com/glassline/ordersearch/internal/domain/search/suggestion"
	"github.com/glassline/ordersearch/internal/logger"
	"github.com/glassline/ordersearch/internal/metrics"
	healthuc "github.com/glassline/ordersearch/internal/usecase/health"
	searchuc "github.com/glassline/ordersearch/internal/usecase/search"
)

// Searcher executes search queries.
type Searcher interface {
	Search(ctx context.Context, userID string, req request.Request) searchuc.Response
}

// Suggester generates autocomplete candidates.
type Suggester interface {
	Suggest(ctx context.Context, userID, partial string) []suggestion.Suggestion
}

// PresetManager manages saved filter presets.
type PresetManager interface {
	Save(ctx context.Context, userID, name string, visibility dompreset.Visibility,
		criteria filter.Criteria, tags []string) (dompreset.Preset, error)
	Get(ctx context.Context, userID, id string) (dompreset.Preset, error)
	List(ctx context.Context, userID string) ([]dompreset.Preset, error)
	Update(ctx context.Context, userID, id string, change dompreset.Change) (dompreset.Preset, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
	Apply(ctx context.Context, userID, id string) (filter.Criteria, error)
}

// HistoryManager reads and maintains per-user search history.
type HistoryManager interface {
	List(ctx context.Context, userID string) ([]domhistory.Entry, error)
	MarkOpened(ctx context.Context, userID, entryID, orderID string) error
	Clear(ctx context.Context, userID string) error
}

// Ingester applies order snapshot mutations.
type Ingester interface {
	Upsert(ctx context.Context, o order.Order) error
	Remove(ctx context.Context, id string) (bool, error)
	Rebuild(ctx context.Context) (int, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API surface.
type Server struct {
	search        Searcher
	suggest       Suggester
	presets       PresetManager
	history       HistoryManager
	ingest        Ingester
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search Searcher,
	suggest Suggester,
	presets PresetManager,
	history HistoryManager,
	ingest Ingester,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		suggest: suggest,
		presets: presets,
		history: history,
		ingest:  ingest,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, codeAlreadyExists),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, codeForbidden),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Routes mounts every API route on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Route("/v1", func(r chirouter.Router) {
		r.Post("/search", s.Search)
		r.Get("/suggestions", s.Suggestions)

		r.Route("/filters", func(r chirouter.Router) {
			r.Get("/", s.ListPresets)
			r.Post("/", s.CreatePreset)
			r.Get("/{id}", s.GetPreset)
			r.Patch("/{id}", s.UpdatePreset)
			r.Delete("/{id}", s.DeletePreset)
			r.Post("/{id}/apply", s.ApplyPreset)
		})

		r.Route("/history", func(r chirouter.Router) {
			r.Get("/", s.ListHistory)
			r.Delete("/", s.ClearHistory)
			r.Post("/{id}/opened", s.MarkOpened)
		})

		r.Put("/orders/{id}", s.UpsertOrder)
		r.Delete("/orders/{id}", s.DeleteOrder)
		r.Post("/index/rebuild", s.RebuildIndex)
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var dto searchRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	criteria, err := criteriaFromDTO(dto.Filters)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	req := request.New(
		dto.TextSearch, criteria,
		request.SortKey(dto.SortBy), request.Direction(dto.SortDirection),
		dto.Limit, dto.Offset,
	)

	user := userID(r)
	resp := s.search.Search(r.Context(), user, req)

	mode := "filter"
	if req.Text() != "" {
		mode = "text"
	}
	metrics.SearchesTotal.WithLabelValues(mode).Inc()
	metrics.SearchDuration.Observe(resp.Duration.Seconds())
	metrics.SearchResultsTotal.Observe(float64(resp.TotalCount))

	out := searchResponseDTO{
		Results:        make([]resultDTO, len(resp.Results)),
		TotalCount:     resp.TotalCount,
		DurationMillis: resp.Duration.Milliseconds(),
		AppliedFilters: resp.AppliedFilters,
	}
	for i := range resp.Results {
		out.Results[i] = resultToDTO(&resp.Results[i])
	}

	// Text searches carry refinement suggestions for the same phrase so
	// the client can offer alternatives alongside the results.
	if req.Text() != "" && s.suggest != nil {
		out.Suggestions = suggestionsToDTO(s.suggest.Suggest(r.Context(), user, req.Text()))
	}

	writeJSON(w, http.StatusOK, out)
}

// Suggestions handles GET /v1/suggestions.
func (s *Server) Suggestions(w http.ResponseWriter, r *http.Request) {
	partial := r.URL.Query().Get("q")

	ss := s.suggest.Suggest(r.Context(), userID(r), partial)
	metrics.SuggestionsReturned.Observe(float64(len(ss)))

	writeJSON(w, http.StatusOK, suggestionsResponseDTO{
		Suggestions: suggestionsToDTO(ss),
	})
}

// CreatePreset handles POST /v1/filters.
func (s *Server) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var dto presetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if dto.Name == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "Preset name is required")
		return
	}

	criteria, err := criteriaFromDTO(dto.Criteria)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	p, err := s.presets.Save(r.Context(), userID(r), dto.Name,
		dompreset.Visibility(dto.Visibility), criteria, dto.Tags)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, presetToDTO(&p))
}

// ListPresets handles GET /v1/filters.
func (s *Server) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.presets.List(r.Context(), userID(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]presetResponseDTO, len(presets))
	for i := range presets {
		items[i] = presetToDTO(&presets[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// GetPreset handles GET /v1/filters/{id}.
func (s *Server) GetPreset(w http.ResponseWriter, r *http.Request) {
	p, err := s.presets.Get(r.Context(), userID(r), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presetToDTO(&p))
}

// UpdatePreset handles PATCH /v1/filters/{id}.
func (s *Server) UpdatePreset(w http.ResponseWriter, r *http.Request) {
	var dto presetPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	change := dompreset.Change{Name: dto.Name, Tags: dto.Tags}
	if dto.Visibility != nil {
		v := dompreset.Visibility(*dto.Visibility)
		change.Visibility = &v
	}
	if dto.Criteria != nil {
		criteria, err := criteriaFromDTO(dto.Criteria)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		change.Criteria = &criteria
	}

	p, err := s.presets.Update(r.Context(), userID(r), chirouter.URLParam(r, "id"), change)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presetToDTO(&p))
}

// DeletePreset handles DELETE /v1/filters/{id}.
func (s *Server) DeletePreset(w http.ResponseWriter, r *http.Request) {
	removed, err := s.presets.Delete(r.Context(), userID(r), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, codeNotFound, "preset not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyPreset handles POST /v1/filters/{id}/apply.
func (s *Server) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	criteria, err := s.presets.Apply(r.Context(), userID(r), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, applyResponseDTO{Criteria: criteriaToDTO(criteria)})
}

// ListHistory handles GET /v1/history.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.List(r.Context(), userID(r))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out := historyResponseDTO{Entries: make([]historyEntryDTO, len(entries))}
	for i := range entries {
		out.Entries[i] = historyEntryToDTO(&entries[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// ClearHistory handles DELETE /v1/history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context(), userID(r)); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkOpened handles POST /v1/history/{id}/opened.
func (s *Server) MarkOpened(w http.ResponseWriter, r *http.Request) {
	var dto struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if dto.OrderID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "order_id is required")
		return
	}

	err := s.history.MarkOpened(r.Context(), userID(r), chirouter.URLParam(r, "id"), dto.OrderID)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpsertOrder handles PUT /v1/orders/{id}.
func (s *Server) UpsertOrder(w http.ResponseWriter, r *http.Request) {
	var dto orderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	o := orderFromDTO(chirouter.URLParam(r, "id"), dto)
	if err := s.ingest.Upsert(r.Context(), o); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteOrder handles DELETE /v1/orders/{id}.
func (s *Server) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	removed, err := s.ingest.Remove(r.Context(), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, codeNotFound, "order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RebuildIndex handles POST /v1/index/rebuild.
func (s *Server) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	n, err := s.ingest.Rebuild(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rebuildResponseDTO{IndexedOrders: n})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// userID resolves the caller identity. Authn proper is the deployment's
// concern; the asserted header scopes presets and history per user.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "anonymous"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrForbidden,
		domain.ErrInvalidRequest,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
