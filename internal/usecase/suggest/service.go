// Package suggest generates ranked autocomplete candidates from search
// history, catalog entities, status values, and saved filter presets.
package suggest

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/glassline/ordersearch/internal/domain/history"
	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/preset"
	"github.com/glassline/ordersearch/internal/domain/search/suggestion"
)

// MaxSuggestions caps the returned candidate list.
const MaxSuggestions = 10

// Source confidences per suggestion origin.
const (
	confHistory  = 0.8
	confSupplier = 0.9
	confStatus   = 0.7
	confPreset   = 0.6
)

// HistoryReader lists a user's past searches, most recent first.
type HistoryReader interface {
	List(ctx context.Context, userID string) ([]history.Entry, error)
}

// PresetReader lists saved filter presets readable by the user.
type PresetReader interface {
	List(ctx context.Context, userID string) ([]preset.Preset, error)
}

// CatalogStats exposes entity statistics from the order snapshot.
type CatalogStats interface {
	StatusCounts() map[order.Status]int
	SupplierNames() []string
}

// Service generates search suggestions.
type Service struct {
	historyR HistoryReader
	presets  PresetReader
	stats    CatalogStats
	logger   *zap.Logger
}

// New creates a suggestion service. Any reader may be nil; its source is
// simply skipped.
func New(historyR HistoryReader, presets PresetReader, stats CatalogStats, logger *zap.Logger) *Service {
	return &Service{historyR: historyR, presets: presets, stats: stats, logger: logger}
}

// Suggest merges candidates from all sources and ranks them by
// confidence*100 + usage frequency, descending. Source failures degrade to
// fewer suggestions, never an error.
func (s *Service) Suggest(ctx context.Context, userID, partial string) []suggestion.Suggestion {
	partial = strings.ToLower(strings.TrimSpace(partial))
	if partial == "" {
		return nil
	}

	var out []suggestion.Suggestion
	entries := s.loadHistory(ctx, userID)

	out = append(out, historySuggestions(entries, partial)...)
	out = append(out, s.supplierSuggestions(entries, partial)...)
	out = append(out, s.statusSuggestions(partial)...)
	out = append(out, s.presetSuggestions(ctx, userID, partial)...)

	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := out[i].RankWeight(), out[j].RankWeight()
		if wi != wj {
			return wi > wj
		}
		return out[i].Label() < out[j].Label()
	})

	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out
}

func (s *Service) loadHistory(ctx context.Context, userID string) []history.Entry {
	if s.historyR == nil {
		return nil
	}
	entries, err := s.historyR.List(ctx, userID)
	if err != nil {
		s.logger.Warn("load history for suggestions", zap.Error(err))
		return nil
	}
	return entries
}

// historySuggestions proposes past phrases that share a substring
// relationship with the partial input in either direction.
func historySuggestions(entries []history.Entry, partial string) []suggestion.Suggestion {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, e := range entries {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)
		if !strings.Contains(lower, partial) && !strings.Contains(partial, lower) {
			continue
		}
		counts[lower]++
		if _, ok := labels[lower]; !ok {
			labels[lower] = text
		}
	}

	out := make([]suggestion.Suggestion, 0, len(counts))
	for lower, n := range counts {
		out = append(out, suggestion.New(
			suggestion.KindTerm, labels[lower], "recent search", confHistory, float64(n),
		))
	}
	return out
}

// supplierSuggestions proposes supplier names matching the partial input,
// weighted by how often the user's history mentions them.
func (s *Service) supplierSuggestions(entries []history.Entry, partial string) []suggestion.Suggestion {
	if s.stats == nil {
		return nil
	}

	var out []suggestion.Suggestion
	for _, name := range s.stats.SupplierNames() {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, partial) {
			continue
		}
		freq := 0
		for _, e := range entries {
			if strings.Contains(strings.ToLower(e.Text), lower) {
				freq++
			}
		}
		out = append(out, suggestion.New(
			suggestion.KindValue, name, "supplier", confSupplier, float64(freq),
		))
	}
	return out
}

// statusSuggestions proposes status values matching the partial input,
// weighted by how many orders currently hold that status.
func (s *Service) statusSuggestions(partial string) []suggestion.Suggestion {
	if s.stats == nil {
		return nil
	}

	counts := s.stats.StatusCounts()
	var out []suggestion.Suggestion
	for _, st := range order.Statuses() {
		if !strings.Contains(strings.ToLower(string(st)), partial) {
			continue
		}
		out = append(out, suggestion.New(
			suggestion.KindValue, string(st), "status", confStatus, float64(counts[st]),
		))
	}
	return out
}

// presetSuggestions proposes saved filters whose name or tags match the
// partial input, weighted by their usage counter.
func (s *Service) presetSuggestions(ctx context.Context, userID, partial string) []suggestion.Suggestion {
	if s.presets == nil {
		return nil
	}
	presets, err := s.presets.List(ctx, userID)
	if err != nil {
		s.logger.Warn("load presets for suggestions", zap.Error(err))
		return nil
	}

	var out []suggestion.Suggestion
	for _, p := range presets {
		if !presetMatches(&p, partial) {
			continue
		}
		out = append(out, suggestion.New(
			suggestion.KindFilter, p.Name(), "saved filter", confPreset, float64(p.UsageCount()),
		))
	}
	return out
}

func presetMatches(p *preset.Preset, partial string) bool {
	if strings.Contains(strings.ToLower(p.Name()), partial) {
		return true
	}
	for _, tag := range p.Tags() {
		if strings.Contains(strings.ToLower(tag), partial) {
			return true
		}
	}
	return false
}
