package search

import (
	"strings"
	"time"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/result"
)

// Weights holds the tunable scoring constants. The defaults encode the
// field importance ordering number > supplier name > refs > free text; the
// exact values are tuning knobs, not invariants.
type Weights struct {
	Number       float64 `yaml:"number"`
	SupplierName float64 `yaml:"supplier_name"`
	SupplierCode float64 `yaml:"supplier_code"`
	ExternalRef  float64 `yaml:"external_ref"`
	CustomerRef  float64 `yaml:"customer_ref"`
	Instructions float64 `yaml:"instructions"`
	Notes        float64 `yaml:"notes"`
	LineItems    float64 `yaml:"line_items"`

	ExactMultiplier  float64 `yaml:"exact_multiplier"`
	PrefixMultiplier float64 `yaml:"prefix_multiplier"`
	TokenMultiplier  float64 `yaml:"token_multiplier"`
	RecencyBoost     float64 `yaml:"recency_boost"`
	UrgentBoost      float64 `yaml:"urgent_boost"`

	RecencyWindowDays int `yaml:"recency_window_days"`
}

// DefaultWeights returns the default scoring constants.
func DefaultWeights() Weights {
	return Weights{
		Number:            10,
		SupplierName:      8,
		SupplierCode:      6,
		ExternalRef:       7,
		CustomerRef:       5,
		Instructions:      3,
		Notes:             2,
		LineItems:         4,
		ExactMultiplier:   2.0,
		PrefixMultiplier:  1.5,
		TokenMultiplier:   0.5,
		RecencyBoost:      1.2,
		UrgentBoost:       1.3,
		RecencyWindowDays: 30,
	}
}

// maxScore is the clamp ceiling for relevance scores.
const maxScore = 100

// Match-tier confidences.
const (
	confExact     = 1.0
	confPrefix    = 0.8
	confSubstring = 0.6
)

// snippet extraction constants: up to 150 chars, 50 of context per side.
const snippetContext = 50

type scoredField struct {
	name   string
	text   string
	weight float64
}

func fieldsOf(o *order.Order, w Weights) []scoredField {
	return []scoredField{
		{"number", o.Number, w.Number},
		{"supplierName", o.Supplier.Name, w.SupplierName},
		{"supplierCode", o.Supplier.Code, w.SupplierCode},
		{"externalRef", o.ExternalRef, w.ExternalRef},
		{"customerRef", o.CustomerRef, w.CustomerRef},
		{"instructions", o.Instructions, w.Instructions},
		{"notes", o.Notes, w.Notes},
		{"lineItems", o.LineItemText(), w.LineItems},
	}
}

// score computes the weighted relevance of an order against a phrase.
// The phrase competes per field at a single tier (exact > prefix >
// substring); tokenized terms add on top regardless of the phrase tier.
// A zero score means the order does not match at all.
func score(
	o *order.Order, phrase string, tokens []string, now time.Time, w Weights,
) (float64, []result.MatchReason, []string) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return 0, nil, nil
	}

	var total float64
	var reasons []result.MatchReason
	var snippets []string

	for _, f := range fieldsOf(o, w) {
		if f.text == "" {
			continue
		}
		lower := strings.ToLower(f.text)

		switch {
		case lower == phrase:
			total += f.weight * w.ExactMultiplier
			reasons = append(reasons, result.MatchReason{
				Field:       f.name,
				Tier:        result.TierExact,
				Confidence:  confExact,
				Highlighted: highlight(f.text, 0, len(f.text)),
			})
		case strings.HasPrefix(lower, phrase):
			total += f.weight * w.PrefixMultiplier
			reasons = append(reasons, result.MatchReason{
				Field:       f.name,
				Tier:        result.TierPartial,
				Confidence:  confPrefix,
				Highlighted: highlight(f.text, 0, len(phrase)),
			})
			snippets = append(snippets, snippet(f.text, 0, len(phrase)))
		default:
			if at := strings.Index(lower, phrase); at >= 0 {
				total += f.weight
				reasons = append(reasons, result.MatchReason{
					Field:       f.name,
					Tier:        result.TierPartial,
					Confidence:  confSubstring,
					Highlighted: highlight(f.text, at, len(phrase)),
				})
				snippets = append(snippets, snippet(f.text, at, len(phrase)))
			}
		}

		// Token-level matches add on top of the phrase tier.
		for _, t := range tokens {
			if strings.Contains(lower, t) {
				total += f.weight * w.TokenMultiplier
			}
		}
	}

	if total == 0 {
		return 0, nil, nil
	}

	recencyWindow := time.Duration(w.RecencyWindowDays) * 24 * time.Hour
	if now.Sub(o.CreatedAt) <= recencyWindow {
		total *= w.RecencyBoost
	}
	if o.Priority == order.PriorityUrgent {
		total *= w.UrgentBoost
	}
	if total > maxScore {
		total = maxScore
	}

	return total, reasons, snippets
}

// highlight wraps the matched span of the original-cased text in <em> tags.
func highlight(text string, at, length int) string {
	end := at + length
	if at < 0 || end > len(text) {
		return text
	}
	return text[:at] + "<em>" + text[at:end] + "</em>" + text[end:]
}

// snippet extracts up to 150 chars centered on the match, with ellipses
// marking truncation on either side.
func snippet(text string, at, length int) string {
	start := at - snippetContext
	end := at + length + snippetContext
	prefix, suffix := "", ""
	if start > 0 {
		prefix = "..."
	} else {
		start = 0
	}
	if end < len(text) {
		suffix = "..."
	} else {
		end = len(text)
	}
	return prefix + text[start:end] + suffix
}
