package search

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/result"
	"github.com/glassline/ordersearch/internal/domain/search/token"
)

func scoreOne(o order.Order, phrase string) (float64, []result.MatchReason, []string) {
	return score(&o, phrase, token.Tokenize(phrase), fixedNow, DefaultWeights())
}

func findReason(reasons []result.MatchReason, field string) *result.MatchReason {
	for i := range reasons {
		if reasons[i].Field == field {
			return &reasons[i]
		}
	}
	return nil
}

func TestScore_ExactFieldMatch(t *testing.T) {
	o := order.Order{
		ID:        "o1",
		Number:    "PO-2024-001",
		CreatedAt: fixedNow.AddDate(0, -6, 0), // outside recency window
	}

	sc, reasons, _ := scoreOne(o, "po-2024-001")

	// number exact: 10*2; tokens po/2024/001 each substring: 3 * 10*0.5.
	want := 10*2.0 + 3*10*0.5
	if math.Abs(sc-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", sc, want)
	}

	r := findReason(reasons, "number")
	if r == nil {
		t.Fatal("expected a match reason for number")
	}
	if r.Tier != result.TierExact || r.Confidence != 1.0 {
		t.Fatalf("expected EXACT/1.0, got %s/%v", r.Tier, r.Confidence)
	}
	if r.Highlighted != "<em>PO-2024-001</em>" {
		t.Fatalf("unexpected highlight: %q", r.Highlighted)
	}
}

func TestScore_PrefixMatchWithUrgentAndRecencyBoosts(t *testing.T) {
	o := urgentHardwareOrder()

	sc, reasons, _ := scoreOne(o, "hardware")

	// supplierName prefix: 8*1.5; token substring: 8*0.5; boosts 1.2 and 1.3.
	want := (8*1.5 + 8*0.5) * 1.2 * 1.3
	if math.Abs(sc-want) > 1e-9 {
		t.Fatalf("score = %v, want %v", sc, want)
	}

	r := findReason(reasons, "supplierName")
	if r == nil {
		t.Fatal("expected a match reason for supplierName")
	}
	if r.Tier != result.TierPartial || r.Confidence != 0.8 {
		t.Fatalf("expected PARTIAL/0.8, got %s/%v", r.Tier, r.Confidence)
	}
	if r.Highlighted != "<em>Hardware</em> Direct" {
		t.Fatalf("unexpected highlight: %q", r.Highlighted)
	}
}

func TestScore_SubstringTierConfidence(t *testing.T) {
	o := order.Order{
		ID:        "o1",
		Notes:     "call Hardware Direct before delivery",
		CreatedAt: fixedNow.AddDate(-1, 0, 0),
	}

	_, reasons, snippets := scoreOne(o, "direct")

	r := findReason(reasons, "notes")
	if r == nil {
		t.Fatal("expected a match reason for notes")
	}
	if r.Tier != result.TierPartial || r.Confidence != 0.6 {
		t.Fatalf("expected PARTIAL/0.6, got %s/%v", r.Tier, r.Confidence)
	}
	if len(snippets) == 0 || !strings.Contains(snippets[0], "Direct") {
		t.Fatalf("expected snippet around match, got %v", snippets)
	}
}

func TestScore_NoMatchIsZero(t *testing.T) {
	o := urgentHardwareOrder()
	sc, reasons, snippets := scoreOne(o, "aluminium")
	if sc != 0 || reasons != nil || snippets != nil {
		t.Fatalf("expected zero score, got %v %v %v", sc, reasons, snippets)
	}
}

func TestScore_ClampedAt100(t *testing.T) {
	o := order.Order{
		ID:           "o1",
		Number:       "pane",
		Supplier:     order.Supplier{Name: "pane", Code: "pane"},
		ExternalRef:  "pane",
		CustomerRef:  "pane",
		Instructions: "pane",
		Notes:        "pane",
		Priority:     order.PriorityUrgent,
		CreatedAt:    fixedNow,
		LineItems:    []order.LineItem{{Description: "pane"}},
	}

	sc, _, _ := scoreOne(o, "pane")
	if sc != 100 {
		t.Fatalf("expected clamp to 100, got %v", sc)
	}
}

func TestScore_RecencyWindowBoundary(t *testing.T) {
	inside := order.Order{ID: "a", Notes: "spacer bars", CreatedAt: fixedNow.Add(-29 * 24 * time.Hour)}
	outside := order.Order{ID: "b", Notes: "spacer bars", CreatedAt: fixedNow.Add(-31 * 24 * time.Hour)}

	scIn, _, _ := scoreOne(inside, "spacer")
	scOut, _, _ := scoreOne(outside, "spacer")

	if math.Abs(scIn-scOut*1.2) > 1e-9 {
		t.Fatalf("expected 1.2x recency boost: inside=%v outside=%v", scIn, scOut)
	}
}

func TestSnippet_TruncationAndEllipses(t *testing.T) {
	long := strings.Repeat("x", 80) + "MATCH" + strings.Repeat("y", 80)
	got := snippet(long, 80, 5)

	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipses on both sides: %q", got)
	}
	if !strings.Contains(got, "MATCH") {
		t.Fatalf("snippet lost the match: %q", got)
	}
	if len(got) > 150+6 {
		t.Fatalf("snippet too long: %d", len(got))
	}
}

func TestSnippet_ShortTextUntouched(t *testing.T) {
	if got := snippet("short text", 0, 5); got != "short text" {
		t.Fatalf("unexpected snippet: %q", got)
	}
}
