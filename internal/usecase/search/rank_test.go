package search

import (
	"testing"

	"github.com/glassline/ordersearch/internal/domain/order"
	"github.com/glassline/ordersearch/internal/domain/search/request"
	"github.com/glassline/ordersearch/internal/domain/search/result"
)

func rankFixture() ([]result.Result, map[string]*order.Order) {
	orders := fixtureOrders()
	byID := make(map[string]*order.Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}
	results := []result.Result{
		result.New("o1", 10, nil, nil),
		result.New("o2", 40, nil, nil),
	}
	return results, byID
}

func TestRank_RelevanceIgnoresDirection(t *testing.T) {
	for _, dir := range []request.Direction{request.Asc, request.Desc} {
		results, byID := rankFixture()
		rank(results, byID, request.SortRelevance, dir)
		if results[0].OrderID() != "o2" {
			t.Fatalf("dir=%s: expected best score first, got %s", dir, results[0].OrderID())
		}
	}
}

func TestRank_DateAscending(t *testing.T) {
	results, byID := rankFixture()
	rank(results, byID, request.SortDate, request.Asc)
	// o2 is older.
	if results[0].OrderID() != "o2" {
		t.Fatalf("expected oldest first, got %s", results[0].OrderID())
	}
}

func TestRank_AmountDescending(t *testing.T) {
	results, byID := rankFixture()
	rank(results, byID, request.SortAmount, request.Desc)
	if results[0].OrderID() != "o2" {
		t.Fatalf("expected highest amount first, got %s", results[0].OrderID())
	}
}

func TestRank_SupplierLexicographic(t *testing.T) {
	results, byID := rankFixture()
	rank(results, byID, request.SortSupplier, request.Asc)
	// "Glazing Works" < "Hardware Direct".
	if results[0].OrderID() != "o2" {
		t.Fatalf("expected Glazing Works first, got %s", results[0].OrderID())
	}
}

func TestRank_TiesBreakOnID(t *testing.T) {
	byID := map[string]*order.Order{
		"b": {ID: "b"},
		"a": {ID: "a"},
	}
	results := []result.Result{
		result.New("b", 5, nil, nil),
		result.New("a", 5, nil, nil),
	}
	rank(results, byID, request.SortRelevance, request.Desc)
	if results[0].OrderID() != "a" {
		t.Fatalf("expected id tiebreak, got %s", results[0].OrderID())
	}
}

func TestPaginate_TotalPreserving(t *testing.T) {
	results := []result.Result{
		result.New("a", 4, nil, nil),
		result.New("b", 3, nil, nil),
		result.New("c", 2, nil, nil),
		result.New("d", 1, nil, nil),
		result.New("e", 0.5, nil, nil),
	}

	var all []string
	for offset := 0; ; offset += 2 {
		page, total := paginate(results, 2, offset)
		if total != 5 {
			t.Fatalf("totalCount = %d, want 5", total)
		}
		if len(page) == 0 {
			break
		}
		for i := range page {
			all = append(all, page[i].OrderID())
		}
	}

	want := []string{"a", "b", "c", "d", "e"}
	if len(all) != len(want) {
		t.Fatalf("concatenated pages = %v, want %v", all, want)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Fatalf("concatenated pages = %v, want %v", all, want)
		}
	}
}

func TestPaginate_OffsetBeyondLength(t *testing.T) {
	page, total := paginate([]result.Result{result.New("a", 1, nil, nil)}, 10, 99)
	if len(page) != 0 || total != 1 {
		t.Fatalf("expected empty page with total 1, got %v/%d", page, total)
	}
}
