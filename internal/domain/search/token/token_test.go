package token

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize_LowercasesAndStripsPunctuation(t *testing.T) {
	got := Tokenize("PO-2024-001: Tempered PANE, 6mm!")
	want := []string{"po", "2024", "001", "tempered", "pane", "6mm"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenize_DropsShortAndStopWords(t *testing.T) {
	got := Tokenize("the order of a product x supplier")
	if got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTokenize_KeepsDuplicates(t *testing.T) {
	got := Tokenize("pane pane pane")
	if len(got) != 3 {
		t.Fatalf("expected 3 tokens, got %v", got)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if got := Tokenize(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := Tokenize("  ...  "); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTokenize_Idempotent(t *testing.T) {
	first := Tokenize("Hardware Direct: 12x laminated panes, REF/884-A")
	second := Tokenize(strings.Join(first, " "))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("retokenizing changed output: %v vs %v", first, second)
	}
}

func TestIsStopWord(t *testing.T) {
	if !IsStopWord("order") {
		t.Error("expected order to be a stop word")
	}
	if IsStopWord("pane") {
		t.Error("pane must not be a stop word")
	}
}
