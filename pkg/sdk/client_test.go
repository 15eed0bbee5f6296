package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestSearch_SendsAuthAndUser(t *testing.T) {
	var gotAuth, gotUser, gotPath string
	var gotReq SearchRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUser = r.Header.Get("X-User-ID")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		_ = json.NewEncoder(w).Encode(SearchResponse{
			Results:    []Result{{OrderID: "o1", Score: 35}},
			TotalCount: 1,
		})
	}, WithAPIKey("secret"), WithUserID("alice"))

	resp, err := client.Search(context.Background(), SearchRequest{TextSearch: "tempered", Limit: 5})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotAuth != "Bearer secret" || gotUser != "alice" {
		t.Errorf("headers = %q, %q", gotAuth, gotUser)
	}
	if gotPath != "/v1/search" {
		t.Errorf("path = %q", gotPath)
	}
	if gotReq.TextSearch != "tempered" || gotReq.Limit != 5 {
		t.Errorf("request = %+v", gotReq)
	}
	if resp.TotalCount != 1 || resp.Results[0].OrderID != "o1" {
		t.Errorf("response = %+v", resp)
	}
}

func TestSuggest_EncodesQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "hard & fast" {
			t.Errorf("q = %q", got)
		}
		_ = json.NewEncoder(w).Encode(suggestionsResponse{
			Suggestions: []Suggestion{{Kind: "value", Label: "Hardware Direct"}},
		})
	})

	got, err := client.Suggest(context.Background(), "hard & fast")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0].Label != "Hardware Direct" {
		t.Fatalf("suggestions = %+v", got)
	}
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		code   string
		want   error
	}{
		{"not found", http.StatusNotFound, "not_found", ErrNotFound},
		{"conflict", http.StatusConflict, "already_exists", ErrAlreadyExists},
		{"forbidden", http.StatusForbidden, "forbidden", ErrForbidden},
		{"validation", http.StatusBadRequest, "validation_failed", ErrInvalidRequest},
		{"unauthorized", http.StatusUnauthorized, "bad_request", ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    tc.code,
					"message": "nope",
				})
			})

			_, err := client.Presets().Get(context.Background(), "p1")
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Message != "nope" {
				t.Fatalf("apiErr = %+v", apiErr)
			}
		})
	}
}

func TestPresets_CreateAndApply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /v1/filters":
			var req PresetRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(Preset{ID: "p1", Name: req.Name})
		case "POST /v1/filters/p1/apply":
			_ = json.NewEncoder(w).Encode(applyResponse{
				Criteria: Filters{Statuses: []string{"SENT"}},
			})
		default:
			t.Errorf("unexpected call: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	created, err := client.Presets().Create(ctx, PresetRequest{Name: "Urgent glass"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "p1" || created.Name != "Urgent glass" {
		t.Fatalf("created = %+v", created)
	}

	filters, err := client.Presets().Apply(ctx, "p1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(filters.Statuses) != 1 || filters.Statuses[0] != "SENT" {
		t.Fatalf("filters = %+v", filters)
	}
}

func TestHistory_MarkOpened(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/history/e1/opened" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["order_id"] != "o1" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.History().MarkOpened(context.Background(), "e1", "o1"); err != nil {
		t.Fatalf("MarkOpened: %v", err)
	}
}

func TestOrders_RebuildIndex(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/index/rebuild" {
			t.Errorf("call = %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(rebuildResponse{IndexedOrders: 42})
	})

	n, err := client.Orders().RebuildIndex(context.Background())
	if err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	if n != 42 {
		t.Fatalf("indexed = %d, want 42", n)
	}
}

func TestHealth_Degraded(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthReport{
			Status: "degraded",
			Checks: map[string]string{"database": "error"},
		})
	})

	report, err := client.Health(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if report.Status != "degraded" || report.Checks["database"] != "error" {
		t.Fatalf("report = %+v", report)
	}
}

func TestObserver_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(SearchResponse{})
	}, WithPrometheus(reg))

	if _, err := client.Search(context.Background(), SearchRequest{}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "ordersearch_client_operations_total" {
			found = true
			if n := f.GetMetric()[0].GetCounter().GetValue(); n != 1 {
				t.Errorf("operations counter = %g, want 1", n)
			}
		}
	}
	if !found {
		t.Fatal("operations metric not registered")
	}
}
