// Package sdk provides a Go client for the ordersearch HTTP API.
//
//	client, _ := sdk.New("http://localhost:8080",
//	    sdk.WithAPIKey("secret"),
//	    sdk.WithUserID("alice"),
//	)
//
//	resp, err := client.Search(ctx, sdk.SearchRequest{
//	    TextSearch: "tempered",
//	    Filters:    &sdk.Filters{Statuses: []string{"SENT"}},
//	})
//
// Saved filters, history, and order ingestion live on sub-clients:
//
//	presets, _ := client.Presets().List(ctx)
//	_ = client.Orders().Upsert(ctx, "o1", order)
//
// Failed calls return an *APIError; use errors.Is against the package
// sentinels (ErrNotFound, ErrForbidden, ...) to branch on the cause.
package sdk
