package public

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/autoparts-enquiry/internal/config"
	"github.com/autoparts-enquiry/internal/repository"
	"github.com/autoparts-enquiry/internal/service"
)

type searchPayload struct {
	Query string `json:"query"`
	Total int    `json:"total"`
	Items []struct {
		ID uint `json:"id"`
	} `json:"items"`
}

func TestSearchProductsQueryParsing(t *testing.T) {
	h, db := setupCartHandler(t)
	h.SearchService = service.NewSearchService(repository.NewProductRepository(db), config.SearchConfig{})
	pad := seedCartProduct(t, db, "ceramic-pad", 3)
	seedCartProduct(t, db, "sold-out-pad", 0)

	cases := []struct {
		name      string
		query     string
		wantCode  int
		wantTotal int
	}{
		{name: "term only", query: "?q=brake", wantCode: 0, wantTotal: 2},
		{name: "in stock", query: "?q=brake&in_stock=true", wantCode: 0, wantTotal: 1},
		{name: "unknown category", query: "?q=brake&category_id=999", wantCode: 0, wantTotal: 0},
		{name: "price window", query: "?q=brake&min_price=1000.50&max_price=2000", wantCode: 0, wantTotal: 2},
		{name: "negative limit falls back", query: "?q=brake&limit=-3", wantCode: 0, wantTotal: 2},
		{name: "bad min price", query: "?q=brake&min_price=abc", wantCode: 400},
		{name: "bad max price", query: "?q=brake&max_price=1,000", wantCode: 400},
		{name: "bad limit", query: "?q=brake&limit=ten", wantCode: 400},
		{name: "fractional limit", query: "?q=brake&limit=2.5", wantCode: 400},
		{name: "bad category", query: "?q=brake&category_id=-1", wantCode: 400},
		{name: "bad in stock", query: "?q=brake&in_stock=maybe", wantCode: 400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, env := performCartRequest(h.SearchProducts, http.MethodGet, "/api/v1/public/search"+tc.query, "", "search-session")
			if env.StatusCode != tc.wantCode {
				t.Fatalf("want status_code %d got %+v", tc.wantCode, env)
			}
			if tc.wantCode != 0 {
				return
			}
			var payload searchPayload
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				t.Fatalf("decode search payload failed: %v", err)
			}
			if payload.Total != tc.wantTotal || len(payload.Items) != tc.wantTotal {
				t.Fatalf("want %d results got %+v", tc.wantTotal, payload)
			}
			if tc.name == "in stock" && payload.Items[0].ID != pad.ID {
				t.Fatalf("in stock filter should keep %d, got %d", pad.ID, payload.Items[0].ID)
			}
		})
	}
}
