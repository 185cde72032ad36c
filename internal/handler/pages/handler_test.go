package pages

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/oguzkopan/teletext-sub000/internal/adapter"
	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
	"github.com/oguzkopan/teletext-sub000/internal/store"
)

type countingAdapter struct {
	inner route.Adapter
	calls int
}

func (c *countingAdapter) Name() string { return c.inner.Name() }

func (c *countingAdapter) Render(ctx context.Context, req route.Request) ([]page.GridPage, error) {
	c.calls++
	return c.inner.Render(ctx, req)
}

func setupRouter(cache *store.PageCache) (*chi.Mux, *countingAdapter) {
	system := &countingAdapter{inner: adapter.NewSystem()}
	pageRouter := route.NewRouter(system)
	pageRouter.Register(2, adapter.NewNews(nil, ""))
	pageRouter.Register(6, adapter.NewGames(store.NewSessions()))

	handler := New(pageRouter, cache)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, system
}

func getPage(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGetPage(t *testing.T) {
	r, _ := setupRouter(nil)
	resp := getPage(t, r, "/page/100")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Success bool          `json:"success"`
		Page    page.GridPage `json:"page"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Success || body.Page.ID != "100" {
		t.Fatalf("unexpected body: success=%v id=%s", body.Success, body.Page.ID)
	}
	if len(body.Page.Rows) != page.Rows {
		t.Fatalf("expected %d rows, got %d", page.Rows, len(body.Page.Rows))
	}
}

func TestGetPageAdditionalPages(t *testing.T) {
	r, _ := setupRouter(nil)
	resp := getPage(t, r, "/page/201")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Page            page.GridPage   `json:"page"`
		AdditionalPages []page.GridPage `json:"additionalPages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Page.ID != "201-1" {
		t.Fatalf("expected first sub-page, got %s", body.Page.ID)
	}
}

func TestGetPageStatusMapping(t *testing.T) {
	r, _ := setupRouter(nil)

	for _, tc := range []struct {
		target string
		status int
		code   string
	}{
		{"/page/abc", http.StatusBadRequest, "INVALID_PAGE"},
		{"/page/099", http.StatusBadRequest, "INVALID_PAGE"},
		{"/page/150", http.StatusNotFound, "PAGE_NOT_FOUND"},
		{"/page/700", http.StatusInternalServerError, "ADAPTER_ERROR"},
	} {
		resp := getPage(t, r, tc.target)
		if resp.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.target, tc.status, resp.Code)
		}
		var body struct {
			Success bool   `json:"success"`
			Code    string `json:"code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decoding response: %v", tc.target, err)
		}
		if body.Success || body.Code != tc.code {
			t.Fatalf("%s: expected code %s, got success=%v code=%s",
				tc.target, tc.code, body.Success, body.Code)
		}
	}
}

func TestGetPageUsesCache(t *testing.T) {
	cache := store.NewPageCache()
	r, system := setupRouter(cache)

	getPage(t, r, "/page/100")
	getPage(t, r, "/page/100")
	if system.calls != 1 {
		t.Fatalf("second read should hit the cache, adapter called %d times", system.calls)
	}

	// Parameterised reads bypass the cache and reach the adapter again.
	getPage(t, r, "/page/100?x=1")
	if system.calls != 2 {
		t.Fatalf("parameterised read must bypass the cache, adapter called %d times", system.calls)
	}
}

func TestPostPageRequiresTextInput(t *testing.T) {
	r, _ := setupRouter(nil)

	payload, _ := json.Marshal(map[string]string{"contextId": "abc"})
	req := httptest.NewRequest(http.MethodPost, "/page/516", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
