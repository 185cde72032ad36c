// Package pages serves the grid navigation surface: fetching a page by
// ID and sending free-text input to pages that accept it.
package pages

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/oguzkopan/teletext-sub000/internal/model/page"
	"github.com/oguzkopan/teletext-sub000/internal/route"
	"github.com/oguzkopan/teletext-sub000/internal/store"
	"github.com/oguzkopan/teletext-sub000/pkg/utils"
)

// Handler resolves page requests through the routing table.
type Handler struct {
	router *route.Router
	cache  *store.PageCache
}

// New creates the page handler. cache may be nil to disable page caching.
func New(router *route.Router, cache *store.PageCache) *Handler {
	return &Handler{router: router, cache: cache}
}

// RegisterRoutes wires the page endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/page/{id}", h.handleGet)
	r.Post("/page/{id}", h.handlePost)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	query := flatten(r.URL.Query())

	if h.cacheable(raw, query) {
		if p, ok := h.cache.Get(raw); ok {
			respondPages(w, []page.GridPage{p})
			return
		}
	}

	adapter, id, err := h.router.Resolve(raw)
	if err != nil {
		respondRouteError(w, err)
		return
	}

	pages, err := adapter.Render(r.Context(), route.Request{Page: id, Query: query})
	if err != nil {
		log.Printf("[pages] %s render %s: %v", adapter.Name(), raw, err)
		respondRouteError(w, err)
		return
	}

	if h.cacheable(raw, query) && len(pages) == 1 && pages[0].ID == raw {
		h.cache.Put(pages[0])
	}
	respondPages(w, pages)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")

	var payload struct {
		TextInput string `json:"textInput"`
		ContextID string `json:"contextId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest,
			string(route.CodeInvalidPage), "invalid request body")
		return
	}
	if payload.TextInput == "" {
		utils.RespondError(w, http.StatusBadRequest,
			string(route.CodeInvalidPage), "textInput is required")
		return
	}

	adapter, id, err := h.router.Resolve(raw)
	if err != nil {
		respondRouteError(w, err)
		return
	}

	pages, err := adapter.Render(r.Context(), route.Request{
		Page:      id,
		Query:     flatten(r.URL.Query()),
		TextInput: payload.TextInput,
		ContextID: payload.ContextID,
	})
	if err != nil {
		log.Printf("[pages] %s input %s: %v", adapter.Name(), raw, err)
		respondRouteError(w, err)
		return
	}
	respondPages(w, pages)
}

// cacheable reports whether a page may be served from the page cache.
// Only parameterless reads of the content magazines (1-4) qualify;
// magazines 5-8 are session-bound or diagnostic.
func (h *Handler) cacheable(raw string, query map[string]string) bool {
	if h.cache == nil || len(query) != 0 || raw == "" {
		return false
	}
	return raw[0] >= '1' && raw[0] <= '4'
}

func flatten(values url.Values) map[string]string {
	query := make(map[string]string, len(values))
	for key := range values {
		query[key] = values.Get(key)
	}
	return query
}

func respondPages(w http.ResponseWriter, pages []page.GridPage) {
	body := map[string]interface{}{
		"success": true,
		"page":    pages[0],
	}
	if len(pages) > 1 {
		body["additionalPages"] = pages[1:]
	}
	utils.RespondJSON(w, http.StatusOK, body)
}

func respondRouteError(w http.ResponseWriter, err error) {
	code := route.CodeAdapter
	var re *route.Error
	if errors.As(err, &re) {
		code = re.Code
	}
	utils.RespondError(w, route.HTTPStatus(err), string(code), err.Error())
}
