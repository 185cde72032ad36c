package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oguzkopan/teletext-sub000/internal/adapter"
	"github.com/oguzkopan/teletext-sub000/internal/handler/oracle"
	"github.com/oguzkopan/teletext-sub000/internal/handler/pages"
	middlewarePkg "github.com/oguzkopan/teletext-sub000/internal/middleware"
	"github.com/oguzkopan/teletext-sub000/internal/route"
	"github.com/oguzkopan/teletext-sub000/internal/store"
	"github.com/oguzkopan/teletext-sub000/pkg/utils"
)

// NewRouter wires HTTP routes to the page service.
func NewRouter(pageRouter *route.Router, pageCache *store.PageCache, ai *adapter.AI) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)
	r.Use(middlewarePkg.NoCache)

	pagesHandler := pages.New(pageRouter, pageCache)
	oracleHandler := oracle.New(ai)

	r.Route("/api", func(api chi.Router) {
		pagesHandler.RegisterRoutes(api)
		oracleHandler.RegisterRoutes(api)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
