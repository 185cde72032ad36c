// Package oracle serves the generation endpoints that live outside the
// page grid: mode-based requests and conversation teardown.
package oracle

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oguzkopan/teletext-sub000/internal/adapter"
	"github.com/oguzkopan/teletext-sub000/internal/route"
	"github.com/oguzkopan/teletext-sub000/pkg/utils"
)

// Handler fronts the AI adapter for non-navigational requests.
type Handler struct {
	ai *adapter.AI
}

// New creates the oracle handler.
func New(ai *adapter.AI) *Handler {
	return &Handler{ai: ai}
}

// RegisterRoutes wires the generation endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ai", h.handleGenerate)
	r.Delete("/conversation/{contextID}", h.handleEndConversation)
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Mode       string            `json:"mode"`
		Parameters map[string]string `json:"parameters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest,
			string(route.CodeInvalidPage), "invalid request body")
		return
	}
	if payload.Mode == "" {
		utils.RespondError(w, http.StatusBadRequest,
			string(route.CodeInvalidPage), "mode is required")
		return
	}
	if payload.Parameters == nil {
		payload.Parameters = map[string]string{}
	}

	pages, contextID, err := h.ai.Generate(r.Context(), payload.Mode, payload.Parameters)
	if err != nil {
		log.Printf("[oracle] generate mode=%s: %v", payload.Mode, err)
		code := route.CodeAdapter
		var re *route.Error
		if errors.As(err, &re) {
			code = re.Code
		}
		utils.RespondError(w, route.HTTPStatus(err), string(code), err.Error())
		return
	}

	body := map[string]interface{}{
		"success": true,
		"pages":   pages,
	}
	if contextID != "" {
		body["contextId"] = contextID
	}
	utils.RespondJSON(w, http.StatusOK, body)
}

func (h *Handler) handleEndConversation(w http.ResponseWriter, r *http.Request) {
	contextID := chi.URLParam(r, "contextID")
	if contextID == "" {
		utils.RespondError(w, http.StatusBadRequest,
			string(route.CodeInvalidPage), "contextId is required")
		return
	}

	h.ai.EndConversation(contextID)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "conversation discarded",
	})
}
