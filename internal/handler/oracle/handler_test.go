package oracle

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
	"github.com/oguzkopan/teletext-sub000/internal/model/session"
	"github.com/oguzkopan/teletext-sub000/internal/store"
	"github.com/oguzkopan/teletext-sub000/internal/throttle"
)

type fixedInvoker struct {
	text string
	err  error
}

func (f *fixedInvoker) Invoke(context.Context, string, []session.Turn) (string, error) {
	return f.text, f.err
}

func setupRouter(inv adapter.Invoker) *chi.Mux {
	handler := New(adapter.NewAI(inv, store.NewSessions(), nil))
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func post(t *testing.T, r http.Handler, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGenerateStatelessMode(t *testing.T) {
	r := setupRouter(&fixedInvoker{text: "a short poem about rain"})

	resp := post(t, r, "/ai", map[string]interface{}{
		"mode":       "poem",
		"parameters": map[string]string{"theme": "rain"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Success   bool            `json:"success"`
		Pages     []page.GridPage `json:"pages"`
		ContextID string          `json:"contextId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Success || len(body.Pages) == 0 {
		t.Fatalf("unexpected body: success=%v pages=%d", body.Success, len(body.Pages))
	}
	if body.ContextID != "" {
		t.Fatal("stateless modes carry no context id")
	}
}

func TestGenerateQuestionReturnsContext(t *testing.T) {
	r := setupRouter(&fixedInvoker{text: "an answer"})

	resp := post(t, r, "/ai", map[string]interface{}{
		"mode":       "question",
		"parameters": map[string]string{"question": "why?"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		ContextID string `json:"contextId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.ContextID == "" {
		t.Fatal("question mode must return its conversation context")
	}
}

func TestGenerateRejectsUnknownMode(t *testing.T) {
	r := setupRouter(&fixedInvoker{text: "x"})

	resp := post(t, r, "/ai", map[string]interface{}{"mode": "haiku"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGenerateRejectsUnknownParameters(t *testing.T) {
	r := setupRouter(&fixedInvoker{text: "x"})

	resp := post(t, r, "/ai", map[string]interface{}{
		"mode":       "poem",
		"parameters": map[string]string{"mood": "wistful"},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unknown parameters must be rejected, got %d", resp.Code)
	}
}

func TestGenerateRateLimited(t *testing.T) {
	r := setupRouter(&fixedInvoker{err: throttle.ErrRateLimited})

	resp := post(t, r, "/ai", map[string]interface{}{
		"mode":       "fact",
		"parameters": map[string]string{},
	})
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
}

func TestEndConversation(t *testing.T) {
	r := setupRouter(&fixedInvoker{text: "x"})

	req := httptest.NewRequest(http.MethodDelete, "/conversation/some-context", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !body.Success {
		t.Fatal("discarding an unknown conversation is still a success")
	}
}
