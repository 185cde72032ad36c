package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"headlines":["one","two"]}`))
	}))
	defer srv.Close()

	var out struct {
		Headlines []string `json:"headlines"`
	}
	c := New(time.Second)
	if err := c.GetJSON(context.Background(), srv.URL, &out); err != nil {
		t.Fatalf("GetJSON err: %v", err)
	}
	if len(out.Headlines) != 2 || out.Headlines[0] != "one" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGetJSONNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var out map[string]any
	if err := New(time.Second).GetJSON(context.Background(), srv.URL, &out); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestGetJSONTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	var out map[string]any
	if err := New(20 * time.Millisecond).GetJSON(context.Background(), srv.URL, &out); err == nil {
		t.Fatal("expected timeout error")
	}
}
