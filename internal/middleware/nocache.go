package middleware

import "net/http"

// NoCache keeps intermediaries from serving stale grids. Page freshness
// is managed server-side by the page cache, not by HTTP caching.
func NoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
