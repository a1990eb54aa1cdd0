package middleware

import (
	"io"
	"net/http"
)

// drained bytes per request are capped, a larger leftover body just closes the connection
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest consumes what the handler left unread from the request body, so the connection can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxDrainBytes))
			_ = r.Body.Close()
		})
	}
}
