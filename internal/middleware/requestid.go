package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID tags every response with a generated id so a client-reported
// failure can be matched against server logs.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}
