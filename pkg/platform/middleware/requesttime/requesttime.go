// Package requesttime pins a single "now" per HTTP request. Every timestamp
// produced while serving the request (history records, audit events) reads
// the same instant from the context.
package requesttime

import (
	"net/http"
	"time"

	"attrisk/pkg/requestcontext"
)

// Middleware captures the current time when the request arrives and stores
// it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
