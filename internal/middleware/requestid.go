// Package middleware provides HTTP middleware for the partner console.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Strob0t/PartnerConsole/internal/logger"
)

const headerRequestID = "X-Request-ID"

// maxRequestIDLen bounds a client supplied request ID.
const maxRequestIDLen = 128

// RequestID is HTTP middleware that extracts X-Request-ID from the request
// header or generates a new one. The ID is stored in the context and set
// on the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.Must(uuid.NewV7()).String()
		}

		ctx := logger.WithRequestID(r.Context(), id)
		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
