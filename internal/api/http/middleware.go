package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"tokenlease-backend/internal/logger"
	"tokenlease-backend/internal/security"
)

// RequestIDMiddleware tags every request with a correlation ID.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware logs each request at debug level.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("→ HTTP request", "method", r.Method, "path", r.URL.Path, "request_id", w.Header().Get("X-Request-Id"))
		next.ServeHTTP(w, r)
	})
}

// AuthMiddleware validates the bearer token and places the authenticated
// account address on the request context. Operations still verify that
// account against their explicit principal argument.
func AuthMiddleware(tokenManager security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "UNAUTHENTICATED", Message: "missing bearer token"})
				return
			}
			claims, err := tokenManager.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Code: "UNAUTHENTICATED", Message: err.Error()})
				return
			}
			ctx := security.WithAccount(r.Context(), claims.Account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
