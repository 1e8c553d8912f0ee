package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"tokenlease-backend/internal/security"
)

// NewRouter wires the contract surface under /api/v1.
func NewRouter(handler *LeaseHandler, tokenManager security.TokenManager) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(RequestIDMiddleware)
	api.Use(LoggingMiddleware)
	api.Use(AuthMiddleware(tokenManager))

	api.HandleFunc("/initialize", handler.Initialize).Methods(http.MethodPost)
	api.HandleFunc("/payment-token", handler.GetPaymentToken).Methods(http.MethodGet)

	api.HandleFunc("/leases", handler.CreateLease).Methods(http.MethodPost)
	api.HandleFunc("/leases", handler.GetAllListed).Methods(http.MethodGet)
	api.HandleFunc("/leases/{asset}", handler.GetLease).Methods(http.MethodGet)
	api.HandleFunc("/leases/{asset}/exists", handler.HasLease).Methods(http.MethodGet)
	api.HandleFunc("/leases/{asset}/rent", handler.Rent).Methods(http.MethodPost)
	api.HandleFunc("/leases/{asset}/end-rent", handler.EndRent).Methods(http.MethodPost)
	api.HandleFunc("/leases/{asset}/end-lease", handler.EndLease).Methods(http.MethodPost)
	api.HandleFunc("/leases/{asset}/claim", handler.ClaimToken).Methods(http.MethodPost)

	return r
}
