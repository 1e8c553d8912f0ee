package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"tokenlease-backend/internal/service"
	"tokenlease-backend/internal/token"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorMapping struct {
	status int
	code   string
}

var errorMappings = []struct {
	err     error
	mapping errorMapping
}{
	{service.ErrNotInitialized, errorMapping{http.StatusConflict, "NOT_INITIALIZED"}},
	{service.ErrAlreadyInitialized, errorMapping{http.StatusConflict, "ALREADY_INITIALIZED"}},
	{service.ErrLeaseNotFound, errorMapping{http.StatusNotFound, "LEASE_NOT_FOUND"}},
	{service.ErrLeaseAlreadyExists, errorMapping{http.StatusConflict, "LEASE_ALREADY_EXISTS"}},
	{service.ErrInvalidState, errorMapping{http.StatusConflict, "INVALID_STATE"}},
	{service.ErrInvalidDuration, errorMapping{http.StatusBadRequest, "INVALID_DURATION"}},
	{service.ErrInvalidPrice, errorMapping{http.StatusBadRequest, "INVALID_PRICE"}},
	{service.ErrNotExpired, errorMapping{http.StatusConflict, "NOT_EXPIRED"}},
	{service.ErrUnauthorized, errorMapping{http.StatusForbidden, "UNAUTHORIZED"}},
	{token.ErrInsufficientBalance, errorMapping{http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"}},
	{token.ErrInsufficientAllowance, errorMapping{http.StatusUnprocessableEntity, "INSUFFICIENT_ALLOWANCE"}},
	{token.ErrHolderDeauthorized, errorMapping{http.StatusUnprocessableEntity, "HOLDER_DEAUTHORIZED"}},
	{token.ErrNotAdmin, errorMapping{http.StatusUnprocessableEntity, "NOT_ADMIN"}},
	{token.ErrUnknownAsset, errorMapping{http.StatusUnprocessableEntity, "UNKNOWN_ASSET"}},
}

// writeError maps a service or token failure to a status code and a
// machine-checkable error code. Unrecognized errors become 500 INTERNAL
// without leaking detail.
func writeError(w http.ResponseWriter, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			writeJSON(w, m.mapping.status, errorResponse{Code: m.mapping.code, Message: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusInternalServerError, errorResponse{Code: "INTERNAL", Message: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
