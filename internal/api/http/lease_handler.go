package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"tokenlease-backend/internal/domain"
	"tokenlease-backend/internal/service"
)

// LeaseHandler exposes the escrow operations over HTTP/JSON.
type LeaseHandler struct {
	leaseSvc service.LeaseService
}

func NewLeaseHandler(leaseSvc service.LeaseService) *LeaseHandler {
	return &LeaseHandler{leaseSvc: leaseSvc}
}

type initializeRequest struct {
	Admin        string `json:"admin"`
	PaymentToken string `json:"payment_token"`
}

func (h *LeaseHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Message: "malformed request body"})
		return
	}
	if req.Admin == "" || req.PaymentToken == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Message: "admin and payment_token are required"})
		return
	}
	if err := h.leaseSvc.Initialize(r.Context(), req.Admin, req.PaymentToken); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"admin": req.Admin, "payment_token": req.PaymentToken})
}

func (h *LeaseHandler) GetPaymentToken(w http.ResponseWriter, r *http.Request) {
	paymentToken, err := h.leaseSvc.GetPaymentToken(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"payment_token": paymentToken})
}

type leaseRequest struct {
	Leaser      string `json:"leaser"`
	Asset       string `json:"asset"`
	Price       int64  `json:"price"`
	MaxDuration int64  `json:"max_duration"`
}

func (h *LeaseHandler) CreateLease(w http.ResponseWriter, r *http.Request) {
	var req leaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Message: "malformed request body"})
		return
	}
	if req.Leaser == "" || req.Asset == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Message: "leaser and asset are required"})
		return
	}
	lease, err := h.leaseSvc.Lease(r.Context(), req.Leaser, req.Asset, req.Price, req.MaxDuration)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lease)
}

type rentRequest struct {
	Renter   string `json:"renter"`
	Duration int64  `json:"duration"`
}

func (h *LeaseHandler) Rent(w http.ResponseWriter, r *http.Request) {
	asset := mux.Vars(r)["asset"]
	var req rentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Message: "malformed request body"})
		return
	}
	lease, err := h.leaseSvc.Rent(r.Context(), req.Renter, asset, req.Duration)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

type endRentRequest struct {
	Renter string `json:"renter"`
}

func (h *LeaseHandler) EndRent(w http.ResponseWriter, r *http.Request) {
	asset := mux.Vars(r)["asset"]
	var req endRentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Message: "malformed request body"})
		return
	}
	if err := h.leaseSvc.EndRent(r.Context(), req.Renter, asset); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ended": true})
}

type endLeaseRequest struct {
	Leaser string `json:"leaser"`
}

func (h *LeaseHandler) EndLease(w http.ResponseWriter, r *http.Request) {
	asset := mux.Vars(r)["asset"]
	var req endLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Message: "malformed request body"})
		return
	}
	if err := h.leaseSvc.EndLease(r.Context(), req.Leaser, asset); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ended": true})
}

type claimRequest struct {
	Caller           string `json:"caller"`
	UseAdminOverride bool   `json:"use_admin_override"`
}

func (h *LeaseHandler) ClaimToken(w http.ResponseWriter, r *http.Request) {
	asset := mux.Vars(r)["asset"]
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "BAD_REQUEST", Message: "malformed request body"})
		return
	}
	if err := h.leaseSvc.ClaimToken(r.Context(), req.Caller, asset, req.UseAdminOverride); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"claimed": true})
}

func (h *LeaseHandler) GetLease(w http.ResponseWriter, r *http.Request) {
	asset := mux.Vars(r)["asset"]
	lease, err := h.leaseSvc.GetLease(r.Context(), asset)
	if err != nil {
		writeError(w, err)
		return
	}
	if lease == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Code: "LEASE_NOT_FOUND", Message: "no lease exists for this asset"})
		return
	}
	writeJSON(w, http.StatusOK, lease)
}

func (h *LeaseHandler) HasLease(w http.ResponseWriter, r *http.Request) {
	asset := mux.Vars(r)["asset"]
	exists, err := h.leaseSvc.HasLease(r.Context(), asset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

func (h *LeaseHandler) GetAllListed(w http.ResponseWriter, r *http.Request) {
	leases, err := h.leaseSvc.GetAllListed(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if leases == nil {
		leases = []domain.Lease{}
	}
	writeJSON(w, http.StatusOK, leases)
}
