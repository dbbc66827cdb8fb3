package handlers

import (
	"net/http"

	"abinterior/models"
	"abinterior/service"

	"github.com/go-chi/chi/v5"
)

type LabourHandler struct {
	Ledger *service.LedgerService
}

func (h *LabourHandler) ListLabours(w http.ResponseWriter, r *http.Request) {
	list, err := h.Ledger.GetLabours(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func (h *LabourHandler) CreateLabour(w http.ResponseWriter, r *http.Request) {
	var in models.LabourInput
	if !decodeJSON(w, r, &in) {
		return
	}

	l, err := h.Ledger.AddLabour(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Labour added successfully", Data: l})
}

func (h *LabourHandler) DeleteLabour(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.DeleteLabour(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Labour deleted successfully"})
}

func (h *LabourHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var in models.LabourPaymentInput
	if !decodeJSON(w, r, &in) {
		return
	}

	p, err := h.Ledger.AddLabourPayment(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Payment added successfully", Data: p})
}

func (h *LabourHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.DeleteLabourPayment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "paymentID")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Payment deleted successfully"})
}
