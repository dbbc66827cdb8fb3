package handlers

import (
	"net/http"

	"abinterior/models"
	"abinterior/service"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	Ledger *service.LedgerService
}

func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	list, err := h.Ledger.GetCustomers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: list})
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.Ledger.GetCustomerByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: c})
}

func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in models.CustomerInput
	if !decodeJSON(w, r, &in) {
		return
	}

	c, err := h.Ledger.AddCustomer(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Customer added successfully", Data: c})
}

func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var in models.CustomerFields
	if !decodeJSON(w, r, &in) {
		return
	}

	if err := h.Ledger.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Customer updated successfully"})
}

func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Customer deleted successfully"})
}

func (h *CustomerHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var in models.PaymentInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.CustomerID = chi.URLParam(r, "id")

	tx, err := h.Ledger.AddPayment(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Transaction added successfully", Data: tx})
}

func (h *CustomerHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var in models.PaymentInput
	if !decodeJSON(w, r, &in) {
		return
	}

	tx, err := h.Ledger.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "txID"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Transaction updated successfully", Data: tx})
}

func (h *CustomerHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.DeleteTransaction(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "txID")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Message: "Transaction deleted successfully"})
}

// Summary answers with AI prose about the customer's ledger.
func (h *CustomerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SummaryType service.SummaryKind `json:"summaryType"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	text, err := h.Ledger.GenerateSummary(r.Context(), chi.URLParam(r, "id"), in.SummaryType)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]string{"summary": text}})
}

func (h *CustomerHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.Ledger.Analytics(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: a})
}
