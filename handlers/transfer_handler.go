package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"abinterior/models"
	"abinterior/service"
	"abinterior/transfer"
)

const maxImportSize = 10 << 20

type TransferHandler struct {
	Ledger *service.LedgerService
}

type exportFunc func(io.Writer, []models.CustomerWithSummary) error

func (h *TransferHandler) export(w http.ResponseWriter, r *http.Request, write exportFunc, ext, contentType string) {
	customers, err := h.Ledger.GetCustomers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Buffer so that a failed export can still answer with an error status.
	var buf bytes.Buffer
	if err := write(&buf, customers); err != nil {
		writeError(w, r, err)
		return
	}

	filename := fmt.Sprintf("customers_%s.%s", time.Now().Format("2006-01-02"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *TransferHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, transfer.ExportCSV, "csv", "text/csv; charset=utf-8")
}

func (h *TransferHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, transfer.ExportJSON, "json", "application/json")
}

func (h *TransferHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, transfer.ExportXLSX, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

type parseFunc func(io.Reader) ([]models.ImportRow, error)

func (h *TransferHandler) importFile(w http.ResponseWriter, r *http.Request, parse parseFunc) {
	body, err := uploadedFile(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Errors: formError(err.Error())})
		return
	}
	defer body.Close()

	rows, err := parse(body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result := h.Ledger.ImportCustomers(r.Context(), rows)
	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: fmt.Sprintf("Imported %d customers, skipped %d duplicates", result.Success, result.Duplicates),
		Data:    result,
	})
}

func (h *TransferHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	h.importFile(w, r, transfer.ParseCSV)
}

func (h *TransferHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	h.importFile(w, r, transfer.ParseJSON)
}

// uploadedFile accepts either a multipart form with a "file" field or the raw
// file as the request body.
func uploadedFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			return nil, fmt.Errorf("could not read upload: %w", err)
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("missing file: %w", err)
		}
		return f, nil
	}
	return r.Body, nil
}
