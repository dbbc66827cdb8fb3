package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type StatementPrinter interface {
	GenerateStatementPDF(ctx context.Context, customerID string) ([]byte, error)
}

type StatementUploader interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
}

type StatementHandler struct {
	Printer StatementPrinter
	// Uploader is nil when sharing is not configured.
	Uploader StatementUploader
}

// Statement streams the customer's statement PDF, or with ?share=1 uploads it
// and answers with a public link.
func (h *StatementHandler) Statement(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	share := r.URL.Query().Get("share") == "1"

	if share && h.Uploader == nil {
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "Statement sharing is not configured",
		})
		return
	}

	pdfBytes, err := h.Printer.GenerateStatementPDF(r.Context(), customerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(pdfBytes) == 0 {
		writeError(w, r, errors.New("statement renderer returned an empty document"))
		return
	}

	filename := fmt.Sprintf("statement_%s_%d.pdf", customerID, time.Now().Unix())

	if !share {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdfBytes)
		return
	}

	url, err := h.Uploader.Upload(r.Context(), pdfBytes, filename, "application/pdf")
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID).Msg("statement upload failed")
		writeJSON(w, http.StatusBadGateway, ApiResponse{Success: false, Message: "Could not share the statement"})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: map[string]string{"url": url}})
}
