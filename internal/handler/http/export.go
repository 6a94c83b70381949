package http

import (
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/buildpro/backoffice-backend-go/internal/domain/export"
	"github.com/buildpro/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ExportHandler interface {
	ExportQuotation(w http.ResponseWriter, r *http.Request)
	ExportPayments(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type exportHandlerImpl struct {
	exportService export.ExportService
}

func NewExportHandler(exportService export.ExportService) ExportHandler {
	return &exportHandlerImpl{exportService: exportService}
}

func (h *exportHandlerImpl) ExportQuotation(w http.ResponseWriter, r *http.Request) {
	var req export.QuotationExportRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.QuotationID = chi.URLParam(r, "id")

	result, err := h.exportService.ExportQuotation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Quotation exported", result)
}

func (h *exportHandlerImpl) ExportPayments(w http.ResponseWriter, r *http.Request) {
	var req export.PaymentExportRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.exportService.ExportPayments(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payments exported", result)
}

// Download streams a file written by the local storage backend.
func (h *exportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	filePath := chi.URLParam(r, "*")

	rc, contentType, err := h.exportService.Open(r.Context(), filePath)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(filePath)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("Failed to stream export", "path", filePath, "error", err)
	}
}
