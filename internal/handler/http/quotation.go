package http

import (
	"net/http"

	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/buildpro/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type QuotationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	ListVersions(w http.ResponseWriter, r *http.Request)
	PreviewTotals(w http.ResponseWriter, r *http.Request)
}

type quotationHandlerImpl struct {
	quotationService quotation.QuotationService
}

func NewQuotationHandler(quotationService quotation.QuotationService) QuotationHandler {
	return &quotationHandlerImpl{quotationService: quotationService}
}

func (h *quotationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req quotation.CreateQuotationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.quotationService.CreateQuotation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Quotation created", result)
}

func (h *quotationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.quotationService.GetQuotation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *quotationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.quotationService.ListQuotations(r.Context(), quotation.QuotationFilter{
		ClientID: optionalQuery(r, "client_id"),
		Status:   optionalQuery(r, "status"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

func (h *quotationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req quotation.UpdateQuotationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.quotationService.UpdateQuotation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Quotation updated", result)
}

func (h *quotationHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req quotation.UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.quotationService.UpdateStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Quotation status updated", result)
}

func (h *quotationHandlerImpl) ListVersions(w http.ResponseWriter, r *http.Request) {
	result, err := h.quotationService.ListVersions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *quotationHandlerImpl) PreviewTotals(w http.ResponseWriter, r *http.Request) {
	var req quotation.PreviewTotalsRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.quotationService.PreviewTotals(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
