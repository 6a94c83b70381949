package http

import (
	"net/http"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AdvanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)
	CreateSchedule(w http.ResponseWriter, r *http.Request)
	PayInstallment(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService advance.AdvanceService
}

func NewAdvanceHandler(advanceService advance.AdvanceService) AdvanceHandler {
	return &advanceHandlerImpl{advanceService: advanceService}
}

func (h *advanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req advance.CreateAdvanceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.advanceService.CreateAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance requested", result)
}

func (h *advanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.advanceService.GetAdvance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *advanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.advanceService.ListAdvances(r.Context(), advance.AdvanceFilter{
		WorkerID: optionalQuery(r, "worker_id"),
		Status:   optionalQuery(r, "status"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

func (h *advanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req advance.ApproveAdvanceRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.advanceService.ApproveAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance approved", result)
}

func (h *advanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	result, err := h.advanceService.RejectAdvance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance rejected", result)
}

func (h *advanceHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	result, err := h.advanceService.AdjustAdvance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance adjusted", result)
}

func (h *advanceHandlerImpl) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req advance.CreateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.AdvanceID = chi.URLParam(r, "id")

	result, err := h.advanceService.CreateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Installment schedule created", result)
}

func (h *advanceHandlerImpl) PayInstallment(w http.ResponseWriter, r *http.Request) {
	var req advance.PayInstallmentRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	req.AdvanceID = chi.URLParam(r, "id")
	req.InstallmentID = chi.URLParam(r, "installmentID")

	result, err := h.advanceService.PayInstallment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Installment paid", result)
}
