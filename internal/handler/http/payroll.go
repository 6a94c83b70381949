package http

import (
	"net/http"

	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Calculation
	CalculatePayment(w http.ResponseWriter, r *http.Request)
	CalculateBatch(w http.ResponseWriter, r *http.Request)
	ValidatePayment(w http.ResponseWriter, r *http.Request)

	// Payment records
	GeneratePayments(w http.ResponseWriter, r *http.Request)
	GetPaymentRecord(w http.ResponseWriter, r *http.Request)
	ListPaymentRecords(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)

	// Deductions
	CreateDeduction(w http.ResponseWriter, r *http.Request)
	ListDeductions(w http.ResponseWriter, r *http.Request)
	DeleteDeduction(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== CALCULATION ==========

func (h *payrollHandlerImpl) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CalculatePayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) CalculateBatch(w http.ResponseWriter, r *http.Request) {
	var req payroll.BatchPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CalculateBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ValidatePayment(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ValidatePayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== PAYMENT RECORDS ==========

func (h *payrollHandlerImpl) GeneratePayments(w http.ResponseWriter, r *http.Request) {
	var req payroll.BatchPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GeneratePayments(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payments generated", result)
}

func (h *payrollHandlerImpl) GetPaymentRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPaymentRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListPaymentRecords(w http.ResponseWriter, r *http.Request) {
	start, err := optionalDateQuery(r, "start_date")
	if err != nil {
		response.BadRequest(w, "Invalid start_date", map[string]string{"start_date": "must be a date in YYYY-MM-DD format"})
		return
	}
	end, err := optionalDateQuery(r, "end_date")
	if err != nil {
		response.BadRequest(w, "Invalid end_date", map[string]string{"end_date": "must be a date in YYYY-MM-DD format"})
		return
	}

	result, err := h.payrollService.ListPaymentRecords(r.Context(), payroll.PaymentRecordFilter{
		WorkerID:  optionalQuery(r, "worker_id"),
		Status:    optionalQuery(r, "status"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.MarkPaidRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.payrollService.MarkPaid(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payments marked as paid", nil)
}

// ========== DEDUCTIONS ==========

func (h *payrollHandlerImpl) CreateDeduction(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateDeductionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction created", result)
}

func (h *payrollHandlerImpl) ListDeductions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.payrollService.ListDeductions(r.Context(), payroll.DeductionFilter{
		WorkerID:  q.Get("worker_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteDeduction(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeleteDeduction(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction deleted", nil)
}
