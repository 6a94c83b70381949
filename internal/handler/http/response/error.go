package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/export"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/lock"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrNoWageAmount),
		errors.Is(err, worker.ErrInvalidPaymentType):
		UnprocessableEntity(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceAlreadyExists):
		Conflict(w, "Attendance already recorded for this worker and date")
	case errors.Is(err, attendance.ErrInvalidStatus):
		UnprocessableEntity(w, err.Error())

	// Client domain errors
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, client.ErrClientEmailExists):
		Conflict(w, "Client email already registered")
	case errors.Is(err, client.ErrClientHasQuotations):
		Conflict(w, err.Error())

	// Quotation domain errors
	case errors.Is(err, quotation.ErrQuotationNotFound):
		NotFound(w, "Quotation not found")
	case errors.Is(err, quotation.ErrQuotationLocked),
		errors.Is(err, quotation.ErrInvalidStatusTransition):
		Conflict(w, err.Error())
	case errors.Is(err, quotation.ErrNoLineItems):
		UnprocessableEntity(w, err.Error())

	// Advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrInstallmentNotFound):
		NotFound(w, "Installment not found")
	case errors.Is(err, advance.ErrInvalidStatusTransition),
		errors.Is(err, advance.ErrAdvanceNotApproved),
		errors.Is(err, advance.ErrScheduleHasPayments),
		errors.Is(err, advance.ErrInstallmentAlreadyPaid),
		errors.Is(err, advance.ErrAdvanceLocked),
		errors.Is(err, lock.ErrNotObtained):
		Conflict(w, err.Error())
	case errors.Is(err, advance.ErrInvalidInstallmentCount),
		errors.Is(err, advance.ErrInvalidAdvanceAmount),
		errors.Is(err, advance.ErrTooManyInstallments):
		UnprocessableEntity(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPaymentRecordNotFound):
		NotFound(w, "Payment record not found")
	case errors.Is(err, payroll.ErrDeductionNotFound):
		NotFound(w, "Deduction not found")
	case errors.Is(err, payroll.ErrPaymentRecordAlreadyPaid):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrInvalidPeriodType),
		errors.Is(err, payroll.ErrInvalidDeductionType),
		errors.Is(err, payroll.ErrNoWorkers):
		UnprocessableEntity(w, err.Error())

	// Export domain errors
	case errors.Is(err, export.ErrExportNotFound):
		NotFound(w, "Export file not found")
	case errors.Is(err, export.ErrNothingToExport),
		errors.Is(err, export.ErrUnsupportedFormat):
		UnprocessableEntity(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
