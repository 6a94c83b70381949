package payroll

import "context"

type PayrollService interface {
	// Calculation
	CalculatePayment(ctx context.Context, req CalculatePaymentRequest) (PaymentResponse, error)
	CalculateBatch(ctx context.Context, req BatchPaymentRequest) (BatchPaymentResponse, error)
	ValidatePayment(ctx context.Context, req CalculatePaymentRequest) (ValidationResponse, error)

	// Records
	GeneratePayments(ctx context.Context, req BatchPaymentRequest) (BatchPaymentResponse, error)
	GetPaymentRecord(ctx context.Context, id string) (PaymentRecordResponse, error)
	ListPaymentRecords(ctx context.Context, filter PaymentRecordFilter) ([]PaymentRecordResponse, error)
	MarkPaid(ctx context.Context, req MarkPaidRequest) error

	// Deductions
	CreateDeduction(ctx context.Context, req CreateDeductionRequest) (DeductionResponse, error)
	ListDeductions(ctx context.Context, filter DeductionFilter) ([]DeductionResponse, error)
	DeleteDeduction(ctx context.Context, id string) error
}
