package export

import (
	"context"
	"io"
)

type ExportService interface {
	ExportQuotation(ctx context.Context, req QuotationExportRequest) (ExportResponse, error)
	ExportPayments(ctx context.Context, req PaymentExportRequest) (ExportResponse, error)

	// Open streams a previously generated file back
	Open(ctx context.Context, path string) (io.ReadCloser, string, error)
}
