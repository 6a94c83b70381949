package export

import (
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

type QuotationExportRequest struct {
	QuotationID string `json:"-"`
	Format      Format `json:"format" validate:"required,oneof=csv pdf xlsx"`
}

func (r *QuotationExportRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.QuotationID) {
		errs = errs.Add("id", "is required")
	}
	return errs.OrNil()
}

type PaymentExportRequest struct {
	Format    Format  `json:"format" validate:"required,oneof=csv pdf xlsx"`
	WorkerID  *string `json:"worker_id,omitempty"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=pending paid"`
	StartDate string  `json:"start_date,omitempty" validate:"omitempty,date"`
	EndDate   string  `json:"end_date,omitempty" validate:"omitempty,date"`
}

func (r *PaymentExportRequest) Validate() error {
	errs := validator.Struct(r)
	if r.StartDate != "" && r.EndDate != "" {
		start, err1 := utils.ParseDate(r.StartDate)
		end, err2 := utils.ParseDate(r.EndDate)
		if err1 == nil && err2 == nil && end.Before(start) {
			errs = errs.Add("end_date", "must not be before start_date")
		}
	}
	return errs.OrNil()
}

type ExportResponse struct {
	Format      Format    `json:"format"`
	FileName    string    `json:"file_name"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Rows        int       `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}
