package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/export"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/storage"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
)

const defaultURLExpiry = 24 * time.Hour

type ExportServiceImpl struct {
	quotationSvc quotation.QuotationService
	payrollSvc   payroll.PayrollService
	storage      storage.FileStorage
	urlExpiry    time.Duration
	now          func() time.Time
}

func NewExportService(
	quotationSvc quotation.QuotationService,
	payrollSvc payroll.PayrollService,
	fileStorage storage.FileStorage,
	urlExpiry time.Duration,
) export.ExportService {
	if urlExpiry <= 0 {
		urlExpiry = defaultURLExpiry
	}
	return &ExportServiceImpl{
		quotationSvc: quotationSvc,
		payrollSvc:   payrollSvc,
		storage:      fileStorage,
		urlExpiry:    urlExpiry,
		now:          time.Now,
	}
}

func (s *ExportServiceImpl) ExportQuotation(ctx context.Context, req export.QuotationExportRequest) (export.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return export.ExportResponse{}, err
	}

	q, err := s.quotationSvc.GetQuotation(ctx, req.QuotationID)
	if err != nil {
		return export.ExportResponse{}, err
	}

	var data []byte
	switch req.Format {
	case export.FormatCSV:
		data, err = renderCSV(quotationLineRows(q.LineItems))
	case export.FormatXLSX:
		data, err = renderXLSX("Quotation", quotationTable(q))
	case export.FormatPDF:
		data, err = renderPDF("P", quotationTable(q))
	default:
		return export.ExportResponse{}, fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, req.Format)
	}
	if err != nil {
		return export.ExportResponse{}, err
	}

	name := fmt.Sprintf("%s_%s.%s", q.Number, s.now().UTC().Format("20060102_150405"), req.Format)
	return s.store(ctx, path.Join("exports", "quotations", name), req.Format, data, len(q.LineItems))
}

func (s *ExportServiceImpl) ExportPayments(ctx context.Context, req export.PaymentExportRequest) (export.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return export.ExportResponse{}, err
	}

	filter := payroll.PaymentRecordFilter{WorkerID: req.WorkerID, Status: req.Status}
	if req.StartDate != "" {
		start, _ := utils.ParseDate(req.StartDate)
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, _ := utils.ParseDate(req.EndDate)
		filter.EndDate = &end
	}

	records, err := s.payrollSvc.ListPaymentRecords(ctx, filter)
	if err != nil {
		return export.ExportResponse{}, err
	}
	if len(records) == 0 {
		return export.ExportResponse{}, export.ErrNothingToExport
	}

	var data []byte
	switch req.Format {
	case export.FormatCSV:
		data, err = renderCSV(paymentRows(records))
	case export.FormatXLSX:
		data, err = renderXLSX("Payments", paymentTable(records))
	case export.FormatPDF:
		data, err = renderPDF("L", paymentTable(records))
	default:
		return export.ExportResponse{}, fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, req.Format)
	}
	if err != nil {
		return export.ExportResponse{}, err
	}

	name := fmt.Sprintf("payments_%s.%s", s.now().UTC().Format("20060102_150405"), req.Format)
	return s.store(ctx, path.Join("exports", "payments", name), req.Format, data, len(records))
}

func (s *ExportServiceImpl) store(ctx context.Context, key string, format export.Format, data []byte, rows int) (export.ExportResponse, error) {
	saved, err := s.storage.Upload(ctx, bytes.NewReader(data), key, format.ContentType())
	if err != nil {
		return export.ExportResponse{}, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.storage.GetURL(ctx, saved, s.urlExpiry)
	if err != nil {
		return export.ExportResponse{}, fmt.Errorf("failed to get export url: %w", err)
	}

	slog.Info("Export generated", "path", saved, "format", format, "rows", rows, "bytes", len(data))

	return export.ExportResponse{
		Format:      format,
		FileName:    path.Base(saved),
		Path:        saved,
		URL:         url,
		ContentType: format.ContentType(),
		Rows:        rows,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// Open only serves files under exports/. The path is cleaned first so dot
// segments cannot climb out of that prefix.
func (s *ExportServiceImpl) Open(ctx context.Context, filePath string) (io.ReadCloser, string, error) {
	filePath = strings.TrimPrefix(path.Clean("/"+filePath), "/")
	if !strings.HasPrefix(filePath, "exports/") {
		return nil, "", export.ErrExportNotFound
	}

	rc, err := s.storage.Download(ctx, filePath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			return nil, "", export.ErrExportNotFound
		}
		return nil, "", fmt.Errorf("failed to open export: %w", err)
	}

	ext := strings.TrimPrefix(path.Ext(filePath), ".")
	return rc, export.Format(ext).ContentType(), nil
}
