package export

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNothingToExport   = errors.New("nothing to export")
	ErrExportNotFound    = errors.New("export file not found")
)
