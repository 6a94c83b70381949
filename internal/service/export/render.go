package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// renderCSV writes a header row plus one row per element using the csv struct tags.
func renderCSV(rows any) ([]byte, error) {
	b, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal csv: %w", err)
	}
	return b, nil
}

func renderXLSX(sheet string, t table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheet)
	_ = f.SetDocProps(&excelize.DocProperties{Title: t.Title, Creator: "backoffice"})

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	row := 1
	setRow := func(values []string, style int) error {
		for i, v := range values {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return err
			}
			if style != 0 {
				if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
					return err
				}
			}
		}
		row++
		return nil
	}

	for _, m := range t.Meta {
		if err := setRow([]string{m[0], m[1]}, 0); err != nil {
			return nil, fmt.Errorf("failed to write sheet: %w", err)
		}
	}
	if len(t.Meta) > 0 {
		row++
	}
	if err := setRow(t.Headers, bold); err != nil {
		return nil, fmt.Errorf("failed to write sheet: %w", err)
	}
	for _, r := range t.Rows {
		if err := setRow(r, 0); err != nil {
			return nil, fmt.Errorf("failed to write sheet: %w", err)
		}
	}
	if len(t.Totals) > 0 {
		row++
	}
	for _, tot := range t.Totals {
		if err := setRow([]string{tot[0], tot[1]}, bold); err != nil {
			return nil, fmt.Errorf("failed to write sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue keeps numeric columns numeric in the spreadsheet.
func cellValue(s string) any {
	if d, err := decimal.NewFromString(s); err == nil {
		return d.InexactFloat64()
	}
	return s
}

func renderPDF(orientation string, t table) ([]byte, error) {
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, t.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range t.Meta {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %s", m[0], m[1]))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(t.Headers))

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range t.Headers {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, r := range t.Rows {
		for _, v := range r {
			pdf.CellFormat(colWidth, 6, truncate(pdf, v, colWidth-1), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	for _, tot := range t.Totals {
		pdf.CellFormat(pageWidth-left-right-40, 6, tot[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, tot[1], "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func truncate(pdf *gofpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
