package export

import (
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/shopspring/decimal"
)

type quotationLineRow struct {
	No          int    `csv:"no"`
	Category    string `csv:"category"`
	Description string `csv:"description"`
	Unit        string `csv:"unit"`
	Quantity    string `csv:"quantity"`
	Rate        string `csv:"rate"`
	Discount    string `csv:"discount_percent"`
	Amount      string `csv:"amount"`
}

var quotationLineHeaders = []string{"No", "Category", "Description", "Unit", "Quantity", "Rate", "Discount %", "Amount"}

func quotationLineRows(items []quotation.LineItemResponse) []quotationLineRow {
	rows := make([]quotationLineRow, 0, len(items))
	for i, item := range items {
		discount := ""
		if item.DiscountPercent != nil {
			discount = item.DiscountPercent.String()
		}
		rows = append(rows, quotationLineRow{
			No:          i + 1,
			Category:    item.Category,
			Description: item.Description,
			Unit:        item.Unit,
			Quantity:    item.Quantity.String(),
			Rate:        money(item.Rate),
			Discount:    discount,
			Amount:      money(item.Amount),
		})
	}
	return rows
}

func (r quotationLineRow) cells() []string {
	return []string{itoa(r.No), r.Category, r.Description, r.Unit, r.Quantity, r.Rate, r.Discount, r.Amount}
}

type paymentRow struct {
	RecordID        string `csv:"record_id"`
	WorkerID        string `csv:"worker_id"`
	WorkerName      string `csv:"worker_name"`
	PaymentType     string `csv:"payment_type"`
	PeriodStart     string `csv:"period_start"`
	PeriodEnd       string `csv:"period_end"`
	PresentDays     string `csv:"present_days"`
	TotalHours      string `csv:"total_hours"`
	OvertimeHours   string `csv:"overtime_hours"`
	GrossPay        string `csv:"gross_pay"`
	TotalDeductions string `csv:"total_deductions"`
	NetPay          string `csv:"net_pay"`
	BankName        string `csv:"bank_name"`
	AccountNumber   string `csv:"account_number"`
	IFSCCode        string `csv:"ifsc_code"`
	UPIID           string `csv:"upi_id"`
	Status          string `csv:"status"`
}

var paymentHeaders = []string{
	"Record", "Worker ID", "Worker", "Type", "From", "To", "Days", "Hours", "OT Hours",
	"Gross", "Deductions", "Net", "Bank", "Account", "IFSC", "UPI", "Status",
}

func paymentRows(records []payroll.PaymentRecordResponse) []paymentRow {
	rows := make([]paymentRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, paymentRow{
			RecordID:        r.ID,
			WorkerID:        r.WorkerID,
			WorkerName:      r.WorkerName,
			PaymentType:     r.PaymentType,
			PeriodStart:     r.Period.StartDate,
			PeriodEnd:       r.Period.EndDate,
			PresentDays:     r.PresentDays.String(),
			TotalHours:      r.TotalHours.String(),
			OvertimeHours:   r.OvertimeHours.String(),
			GrossPay:        money(r.GrossPay),
			TotalDeductions: money(r.TotalDeductions),
			NetPay:          money(r.NetPay),
			BankName:        r.BankName,
			AccountNumber:   r.MaskedAccountNumber,
			IFSCCode:        r.IFSCCode,
			UPIID:           r.UPIID,
			Status:          r.Status,
		})
	}
	return rows
}

func (r paymentRow) cells() []string {
	return []string{
		r.RecordID, r.WorkerID, r.WorkerName, r.PaymentType, r.PeriodStart, r.PeriodEnd,
		r.PresentDays, r.TotalHours, r.OvertimeHours, r.GrossPay, r.TotalDeductions, r.NetPay,
		r.BankName, r.AccountNumber, r.IFSCCode, r.UPIID, r.Status,
	}
}

// table is the shape shared by the PDF and XLSX renderers.
type table struct {
	Title   string
	Meta    [][2]string
	Headers []string
	Rows    [][]string
	Totals  [][2]string
}

func quotationTable(q quotation.QuotationResponse) table {
	client := q.ClientID
	if q.ClientName != nil {
		client = *q.ClientName
	}

	t := table{
		Title: "Quotation " + q.Number,
		Meta: [][2]string{
			{"Title", q.Title},
			{"Client", client},
			{"Status", q.Status},
			{"Date", q.CreatedAt.Format("2006-01-02")},
			{"Valid until", q.ValidUntil},
		},
		Headers: quotationLineHeaders,
		Totals: [][2]string{
			{"Subtotal", money(q.Subtotal)},
			{"Tax (" + q.TaxPercentage.String() + "%)", money(q.TaxAmount)},
			{"Discount", money(q.TotalDiscount)},
			{"Total", money(q.TotalAmount)},
		},
	}
	for _, row := range quotationLineRows(q.LineItems) {
		t.Rows = append(t.Rows, row.cells())
	}
	return t
}

func paymentTable(records []payroll.PaymentRecordResponse) table {
	gross, deductions, net := decimal.Zero, decimal.Zero, decimal.Zero
	t := table{
		Title:   "Payment batch",
		Headers: paymentHeaders,
	}
	for i, row := range paymentRows(records) {
		t.Rows = append(t.Rows, row.cells())
		gross = gross.Add(records[i].GrossPay)
		deductions = deductions.Add(records[i].TotalDeductions)
		net = net.Add(records[i].NetPay)
	}
	t.Meta = [][2]string{{"Records", itoa(len(records))}}
	t.Totals = [][2]string{
		{"Gross", money(gross)},
		{"Deductions", money(deductions)},
		{"Net", money(net)},
	}
	return t
}
