package worker

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType enum
type PaymentType string

const (
	PaymentTypeDaily   PaymentType = "daily_wages"
	PaymentTypeMonthly PaymentType = "monthly_wages" // fixed salary
	PaymentTypeHourly  PaymentType = "hourly"
)

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentTypeDaily, PaymentTypeMonthly, PaymentTypeHourly:
		return true
	}
	return false
}

// Worker is the wage profile of a site worker. It is read-only for payroll runs.
type Worker struct {
	ID            string
	Name          string
	Phone         string
	PaymentType   PaymentType
	WageAmount    decimal.Decimal  // per day, or per hour for hourly workers
	SalaryAmount  *decimal.Decimal // monthly fixed salary
	BankName      string
	AccountNumber string
	IFSCCode      string
	UPIID         string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MonthlyBase returns the salary amount when set, otherwise the wage amount.
func (w Worker) MonthlyBase() decimal.Decimal {
	if w.SalaryAmount != nil && w.SalaryAmount.IsPositive() {
		return *w.SalaryAmount
	}
	return w.WageAmount
}

// HasWageAmount reports whether the profile carries a usable pay basis.
func (w Worker) HasWageAmount() bool {
	if w.PaymentType == PaymentTypeMonthly {
		return w.MonthlyBase().IsPositive()
	}
	return w.WageAmount.IsPositive()
}

// HasCompleteBankDetails is true when either a bank account with IFSC or a UPI id is present.
func (w Worker) HasCompleteBankDetails() bool {
	if strings.TrimSpace(w.UPIID) != "" {
		return true
	}
	return strings.TrimSpace(w.AccountNumber) != "" && strings.TrimSpace(w.IFSCCode) != ""
}

// MaskAccountNumber keeps the last four digits: "123456789012" -> "****9012".
func MaskAccountNumber(account string) string {
	account = strings.TrimSpace(account)
	if account == "" {
		return ""
	}
	if len(account) <= 4 {
		return "****" + account
	}
	return "****" + account[len(account)-4:]
}
