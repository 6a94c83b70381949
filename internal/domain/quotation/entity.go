package quotation

import (
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
	StatusSent      Status = "sent"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusExpired   Status = "expired"
)

var transitions = map[Status][]Status{
	StatusDraft:     {StatusFinalized},
	StatusFinalized: {StatusSent},
	StatusSent:      {StatusAccepted, StatusRejected, StatusExpired},
}

// CanTransition reports whether from -> to is an edge of the status machine.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusFinalized, StatusSent, StatusAccepted, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// Editable is true for draft and finalized quotations only.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusFinalized
}

// ExpiryStatus is a display bucket, not a state of the machine.
type ExpiryStatus string

const (
	ExpiryValid        ExpiryStatus = "valid"
	ExpiryExpiringSoon ExpiryStatus = "expiring_soon"
	ExpiryExpired      ExpiryStatus = "expired"
)

type LineItem struct {
	ID              string
	Category        string
	Description     string
	Unit            string
	Quantity        decimal.Decimal
	Rate            decimal.Decimal
	Amount          decimal.Decimal  // quantity * rate, always re-derived
	DiscountPercent *decimal.Decimal // reduces this line before the subtotal
}

type Version struct {
	Version     int
	ModifiedBy  string
	ModifiedAt  time.Time
	Changes     string
	LineItems   []LineItem
	TotalAmount decimal.Decimal
}

type Quotation struct {
	ID             string
	Number         string
	ClientID       string
	Title          string
	LineItems      []LineItem
	Subtotal       decimal.Decimal
	TaxPercentage  decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalDiscount  decimal.Decimal // flat currency amount
	TotalAmount    decimal.Decimal
	Status         Status
	ValidityPeriod int // days
	Notes          *string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ValidUntil     time.Time
	Versions       []Version

	// Joined fields
	ClientName *string
}

// Totals is the derived money block of a quotation.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

const expiringSoonDays = 3

// Expiry buckets a quotation by the whole days left until ValidUntil.
func (q Quotation) Expiry(now time.Time) (ExpiryStatus, int) {
	days := utils.DaysUntil(now, q.ValidUntil)
	switch {
	case days <= 0:
		return ExpiryExpired, days
	case days <= expiringSoonDays:
		return ExpiryExpiringSoon, days
	default:
		return ExpiryValid, days
	}
}
