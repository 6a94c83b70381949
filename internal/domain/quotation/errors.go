package quotation

import "errors"

var (
	ErrQuotationNotFound       = errors.New("quotation not found")
	ErrQuotationLocked         = errors.New("quotation can no longer be edited")
	ErrInvalidStatusTransition = errors.New("invalid quotation status transition")
	ErrNoLineItems             = errors.New("quotation must have at least one line item")
)
