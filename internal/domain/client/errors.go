package client

import "errors"

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrClientHasQuotations = errors.New("client has quotations and cannot be deleted")
	ErrClientEmailExists   = errors.New("client email already exists")
)
