package client

import (
	"strings"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
)

type ClientFilter struct {
	Status *string
	Search *string // matches name, company or email, case-insensitive
}

// Matches applies the filter in memory.
func (f ClientFilter) Matches(c Client) bool {
	if f.Status != nil && *f.Status != "" && string(c.Status) != *f.Status {
		return false
	}
	if f.Search == nil || strings.TrimSpace(*f.Search) == "" {
		return true
	}
	q := strings.ToLower(strings.TrimSpace(*f.Search))
	for _, field := range []*string{&c.Name, c.Company, c.Email} {
		if field != nil && strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return false
}

type CreateClientRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Company   *string `json:"company,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     string  `json:"phone" validate:"required"`
	Address   *string `json:"address,omitempty"`
	GSTNumber *string `json:"gst_number,omitempty"`
	Status    string  `json:"status" validate:"omitempty,oneof=active inactive lead"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *CreateClientRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs = errs.Add("phone", "must be a valid mobile number")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = errs.Add("email", "must be a valid email")
	}
	if r.GSTNumber != nil && *r.GSTNumber != "" && !validator.IsValidGSTNumber(*r.GSTNumber) {
		errs = errs.Add("gst_number", "must be a valid GSTIN")
	}

	return errs.OrNil()
}

type UpdateClientRequest struct {
	ID        string  `json:"-"`
	Name      *string `json:"name,omitempty"`
	Company   *string `json:"company,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	GSTNumber *string `json:"gst_number,omitempty"`
	Status    *string `json:"status,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = errs.Add("id", "is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = errs.Add("name", "must not be empty")
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = errs.Add("phone", "must be a valid mobile number")
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = errs.Add("email", "must be a valid email")
	}
	if r.GSTNumber != nil && *r.GSTNumber != "" && !validator.IsValidGSTNumber(*r.GSTNumber) {
		errs = errs.Add("gst_number", "must be a valid GSTIN")
	}
	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = errs.Add("status", "must be one of: active, inactive, lead")
	}

	return errs.OrNil()
}

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Company   *string   `json:"company,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Phone     string    `json:"phone"`
	Address   *string   `json:"address,omitempty"`
	GSTNumber *string   `json:"gst_number,omitempty"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		GSTNumber: c.GSTNumber,
		Status:    string(c.Status),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
