package validator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	valid := []string{"9876543210", "+919876543210", "09876543210", "98765 43210", "98765-43210"}
	invalid := []string{"1234567890", "987654321", "98765432101", "abc9876543210", "987654321a"}
	for _, phone := range valid {
		if !IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = false, want true", phone)
		}
	}
	for _, phone := range invalid {
		if IsValidPhoneNumber(phone) {
			t.Errorf("IsValidPhoneNumber(%q) = true, want false", phone)
		}
	}
}

func TestIsValidIFSC(t *testing.T) {
	assert.True(t, IsValidIFSC("SBIN0001234"))
	assert.True(t, IsValidIFSC("hdfc0ABC123"))
	assert.False(t, IsValidIFSC("SBIN1001234"))
	assert.False(t, IsValidIFSC("SBIN000123"))
	assert.False(t, IsValidIFSC(""))
}

func TestIsValidUPI(t *testing.T) {
	assert.True(t, IsValidUPI("ramesh.k@okaxis"))
	assert.True(t, IsValidUPI("9876543210@ybl"))
	assert.False(t, IsValidUPI("ramesh"))
	assert.False(t, IsValidUPI("@ybl"))
}

func TestIsValidGSTNumber(t *testing.T) {
	assert.True(t, IsValidGSTNumber("27AAPFU0939F1ZV"))
	assert.False(t, IsValidGSTNumber("27AAPFU0939F1Z"))
	assert.False(t, IsValidGSTNumber("AAPFU0939F1ZV27"))
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	assert.Equal(t, want, got)
}

func TestValidationErrors_OrNil(t *testing.T) {
	var errs ValidationErrors
	assert.NoError(t, errs.OrNil())

	errs = errs.Add("amount", "is required")
	require.Error(t, errs.OrNil())
	assert.Equal(t, "amount: is required", errs.OrNil().Error())
}

type sampleLine struct {
	Quantity decimal.Decimal `json:"quantity" validate:"gt=0"`
	Rate     decimal.Decimal `json:"rate" validate:"gte=0"`
}

type sampleRequest struct {
	Name      string       `json:"name" validate:"required"`
	Kind      string       `json:"kind" validate:"oneof=daily weekly"`
	StartDate string       `json:"start_date" validate:"required,date"`
	Lines     []sampleLine `json:"lines" validate:"min=1,dive"`
}

func TestStruct(t *testing.T) {
	ok := sampleRequest{
		Name:      "Slab work",
		Kind:      "daily",
		StartDate: "2024-01-15",
		Lines:     []sampleLine{{Quantity: decimal.NewFromInt(2), Rate: decimal.Zero}},
	}
	assert.Empty(t, Struct(ok))

	bad := sampleRequest{
		Kind:      "monthly",
		StartDate: "15/01/2024",
		Lines:     []sampleLine{{Quantity: decimal.Zero, Rate: decimal.NewFromInt(-1)}},
	}
	got := Struct(bad).ToMap()
	assert.Equal(t, "is required", got["name"])
	assert.Equal(t, "must be one of: daily, weekly", got["kind"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", got["start_date"])
	assert.Equal(t, "must be greater than 0", got["lines[0].quantity"])
	assert.Equal(t, "must be greater than or equal to 0", got["lines[0].rate"])
}
