package intake

import (
	"testing"

	"fixsmart/internal/httpx"

	"github.com/shopspring/decimal"
)

func validSubmission() Submission {
	return Submission{
		CustomerEmail: "customer@example.com",
		DeviceType:    "iphone",
		DeviceVersion: "iPhone 15 Pro",
		IMEISerial:    "356938035643809",
		Description:   "locked after reset",
		Amount:        89.00,
	}
}

var iphonePrice = decimal.RequireFromString("89.00")

func TestValidate_OK(t *testing.T) {
	got, appErr := Validate(validSubmission(), iphonePrice)
	if appErr != nil {
		t.Fatalf("Validate() failed: %v", appErr)
	}

	if got.Email != "customer@example.com" {
		t.Errorf("Unexpected email: %s", got.Email)
	}

	if !got.Amount.Equal(iphonePrice) {
		t.Errorf("Expected amount 89.00, got %s", got.Amount)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
	}{
		{"missing email", func(s *Submission) { s.CustomerEmail = "" }},
		{"missing device type", func(s *Submission) { s.DeviceType = "" }},
		{"missing device version", func(s *Submission) { s.DeviceVersion = "" }},
		{"missing imei", func(s *Submission) { s.IMEISerial = "" }},
		{"whitespace-only imei", func(s *Submission) { s.IMEISerial = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)

			_, appErr := Validate(sub, iphonePrice)
			if appErr == nil {
				t.Fatal("Validate() should fail")
			}
			if appErr.Code != httpx.CodeValidation {
				t.Errorf("Expected validation code, got %d", appErr.Code)
			}
		})
	}
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"customer@example.com", true},
		{"a.b+c@sub.example.co", true},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"missing-tld@example", false},
		{"spaces in@example.com", false},
	}

	for _, tt := range tests {
		sub := validSubmission()
		sub.CustomerEmail = tt.email

		_, appErr := Validate(sub, iphonePrice)
		if tt.valid && appErr != nil {
			t.Errorf("Validate() rejected valid email %q: %v", tt.email, appErr)
		}
		if !tt.valid && appErr == nil {
			t.Errorf("Validate() accepted invalid email %q", tt.email)
		}
	}
}

func TestValidate_DeviceTypeEnum(t *testing.T) {
	for _, dt := range []string{"iphone", "ipad", "mac"} {
		sub := validSubmission()
		sub.DeviceType = dt

		if _, appErr := Validate(sub, iphonePrice); appErr != nil {
			t.Errorf("Validate() rejected device type %q: %v", dt, appErr)
		}
	}

	sub := validSubmission()
	sub.DeviceType = "android"
	if _, appErr := Validate(sub, iphonePrice); appErr == nil {
		t.Error("Validate() accepted unknown device type")
	}
}

func TestValidate_AmountAgainstCanonicalPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"exact price", 89.00, true},
		{"within tolerance above", 89.01, true},
		{"within tolerance below", 88.99, true},
		{"one dollar over", 90.00, false},
		{"one dollar under", 88.00, false},
		{"zero", 0, false},
		{"negative", -89.00, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			sub.Amount = tt.amount

			_, appErr := Validate(sub, iphonePrice)
			if tt.valid && appErr != nil {
				t.Errorf("Validate() rejected amount %.2f: %v", tt.amount, appErr)
			}
			if !tt.valid && appErr == nil {
				t.Errorf("Validate() accepted amount %.2f", tt.amount)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"  hello  ", "hello"},
		{"<script>alert(1)</script>abc", "alert(1)abc"},
		{"a & b", "a &amp; b"},
		{"<b>bold</b>", "bold"},
	}

	for _, tt := range tests {
		if got := SanitizeString(tt.in); got != tt.expected {
			t.Errorf("SanitizeString(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
