package intake

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"fixsmart/internal/httpx"
	"fixsmart/internal/model"

	"github.com/shopspring/decimal"
)

// Submission is the raw customer form payload before any validation.
type Submission struct {
	CustomerEmail string
	DeviceType    string
	DeviceVersion string
	IMEISerial    string
	Description   string
	Amount        float64
}

// Sanitized is a submission that passed validation. All strings are trimmed,
// tag-stripped and HTML-escaped; the amount is normalized to two decimals.
type Sanitized struct {
	Email         string
	DeviceType    string
	DeviceVersion string
	IMEISerial    string
	Description   string
	Amount        decimal.Decimal
}

var (
	// local@domain.tld shape, nothing fancier
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// priceTolerance is the maximum allowed deviation from the canonical price.
var priceTolerance = decimal.NewFromFloat(0.01)

// Validate checks a raw submission against the canonical price for its device
// type and returns the sanitized record. It performs no writes.
func Validate(raw Submission, canonicalPrice decimal.Decimal) (Sanitized, *httpx.AppError) {
	email := strings.TrimSpace(raw.CustomerEmail)
	deviceType := SanitizeString(raw.DeviceType)
	deviceVersion := SanitizeString(raw.DeviceVersion)
	imeiSerial := SanitizeString(raw.IMEISerial)
	description := SanitizeString(raw.Description)

	required := []struct {
		name  string
		value string
	}{
		{"customerEmail", email},
		{"deviceType", deviceType},
		{"deviceVersion", deviceVersion},
		{"imeiSerial", imeiSerial},
	}
	for _, f := range required {
		if f.value == "" {
			return Sanitized{}, httpx.ErrValidation(fmt.Sprintf("missing required field: %s", f.name))
		}
	}

	if !emailPattern.MatchString(email) {
		return Sanitized{}, httpx.ErrValidation("invalid email address")
	}

	if !model.ValidDeviceType(deviceType) {
		return Sanitized{}, httpx.ErrValidation("invalid device type")
	}

	amount := decimal.NewFromFloat(raw.Amount).Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return Sanitized{}, httpx.ErrValidation("invalid payment amount")
	}
	if amount.Sub(canonicalPrice).Abs().GreaterThan(priceTolerance) {
		return Sanitized{}, httpx.ErrValidation("invalid pricing amount")
	}

	return Sanitized{
		Email:         email,
		DeviceType:    deviceType,
		DeviceVersion: deviceVersion,
		IMEISerial:    imeiSerial,
		Description:   description,
		Amount:        amount,
	}, nil
}

// SanitizeString trims whitespace, strips tags and HTML-escapes the rest.
// Stored values are already display-safe; nothing unescapes on the way out.
func SanitizeString(s string) string {
	s = strings.TrimSpace(s)
	s = tagPattern.ReplaceAllString(s, "")
	return html.EscapeString(s)
}
