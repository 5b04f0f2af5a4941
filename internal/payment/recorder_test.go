package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// fakeHashChecker is an in-memory HashChecker
type fakeHashChecker struct {
	hashes map[string]bool
	err    error
}

func (f *fakeHashChecker) TxHashExists(ctx context.Context, hash string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.hashes[hash], nil
}

func newRecorder(hashes map[string]bool) *Recorder {
	if hashes == nil {
		hashes = map[string]bool{}
	}
	return NewRecorder(&fakeHashChecker{hashes: hashes}, nil)
}

var amount = decimal.RequireFromString("89.00")

func TestProcess_Card(t *testing.T) {
	r := newRecorder(nil)

	out, err := r.Process(context.Background(), "card", Payload{Token: "tok_visa", Last4: "4242", Brand: "visa"}, amount)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	if out.Status != OutcomePaid {
		t.Errorf("Expected status paid, got %s", out.Status)
	}
	if out.TransactionID == "" {
		t.Error("Expected a generated transaction id")
	}
	if out.Last4 != "4242" || out.Brand != "visa" {
		t.Errorf("Expected card details echoed, got last4=%s brand=%s", out.Last4, out.Brand)
	}
}

func TestProcess_Card_MissingToken(t *testing.T) {
	r := newRecorder(nil)

	out, err := r.Process(context.Background(), "card", Payload{}, amount)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	if out.Status != OutcomeFailed {
		t.Errorf("Expected status failed, got %s", out.Status)
	}
	if out.Error == "" {
		t.Error("Expected an error message in the outcome")
	}
}

func TestProcess_PayPal(t *testing.T) {
	r := newRecorder(nil)

	out, err := r.Process(context.Background(), "paypal", Payload{OrderID: "O-123", PaymentID: "PAY-456", PayerID: "P-789"}, amount)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	if out.Status != OutcomePaid {
		t.Errorf("Expected status paid, got %s", out.Status)
	}
	if out.TransactionID != "PAY-456" || out.OrderID != "O-123" {
		t.Errorf("Expected identifiers echoed, got tx=%s order=%s", out.TransactionID, out.OrderID)
	}
}

func TestProcess_PayPal_MissingIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
	}{
		{"missing order id", Payload{PaymentID: "PAY-456"}},
		{"missing payment id", Payload{OrderID: "O-123"}},
		{"missing both", Payload{}},
	}

	r := newRecorder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Process(context.Background(), "paypal", tt.payload, amount)
			if err != nil {
				t.Fatalf("Process() failed: %v", err)
			}
			if out.Status != OutcomeFailed {
				t.Errorf("Expected status failed, got %s", out.Status)
			}
		})
	}
}

func TestProcess_USDT_Pending(t *testing.T) {
	r := newRecorder(nil)

	out, err := r.Process(context.Background(), "usdt", Payload{
		TransactionHash: "abc123def4",
		WalletAddress:   "TQn9Y2khEsLJW1ChVWFMSMeRDow5KcbLSE",
	}, amount)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	// USDT is never auto-confirmed
	if out.Status != OutcomePending {
		t.Errorf("Expected status pending, got %s", out.Status)
	}
	if out.TxHash != "abc123def4" {
		t.Errorf("Expected normalized tx hash, got %s", out.TxHash)
	}
	if out.WalletAddress == "" {
		t.Error("Expected wallet address carried through")
	}
}

func TestProcess_USDT_HashNormalizedToLowercase(t *testing.T) {
	r := newRecorder(nil)

	out, err := r.Process(context.Background(), "usdt", Payload{TransactionHash: "ABC123DEF4"}, amount)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}

	if out.TxHash != "abc123def4" {
		t.Errorf("Expected lowercased hash, got %s", out.TxHash)
	}
}

func TestProcess_USDT_InvalidHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"too short", "abc123"},
		{"empty", ""},
		{"illegal characters", "abc 123 def 4!"},
	}

	r := newRecorder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Process(context.Background(), "usdt", Payload{TransactionHash: tt.hash}, amount)
			if err != nil {
				t.Fatalf("Process() failed: %v", err)
			}
			if out.Status != OutcomeFailed {
				t.Errorf("Expected status failed for hash %q, got %s", tt.hash, out.Status)
			}
		})
	}
}

func TestProcess_USDT_DuplicateHash(t *testing.T) {
	r := newRecorder(map[string]bool{"abc123def4": true})

	_, err := r.Process(context.Background(), "usdt", Payload{TransactionHash: "abc123def4"}, amount)
	if !errors.Is(err, ErrDuplicateTransaction) {
		t.Fatalf("Expected ErrDuplicateTransaction, got %v", err)
	}
}

func TestProcess_USDT_DuplicateCheckIsCaseInsensitive(t *testing.T) {
	r := newRecorder(map[string]bool{"abc123def4": true})

	_, err := r.Process(context.Background(), "usdt", Payload{TransactionHash: "ABC123DEF4"}, amount)
	if !errors.Is(err, ErrDuplicateTransaction) {
		t.Fatalf("Expected ErrDuplicateTransaction for case-variant hash, got %v", err)
	}
}

func TestProcess_USDT_LookupFailure(t *testing.T) {
	r := NewRecorder(&fakeHashChecker{err: errors.New("connection refused")}, nil)

	_, err := r.Process(context.Background(), "usdt", Payload{TransactionHash: "abc123def4"}, amount)
	if err == nil {
		t.Fatal("Expected error when the hash lookup fails")
	}
	if errors.Is(err, ErrDuplicateTransaction) {
		t.Fatal("Lookup failure must not be reported as a duplicate")
	}
}

func TestProcess_UnsupportedMethod(t *testing.T) {
	r := newRecorder(nil)

	out, err := r.Process(context.Background(), "bitcoin", Payload{}, amount)
	if err != nil {
		t.Fatalf("Process() failed: %v", err)
	}
	if out.Status != OutcomeFailed {
		t.Errorf("Expected status failed, got %s", out.Status)
	}
}

func TestValidateUSDTHash(t *testing.T) {
	tests := []struct {
		hash  string
		valid bool
	}{
		{"abc123def4", true},
		{"4e8b3f2a9c1d5e7f6a0b8c2d4e6f8a0b1c3d5e7f9a1b3c5d7e9f0a2b4c6d8e0f", true},
		{"  abc123def4  ", true},
		{"short", false},
		{"", false},
		{"has spaces in it", false},
		{strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		if got := ValidateUSDTHash(tt.hash); got != tt.valid {
			t.Errorf("ValidateUSDTHash(%q) = %v, want %v", tt.hash, got, tt.valid)
		}
	}
}
