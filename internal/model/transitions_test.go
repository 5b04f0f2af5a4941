package model

import (
	"testing"
)

// TestCanTransitionStatus tests the fulfillment status transition table
func TestCanTransitionStatus(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected bool
	}{
		// Allowed transitions
		{
			name:     "pending to processing",
			from:     StatusPending,
			to:       StatusProcessing,
			expected: true,
		},
		{
			name:     "pending to cancelled",
			from:     StatusPending,
			to:       StatusCancelled,
			expected: true,
		},
		{
			name:     "processing to completed",
			from:     StatusProcessing,
			to:       StatusCompleted,
			expected: true,
		},
		{
			name:     "processing to cancelled",
			from:     StatusProcessing,
			to:       StatusCancelled,
			expected: true,
		},
		{
			name:     "same status is a no-op",
			from:     StatusProcessing,
			to:       StatusProcessing,
			expected: true,
		},
		// Rejected transitions
		{
			name:     "pending cannot jump to completed",
			from:     StatusPending,
			to:       StatusCompleted,
			expected: false,
		},
		{
			name:     "completed is terminal",
			from:     StatusCompleted,
			to:       StatusProcessing,
			expected: false,
		},
		{
			name:     "cancelled is terminal",
			from:     StatusCancelled,
			to:       StatusPending,
			expected: false,
		},
		{
			name:     "unknown status never transitions",
			from:     "shipped",
			to:       StatusCompleted,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionStatus(tt.from, tt.to); got != tt.expected {
				t.Errorf("CanTransitionStatus(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

// TestCanTransitionPaymentStatus tests the payment status transition table
func TestCanTransitionPaymentStatus(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		expected bool
	}{
		{
			name:     "pending to paid",
			from:     PaymentStatusPending,
			to:       PaymentStatusPaid,
			expected: true,
		},
		{
			name:     "pending to failed",
			from:     PaymentStatusPending,
			to:       PaymentStatusFailed,
			expected: true,
		},
		{
			name:     "paid to completed",
			from:     PaymentStatusPaid,
			to:       PaymentStatusCompleted,
			expected: true,
		},
		{
			name:     "failed back to pending for manual re-verification",
			from:     PaymentStatusFailed,
			to:       PaymentStatusPending,
			expected: true,
		},
		{
			name:     "pending cannot jump to completed",
			from:     PaymentStatusPending,
			to:       PaymentStatusCompleted,
			expected: false,
		},
		{
			name:     "completed is terminal",
			from:     PaymentStatusCompleted,
			to:       PaymentStatusPending,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransitionPaymentStatus(tt.from, tt.to); got != tt.expected {
				t.Errorf("CanTransitionPaymentStatus(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestValidDeviceType(t *testing.T) {
	for _, dt := range []string{DeviceIPhone, DeviceIPad, DeviceMac} {
		if !ValidDeviceType(dt) {
			t.Errorf("ValidDeviceType(%q) = false, want true", dt)
		}
	}

	for _, dt := range []string{"", "android", "IPHONE", "watch"} {
		if ValidDeviceType(dt) {
			t.Errorf("ValidDeviceType(%q) = true, want false", dt)
		}
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PaymentMethodCard, PaymentMethodPayPal, PaymentMethodUSDT} {
		if !ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = false, want true", m)
		}
	}

	for _, m := range []string{"", "bitcoin", "USDT"} {
		if ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = true, want false", m)
		}
	}
}
