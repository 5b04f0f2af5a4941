package model

// Allowed status transitions. Completed and cancelled are terminal;
// same-value writes are always permitted.
var statusTransitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

var paymentStatusTransitions = map[string][]string{
	PaymentStatusPending:   {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusPaid:      {PaymentStatusCompleted},
	PaymentStatusFailed:    {PaymentStatusPending},
	PaymentStatusCompleted: {},
}

// CanTransitionStatus reports whether a fulfillment status change is allowed.
// Setting the same value again is always allowed (no-op writes from the
// admin form).
func CanTransitionStatus(from, to string) bool {
	return canTransition(statusTransitions, from, to)
}

// CanTransitionPaymentStatus reports whether a payment status change is allowed.
func CanTransitionPaymentStatus(from, to string) bool {
	return canTransition(paymentStatusTransitions, from, to)
}

func canTransition(table map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	next, ok := table[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
