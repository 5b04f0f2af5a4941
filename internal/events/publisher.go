package events

import (
	"fixsmart/internal/model"
)

// requestEvent is the wire shape broadcast to admin dashboard clients.
type requestEvent struct {
	ID            int    `json:"id"`
	Reference     string `json:"reference"`
	DeviceType    string `json:"device_type"`
	Email         string `json:"email"`
	PaymentMethod string `json:"payment_method"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
}

func eventFor(req *model.UnlockRequest) requestEvent {
	return requestEvent{
		ID:            req.ID,
		Reference:     req.Reference,
		DeviceType:    req.DeviceType,
		Email:         req.Email,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Status:        req.Status,
		Amount:        req.Amount.StringFixed(2),
	}
}

// PublishRequestCreated notifies connected admins of a new submission.
// Broadcast failure never affects the main flow.
func PublishRequestCreated(req *model.UnlockRequest) {
	broadcastToAll("request:created", eventFor(req))
}

// PublishRequestUpdated notifies connected admins of a status change.
func PublishRequestUpdated(req *model.UnlockRequest) {
	broadcastToAll("request:updated", eventFor(req))
}
