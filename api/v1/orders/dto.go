package orders

import "fixsmart/internal/payment"

// SubmitRequest is the USDT-only fast path body: the customer already paid
// to the displayed wallet and submits the transaction hash as proof.
type SubmitRequest struct {
	CustomerEmail   string  `json:"customerEmail"`
	DeviceType      string  `json:"deviceType"`
	DeviceVersion   string  `json:"deviceVersion"`
	IMEISerial      string  `json:"imeiSerial"`
	Description     string  `json:"description"`
	TransactionHash string  `json:"transactionHash"`
	Amount          float64 `json:"amount"`
	WalletAddress   string  `json:"walletAddress"`
}

// ProcessPaymentRequest is the method-dispatch path body.
type ProcessPaymentRequest struct {
	CustomerEmail string          `json:"customerEmail"`
	DeviceType    string          `json:"deviceType"`
	DeviceVersion string          `json:"deviceVersion"`
	IMEISerial    string          `json:"imeiSerial"`
	Description   string          `json:"description"`
	Amount        float64         `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentData   payment.Payload `json:"paymentData"`
}
