package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"fixsmart/internal/model"

	"github.com/shopspring/decimal"
)

// EmailData is everything the two templates need, precomputed so the
// templates stay display-only. Customer-entered fields are stored already
// HTML-escaped by the intake sanitizer, so they are typed template.HTML here:
// letting the template engine escape them again would render literal
// "&amp;" entities in mail clients.
type EmailData struct {
	SiteName        string
	OrderID         int
	Reference       string
	DeviceType      string
	DeviceVersion   template.HTML
	IMEISerial      template.HTML
	Email           string
	Description     template.HTML
	Amount          string
	PaymentMethod   string
	PaymentStatus   string
	TransactionHash string
	WalletAddress   template.HTML
}

var paymentMethodDisplay = map[string]string{
	model.PaymentMethodCard:   "Credit Card",
	model.PaymentMethodPayPal: "PayPal",
	model.PaymentMethodUSDT:   "USDT (Cryptocurrency)",
}

// BuildEmailData assembles template data from a stored request.
func BuildEmailData(siteName string, req *model.UnlockRequest, txHash, walletAddress string) EmailData {
	method, ok := paymentMethodDisplay[req.PaymentMethod]
	if !ok {
		method = req.PaymentMethod
	}

	return EmailData{
		SiteName:        siteName,
		OrderID:         req.ID,
		Reference:       req.Reference,
		DeviceType:      titleCase(req.DeviceType),
		DeviceVersion:   template.HTML(req.DeviceVersion),
		IMEISerial:      template.HTML(req.IMEISerial),
		Email:           req.Email,
		Description:     template.HTML(req.Description),
		Amount:          formatAmount(req.Amount),
		PaymentMethod:   method,
		PaymentStatus:   titleCase(req.PaymentStatus),
		TransactionHash: txHash,
		WalletAddress:   template.HTML(walletAddress),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Renderer produces the two independent HTML documents for a request.
type Renderer struct {
	customer *template.Template
	admin    *template.Template
}

// NewRenderer compiles the templates once.
func NewRenderer() *Renderer {
	return &Renderer{
		customer: template.Must(template.New("customer").Parse(customerTemplate)),
		admin:    template.Must(template.New("admin").Parse(adminTemplate)),
	}
}

// CustomerConfirmation renders the customer order confirmation body.
func (r *Renderer) CustomerConfirmation(d EmailData) (string, error) {
	var buf bytes.Buffer
	if err := r.customer.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("failed to render customer confirmation: %w", err)
	}
	return buf.String(), nil
}

// AdminAlert renders the new-request notification body for the admin inbox.
func (r *Renderer) AdminAlert(d EmailData) (string, error) {
	var buf bytes.Buffer
	if err := r.admin.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("failed to render admin alert: %w", err)
	}
	return buf.String(), nil
}

// CustomerSubject builds the customer confirmation subject line.
func CustomerSubject(d EmailData) string {
	return fmt.Sprintf("%s - Service Request Confirmation - Order #%d", d.SiteName, d.OrderID)
}

// AdminSubject builds the admin alert subject line.
func AdminSubject(d EmailData) string {
	return fmt.Sprintf("New %s Service Request - Order #%d", d.SiteName, d.OrderID)
}

const customerTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Order Confirmation</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #007aff; color: white; padding: 20px; text-align: center; }
.content { padding: 30px; background: #f9f9f9; }
.order-details { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; }
.detail-row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #eee; }
.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>{{.SiteName}}</h1>
    <p>Order Confirmation</p>
  </div>
  <div class="content">
    <h2>Thank you for your order!</h2>
    <p><strong>Your unlock request has been received. We are currently working on unlocking your device. Thank you for choosing {{.SiteName}}.</strong></p>
    <div class="order-details">
      <h3>Order Details</h3>
      <div class="detail-row"><span><strong>Order ID:</strong></span><span>#{{.OrderID}}</span></div>
      <div class="detail-row"><span><strong>Reference:</strong></span><span>{{.Reference}}</span></div>
      <div class="detail-row"><span><strong>Device Type:</strong></span><span>{{.DeviceType}}</span></div>
      {{if .DeviceVersion}}<div class="detail-row"><span><strong>Device Version:</strong></span><span>{{.DeviceVersion}}</span></div>{{end}}
      <div class="detail-row"><span><strong>IMEI/Serial:</strong></span><span>{{.IMEISerial}}</span></div>
      <div class="detail-row"><span><strong>Amount:</strong></span><span>${{.Amount}} USD</span></div>
      <div class="detail-row"><span><strong>Payment Method:</strong></span><span>{{.PaymentMethod}}</span></div>
      <div class="detail-row"><span><strong>Payment Status:</strong></span><span>{{.PaymentStatus}}</span></div>
      {{if .TransactionHash}}<div class="detail-row"><span><strong>Transaction Hash:</strong></span><span>{{.TransactionHash}}</span></div>{{end}}
    </div>
    <p>We will notify you by email as soon as your device has been unlocked. Most requests complete within 24-48 hours.</p>
  </div>
  <div class="footer">
    <p>This is an automated message from {{.SiteName}}. Please do not reply to this email.</p>
  </div>
</div>
</body>
</html>`

const adminTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>New Service Request</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #1a1a2e; color: white; padding: 20px; text-align: center; }
.content { padding: 30px; background: #f9f9f9; }
.request-details { background: white; padding: 20px; border-radius: 8px; margin: 20px 0; }
.detail-row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #eee; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>{{.SiteName}} Admin</h1>
    <p>New Service Request</p>
  </div>
  <div class="content">
    <h2>Order #{{.OrderID}} requires attention</h2>
    <div class="request-details">
      <div class="detail-row"><span><strong>Reference:</strong></span><span>{{.Reference}}</span></div>
      <div class="detail-row"><span><strong>Customer:</strong></span><span>{{.Email}}</span></div>
      <div class="detail-row"><span><strong>Device:</strong></span><span>{{.DeviceType}} {{.DeviceVersion}}</span></div>
      <div class="detail-row"><span><strong>IMEI/Serial:</strong></span><span>{{.IMEISerial}}</span></div>
      {{if .Description}}<div class="detail-row"><span><strong>Description:</strong></span><span>{{.Description}}</span></div>{{end}}
      <div class="detail-row"><span><strong>Amount:</strong></span><span>${{.Amount}} USD</span></div>
      <div class="detail-row"><span><strong>Payment Method:</strong></span><span>{{.PaymentMethod}}</span></div>
      <div class="detail-row"><span><strong>Payment Status:</strong></span><span>{{.PaymentStatus}}</span></div>
      {{if .TransactionHash}}<div class="detail-row"><span><strong>Transaction Hash:</strong></span><span>{{.TransactionHash}}</span></div>{{end}}
      {{if .WalletAddress}}<div class="detail-row"><span><strong>Wallet Address:</strong></span><span>{{.WalletAddress}}</span></div>{{end}}
    </div>
    {{if .TransactionHash}}<p><strong>USDT payment: verify the transaction on-chain before processing.</strong></p>{{end}}
  </div>
</div>
</body>
</html>`
