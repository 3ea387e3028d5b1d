package models

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentMethodWhatsApp PaymentMethod = "whatsapp"
	PaymentMethodPaystack PaymentMethod = "paystack"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodWhatsApp || m == PaymentMethodPaystack
}

// OrderDraftItem is one line of the payload sent for payment initialization.
type OrderDraftItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderDraft is assembled at checkout submission and discarded once the
// outcome has been surfaced.
type OrderDraft struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Items   []OrderDraftItem
	Amount  decimal.Decimal
}

// PaymentData is the part of a payment initialization response the checkout
// cares about.
type PaymentData struct {
	AuthorizationURL string `json:"authorization_url,omitempty"`
}

type PaymentResponse struct {
	Data *PaymentData `json:"data,omitempty"`
}

// RedirectURL is empty when the gateway did not ask for a redirect.
func (r *PaymentResponse) RedirectURL() string {
	if r == nil || r.Data == nil {
		return ""
	}
	return r.Data.AuthorizationURL
}
