package dtos

// CreateCheckoutSessionRequest is the storefront's checkout call. The
// personalization fields ride along as session metadata and are the only
// channel by which they reach fulfillment, so all three are required
// before a session (and a payment) can exist.
type CreateCheckoutSessionRequest struct {
	CardKey   string `json:"cardKey" validate:"required"`
	Recipient string `json:"recipient" validate:"required,max=100"`
	Message   string `json:"message" validate:"required,max=1000"`
}

type CreateCheckoutSessionResponse struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

// SessionDTO mirrors the provider's view of a checkout session for the
// success page.
type SessionDTO struct {
	ID            string            `json:"id"`
	AmountTotal   int64             `json:"amountTotal"`
	PaymentStatus string            `json:"paymentStatus"`
	Metadata      map[string]string `json:"metadata"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
}

type GetSessionResponse struct {
	OK      bool       `json:"ok"`
	Session SessionDTO `json:"session"`
}
