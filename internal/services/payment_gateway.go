package services

import "context"

// CreateSessionParams is everything the provider needs to build a hosted
// checkout page for one card.
type CreateSessionParams struct {
	PriceID    string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is the provider's handle on a newly created session.
type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

// SessionDetails is the read-back view of a session used by the success
// page and by reconciliation.
type SessionDetails struct {
	ID            string
	AmountTotal   int64
	PaymentStatus string
	Metadata      map[string]string
	CustomerEmail string
}

// PaymentGateway abstracts the payment provider's session API. The stripe
// implementation is constructed once at process start with validated
// configuration.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (*SessionDetails, error)
}
