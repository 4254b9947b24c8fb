package services

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"

	"github.com/PatchLore/living-cards/internal/utils"
)

type stripeGateway struct{}

// NewStripeGateway sets the global Stripe key and returns the live
// PaymentGateway implementation.
func NewStripeGateway(secretKey string) PaymentGateway {
	stripe.Key = secretKey
	return &stripeGateway{}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(params.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	if len(params.Metadata) > 0 {
		sessionParams.Metadata = make(map[string]string, len(params.Metadata))
		for k, v := range params.Metadata {
			sessionParams.Metadata[k] = v
		}
	}
	sessionParams.Context = ctx

	s, err := session.New(sessionParams)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session create: %w", err)
	}
	return &CheckoutSession{
		SessionID:   s.ID,
		RedirectURL: s.URL,
	}, nil
}

func (g *stripeGateway) RetrieveSession(ctx context.Context, sessionID string) (*SessionDetails, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx

	s, err := session.Get(sessionID, getParams)
	if err != nil {
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, fmt.Errorf("%w: %s", utils.ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("stripe checkout session retrieve: %w", err)
	}

	details := &SessionDetails{
		ID:            s.ID,
		AmountTotal:   s.AmountTotal,
		PaymentStatus: string(s.PaymentStatus),
		Metadata:      s.Metadata,
	}
	if s.CustomerDetails != nil {
		details.CustomerEmail = s.CustomerDetails.Email
	}
	if details.CustomerEmail == "" {
		details.CustomerEmail = s.CustomerEmail
	}
	return details, nil
}
