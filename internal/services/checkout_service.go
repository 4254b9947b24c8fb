package services

import (
	"context"
	"fmt"

	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/constants"
	"github.com/PatchLore/living-cards/internal/utils"
)

// CheckoutService creates and retrieves payment sessions for cards. The
// metadata attached at creation is the sole channel by which the
// personalization reaches fulfillment; it must round-trip verbatim.
type CheckoutService struct {
	cfg     *config.Config
	gateway PaymentGateway
}

func NewCheckoutService(cfg *config.Config, gateway PaymentGateway) *CheckoutService {
	return &CheckoutService{cfg: cfg, gateway: gateway}
}

// CreateSession builds a single-line-item checkout session for a card.
// Configuration is checked before any provider call.
func (s *CheckoutService) CreateSession(ctx context.Context, cardKey, recipient, message string) (*CheckoutSession, error) {
	if s.cfg.StripeSecretKey == "" || s.cfg.StripePriceID == "" || s.cfg.SiteURL == "" {
		return nil, fmt.Errorf("%w: stripe credentials, price id or site url missing", utils.ErrNotConfigured)
	}

	params := CreateSessionParams{
		PriceID: s.cfg.StripePriceID,
		// The provider substitutes the session id into the placeholder.
		SuccessURL: s.cfg.SiteURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.cfg.SiteURL + "/",
		Metadata: map[string]string{
			constants.MetadataCardKey:   cardKey,
			constants.MetadataRecipient: recipient,
			constants.MetadataMessage:   message,
		},
	}
	return s.gateway.CreateCheckoutSession(ctx, params)
}

// RetrieveSession is read-only; provider errors propagate unmasked.
func (s *CheckoutService) RetrieveSession(ctx context.Context, sessionID string) (*SessionDetails, error) {
	if s.cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("%w: stripe credentials missing", utils.ErrNotConfigured)
	}
	return s.gateway.RetrieveSession(ctx, sessionID)
}
