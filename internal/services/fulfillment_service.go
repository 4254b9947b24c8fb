package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/constants"
	"github.com/PatchLore/living-cards/internal/models"
	"github.com/PatchLore/living-cards/internal/repositories"
	"github.com/PatchLore/living-cards/internal/utils"
)

const paymentStatusPaid = "paid"

// FulfillmentService turns a confirmed payment into a persisted card plus
// its side effects. Card creation is the payment-confirmation contract;
// email and certificate are best-effort enrichments that never fail the
// flow once the card exists.
type FulfillmentService struct {
	cfg      *config.Config
	cardRepo repositories.CardRepository
	gateway  PaymentGateway
	email    EmailSender
	certs    CertificateIssuer
}

func NewFulfillmentService(
	cfg *config.Config,
	cardRepo repositories.CardRepository,
	gateway PaymentGateway,
	email EmailSender,
	certs CertificateIssuer,
) *FulfillmentService {
	return &FulfillmentService{
		cfg:      cfg,
		cardRepo: cardRepo,
		gateway:  gateway,
		email:    email,
		certs:    certs,
	}
}

// FulfillPayment handles a verified payment-completed notification. The
// session id is the idempotency key, so the provider may deliver the same
// event any number of times.
func (s *FulfillmentService) FulfillPayment(ctx context.Context, sessionID string, metadata map[string]string, customerEmail string) (*models.Card, error) {
	cardKey := metadata[constants.MetadataCardKey]
	recipient := metadata[constants.MetadataRecipient]
	message := metadata[constants.MetadataMessage]
	if cardKey == "" || recipient == "" || message == "" {
		return nil, fmt.Errorf("%w: session %s metadata=%v", utils.ErrMissingMetadata, sessionID, metadata)
	}

	params := repositories.CreateCardParams{
		CardKey:         cardKey,
		RecipientName:   recipient,
		Message:         message,
		StripeSessionID: sessionID,
	}
	if customerEmail != "" {
		params.StripeCustomerEmail = utils.Ptr(customerEmail)
	}

	card, err := s.cardRepo.CreateCard(ctx, params)
	if err != nil {
		return nil, err
	}

	s.sendEmailBestEffort(ctx, card, customerEmail)
	s.issueCertificateBestEffort(ctx, card)

	return card, nil
}

// ReconcileSession is the success-page path: the client hands back a
// session id, we confirm the payment state with the provider and run the
// same idempotent fulfillment the webhook would.
func (s *FulfillmentService) ReconcileSession(ctx context.Context, sessionID string) (*models.Card, error) {
	details, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if details.PaymentStatus != paymentStatusPaid {
		return nil, fmt.Errorf("%w: session %s has payment_status %q", utils.ErrSessionNotPaid, sessionID, details.PaymentStatus)
	}
	return s.FulfillPayment(ctx, details.ID, details.Metadata, details.CustomerEmail)
}

// EnsureCertificate triggers certificate generation for a card if it does
// not already carry one. Repeat calls return the stored certificate.
func (s *FulfillmentService) EnsureCertificate(ctx context.Context, shareID string) (*models.TreeCertificate, error) {
	card, err := s.cardRepo.GetByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, fmt.Errorf("%w: share_id %s", utils.ErrCardNotFound, shareID)
	}
	if card.HasCertificate() {
		return &models.TreeCertificate{
			CertificateURL: utils.Val(card.TreeCertificateURL),
			TreeID:         utils.Val(card.TreeID),
			Species:        utils.Val(card.TreeSpecies),
			Location:       utils.Val(card.TreeLocation),
			DatePlanted:    utils.Val(card.TreeDatePlanted),
		}, nil
	}

	cert, err := s.certs.IssueCertificate(ctx, card.ShareID)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.AttachTreeCertificate(ctx, card.ID, *cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *FulfillmentService) sendEmailBestEffort(ctx context.Context, card *models.Card, customerEmail string) {
	if customerEmail == "" || card.EmailSent {
		return
	}
	cardURL := s.cfg.CardURL(card.ShareID)
	if err := s.email.SendCardReadyEmail(ctx, customerEmail, card.RecipientName, cardURL); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to send fulfillment email for card %s", card.ShareID)
		return
	}
	if err := s.cardRepo.MarkEmailSent(ctx, card.ID); err != nil {
		utils.Logger.WithError(err).Errorf("Email sent but could not mark email_sent for card %s", card.ShareID)
		return
	}
	card.EmailSent = true
}

func (s *FulfillmentService) issueCertificateBestEffort(ctx context.Context, card *models.Card) {
	if card.HasCertificate() {
		return
	}
	cert, err := s.certs.IssueCertificate(ctx, card.ShareID)
	if err != nil {
		if errors.Is(err, utils.ErrNotConfigured) {
			utils.Logger.Debugf("Certificate issuer not configured; skipping for card %s", card.ShareID)
		} else {
			utils.Logger.WithError(err).Errorf("Failed to issue tree certificate for card %s", card.ShareID)
		}
		return
	}
	if err := s.cardRepo.AttachTreeCertificate(ctx, card.ID, *cert); err != nil {
		utils.Logger.WithError(err).Errorf("Certificate issued but could not be attached to card %s", card.ShareID)
	}
}
