package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/services"
	"github.com/PatchLore/living-cards/internal/utils"
)

type StripeWebhookController struct {
	cfg                *config.Config
	fulfillmentService *services.FulfillmentService
	dedupService       *services.WebhookDedupService
}

func NewStripeWebhookController(cfg *config.Config, fulfillmentService *services.FulfillmentService, dedupService *services.WebhookDedupService) *StripeWebhookController {
	return &StripeWebhookController{
		cfg:                cfg,
		fulfillmentService: fulfillmentService,
		dedupService:       dedupService,
	}
}

type webhookAck struct {
	Received bool `json:"received"`
}

// WebhookHandler -> POST /api/v1/webhooks/stripe
//
// Verification runs against the unmodified raw request bytes; the body
// must not be parsed or re-serialized before the signature check.
func (c *StripeWebhookController) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeVerificationFailed, "Missing Stripe-Signature header", nil)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to read webhook body", nil, err)
		return
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, c.cfg.StripeWebhookSecret)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeVerificationFailed, "Webhook signature verification failed", nil, err)
		return
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			// Permanent data error: a retry carries the same bytes.
			utils.Logger.WithError(err).Errorf("Could not parse stripe.CheckoutSession object for event %s", event.ID)
			break
		}
		if !c.dedupService.MarkDispatched(event.ID) {
			break
		}
		if err := c.dispatchFulfillment(r, &cs); err != nil {
			c.dedupService.Forget(event.ID)
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Fulfillment failed", nil, err)
			return
		}
	default:
		utils.Logger.Infof("Unhandled Stripe event type received in card-service: %s", event.Type)
	}

	utils.RespondWithJSON(w, http.StatusOK, webhookAck{Received: true})
}

func (c *StripeWebhookController) dispatchFulfillment(r *http.Request, cs *stripe.CheckoutSession) error {
	customerEmail := cs.CustomerEmail
	if cs.CustomerDetails != nil && cs.CustomerDetails.Email != "" {
		customerEmail = cs.CustomerDetails.Email
	}

	_, err := c.fulfillmentService.FulfillPayment(r.Context(), cs.ID, cs.Metadata, customerEmail)
	if err != nil {
		// Metadata the session never carried will not appear on a retry.
		// Accept the event and leave a loud trail for operators instead of
		// making the provider redeliver it forever.
		if errors.Is(err, utils.ErrMissingMetadata) {
			utils.Logger.WithError(err).Errorf("Session %s completed without fulfillment metadata; accepting event without creating a card", cs.ID)
			return nil
		}
		return err
	}
	return nil
}
