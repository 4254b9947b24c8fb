package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	// Required server configuration (API credential, price reference,
	// site URL) is absent. Checked before any provider call is made.
	ErrNotConfigured = errors.New("not_configured")

	// The payment provider reports no such checkout session.
	ErrSessionNotFound = errors.New("session_not_found")

	// A reconciliation request referenced a session the provider has not
	// yet marked paid.
	ErrSessionNotPaid = errors.New("session_not_paid")

	// No card exists for the given share id.
	ErrCardNotFound = errors.New("card_not_found")

	// Share-id generation failed after the bounded number of attempts.
	ErrShareIDExhausted = errors.New("share_id_exhausted")

	// A verified payment event arrived without the fulfillment metadata
	// (cardKey, recipient, message). Retrying cannot supply the missing
	// data, so callers treat this as permanent.
	ErrMissingMetadata = errors.New("missing_fulfillment_metadata")

	// For external service failures (e.g., Stripe, SendGrid)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
