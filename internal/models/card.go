package models

import (
	"time"

	"github.com/google/uuid"
)

// Card represents one purchased, personalized digital greeting. A card is
// created exactly once per confirmed payment; the Stripe checkout session
// id is the idempotency key.
type Card struct {
	ID                  uuid.UUID  `json:"id"`
	ShareID             string     `json:"share_id"`
	CardKey             string     `json:"card_key"`
	RecipientName       string     `json:"recipient_name"`
	Message             string     `json:"message"`
	StripeSessionID     string     `json:"stripe_session_id"`
	StripeCustomerEmail *string    `json:"stripe_customer_email,omitempty"`
	EmailSent           bool       `json:"email_sent"`
	TreeCertificateURL  *string    `json:"tree_certificate_url,omitempty"`
	TreeID              *string    `json:"tree_id,omitempty"`
	TreeSpecies         *string    `json:"tree_species,omitempty"`
	TreeLocation        *string    `json:"tree_location,omitempty"`
	TreeDatePlanted     *time.Time `json:"tree_date_planted,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TreeCertificate holds the tree-planting details attached to a card after
// certificate generation completes.
type TreeCertificate struct {
	CertificateURL string
	TreeID         string
	Species        string
	Location       string
	DatePlanted    time.Time
}

// HasCertificate reports whether certificate generation already ran for
// this card.
func (c *Card) HasCertificate() bool {
	return c.TreeCertificateURL != nil && *c.TreeCertificateURL != ""
}
