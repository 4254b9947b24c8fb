package routes

const (
	Health = "/health"

	Catalog          = "/api/v1/catalog"
	CheckoutSessions = "/api/v1/checkout/sessions"
	CheckoutSession  = "/api/v1/checkout/sessions/{sessionID}"
	Cards            = "/api/v1/cards"
	CardByShareID    = "/api/v1/cards/{shareID}"
	Certificates     = "/api/v1/certificates"
	ShareLinks       = "/api/v1/share-links"
	ShareLinkByToken = "/api/v1/share-links/{token}"
	StripeWebhook    = "/api/v1/webhooks/stripe"
)
