package constants

// Checkout session metadata keys. This metadata is the only channel by
// which checkout-time input reaches fulfillment, so the keys must match
// what the storefront sends verbatim.
const (
	MetadataCardKey   = "cardKey"
	MetadataRecipient = "recipient"
	MetadataMessage   = "message"
)

// Share identifiers for persisted cards.
const (
	ShareIDLength         = 10
	ShareIDMaxAttempts    = 5
	ShareIDInsertMaxRetry = 2
)

// Email content.
const (
	EmailSubjectCardReady = "Your card is ready 🌱"
	OrganizationName      = "Living Cards"
)
