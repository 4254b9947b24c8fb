package app

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// The core owns a single durable record type. The unique constraints on
// share_id and stripe_session_id are load-bearing: concurrent fulfillment
// relies on them instead of any in-process locking.
const cardsSchema = `
CREATE TABLE IF NOT EXISTS cards (
	id                    UUID PRIMARY KEY,
	share_id              TEXT NOT NULL,
	card_key              TEXT NOT NULL,
	recipient_name        TEXT NOT NULL,
	message               TEXT NOT NULL,
	stripe_session_id     TEXT NOT NULL,
	stripe_customer_email TEXT,
	email_sent            BOOLEAN NOT NULL DEFAULT FALSE,
	tree_certificate_url  TEXT,
	tree_id               TEXT,
	tree_species          TEXT,
	tree_location         TEXT,
	tree_date_planted     TIMESTAMPTZ,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT cards_share_id_key UNIQUE (share_id),
	CONSTRAINT cards_stripe_session_id_key UNIQUE (stripe_session_id)
);
`

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, cardsSchema)
	return err
}
