package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/PatchLore/living-cards/internal/constants"
	"github.com/PatchLore/living-cards/internal/models"
	"github.com/PatchLore/living-cards/internal/utils"
)

const pgUniqueViolation = "23505"

const (
	constraintShareID         = "cards_share_id_key"
	constraintStripeSessionID = "cards_stripe_session_id_key"
)

// CreateCardParams carries the fulfillment payload for a confirmed payment.
type CreateCardParams struct {
	CardKey             string
	RecipientName       string
	Message             string
	StripeSessionID     string
	StripeCustomerEmail *string
}

// CardRepository defines the interface for card persistence operations.
type CardRepository interface {
	// CreateCard is idempotent per StripeSessionID: at most one card ever
	// exists for a payment, and repeated calls return that card.
	CreateCard(ctx context.Context, params CreateCardParams) (*models.Card, error)
	GetByShareID(ctx context.Context, shareID string) (*models.Card, error)
	GetByStripeSessionID(ctx context.Context, sessionID string) (*models.Card, error)
	MarkEmailSent(ctx context.Context, cardID uuid.UUID) error
	AttachTreeCertificate(ctx context.Context, cardID uuid.UUID, cert models.TreeCertificate) error
}

type cardRepo struct {
	db DB
}

// NewCardRepository creates a new instance of the repository.
func NewCardRepository(db DB) CardRepository {
	return &cardRepo{db: db}
}

func selectColumns() string {
	return `id, share_id, card_key, recipient_name, message, stripe_session_id,
			stripe_customer_email, email_sent, tree_certificate_url, tree_id,
			tree_species, tree_location, tree_date_planted, created_at, updated_at`
}

func baseSelectCard() string {
	return "SELECT " + selectColumns() + " FROM cards"
}

func (r *cardRepo) scanCard(row pgx.Row) (*models.Card, error) {
	var c models.Card
	err := row.Scan(
		&c.ID, &c.ShareID, &c.CardKey, &c.RecipientName, &c.Message, &c.StripeSessionID,
		&c.StripeCustomerEmail, &c.EmailSent, &c.TreeCertificateURL, &c.TreeID,
		&c.TreeSpecies, &c.TreeLocation, &c.TreeDatePlanted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cardRepo) CreateCard(ctx context.Context, params CreateCardParams) (*models.Card, error) {
	existing, err := r.GetByStripeSessionID(ctx, params.StripeSessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		utils.Logger.Infof("Card already exists for session %s, returning existing card", params.StripeSessionID)
		return existing, nil
	}

	var lastErr error
	for attempt := 0; attempt < constants.ShareIDInsertMaxRetry; attempt++ {
		shareID, err := utils.GenerateUniqueID(ctx, constants.ShareIDLength, constants.ShareIDMaxAttempts, r.shareIDExists)
		if err != nil {
			return nil, err
		}

		card, err := r.insert(ctx, uuid.New(), shareID, params)
		if err == nil {
			utils.Logger.Infof("Created card share_id=%s for session %s", shareID, params.StripeSessionID)
			return card, nil
		}
		lastErr = err

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case constraintShareID:
				// Lost a race on the generated share id; go around with a
				// fresh one.
				utils.Logger.Warn("Share ID collision on insert, retrying with new id")
				continue
			case constraintStripeSessionID:
				// Concurrent creation for the same payment: the winner's
				// row is the card.
				utils.Logger.Infof("Concurrent card creation for session %s, fetching existing", params.StripeSessionID)
				winner, fetchErr := r.GetByStripeSessionID(ctx, params.StripeSessionID)
				if fetchErr != nil {
					return nil, fetchErr
				}
				if winner == nil {
					return nil, fmt.Errorf("card for session %s exists but could not be retrieved", params.StripeSessionID)
				}
				return winner, nil
			}
		}
		return nil, err
	}
	return nil, fmt.Errorf("failed to create card after share-id insert retries: %w", lastErr)
}

func (r *cardRepo) insert(ctx context.Context, id uuid.UUID, shareID string, params CreateCardParams) (*models.Card, error) {
	q := `
		INSERT INTO cards (
			id, share_id, card_key, recipient_name, message, stripe_session_id,
			stripe_customer_email, email_sent, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW(), NOW())
		RETURNING ` + selectColumns()
	row := r.db.QueryRow(ctx, q,
		id, shareID, params.CardKey, params.RecipientName, params.Message,
		params.StripeSessionID, params.StripeCustomerEmail,
	)
	var c models.Card
	err := row.Scan(
		&c.ID, &c.ShareID, &c.CardKey, &c.RecipientName, &c.Message, &c.StripeSessionID,
		&c.StripeCustomerEmail, &c.EmailSent, &c.TreeCertificateURL, &c.TreeID,
		&c.TreeSpecies, &c.TreeLocation, &c.TreeDatePlanted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByShareID favors availability on the public read path: not-found and
// unexpected storage errors both come back as (nil, nil), with the latter
// logged for operators.
func (r *cardRepo) GetByShareID(ctx context.Context, shareID string) (*models.Card, error) {
	row := r.db.QueryRow(ctx, baseSelectCard()+" WHERE share_id = $1", shareID)
	card, err := r.scanCard(row)
	if err != nil {
		utils.Logger.WithError(err).Errorf("Error fetching card with share_id %s", shareID)
		return nil, nil
	}
	return card, nil
}

func (r *cardRepo) GetByStripeSessionID(ctx context.Context, sessionID string) (*models.Card, error) {
	row := r.db.QueryRow(ctx, baseSelectCard()+" WHERE stripe_session_id = $1", sessionID)
	return r.scanCard(row)
}

func (r *cardRepo) shareIDExists(ctx context.Context, shareID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM cards WHERE share_id = $1)", shareID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// MarkEmailSent flips email_sent to true. Safe to call more than once; the
// flag never reverts.
func (r *cardRepo) MarkEmailSent(ctx context.Context, cardID uuid.UUID) error {
	q := `UPDATE cards SET email_sent = TRUE, updated_at = NOW() WHERE id = $1 AND email_sent = FALSE`
	_, err := r.db.Exec(ctx, q, cardID)
	return err
}

// AttachTreeCertificate records the tree-planting details. Idempotent: a
// repeat call overwrites with the same certificate.
func (r *cardRepo) AttachTreeCertificate(ctx context.Context, cardID uuid.UUID, cert models.TreeCertificate) error {
	q := `
		UPDATE cards SET
			tree_certificate_url = $1,
			tree_id = $2,
			tree_species = $3,
			tree_location = $4,
			tree_date_planted = $5,
			updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, q,
		cert.CertificateURL, cert.TreeID, cert.Species, cert.Location, cert.DatePlanted, cardID)
	return err
}
