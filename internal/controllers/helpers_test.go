package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/models"
	"github.com/PatchLore/living-cards/internal/repositories"
	"github.com/PatchLore/living-cards/internal/services"
	"github.com/PatchLore/living-cards/internal/utils"
)

// Shared fakes for controller tests. They back a real FulfillmentService
// so the handlers run the same code paths production does, with only the
// edges (storage, provider, email, trees) stubbed.

type stubCardRepo struct {
	cardsBySession map[string]*models.Card
	cardsByShareID map[string]*models.Card
	createErr      error
	creates        int
}

func newStubCardRepo() *stubCardRepo {
	return &stubCardRepo{
		cardsBySession: make(map[string]*models.Card),
		cardsByShareID: make(map[string]*models.Card),
	}
}

func (r *stubCardRepo) CreateCard(ctx context.Context, params repositories.CreateCardParams) (*models.Card, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.creates++
	if existing, ok := r.cardsBySession[params.StripeSessionID]; ok {
		return existing, nil
	}
	card := &models.Card{
		ID:                  uuid.New(),
		ShareID:             utils.RandomShareID(10),
		CardKey:             params.CardKey,
		RecipientName:       params.RecipientName,
		Message:             params.Message,
		StripeSessionID:     params.StripeSessionID,
		StripeCustomerEmail: params.StripeCustomerEmail,
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}
	r.cardsBySession[params.StripeSessionID] = card
	r.cardsByShareID[card.ShareID] = card
	return card, nil
}

func (r *stubCardRepo) GetByShareID(ctx context.Context, shareID string) (*models.Card, error) {
	return r.cardsByShareID[shareID], nil
}

func (r *stubCardRepo) GetByStripeSessionID(ctx context.Context, sessionID string) (*models.Card, error) {
	return r.cardsBySession[sessionID], nil
}

func (r *stubCardRepo) MarkEmailSent(ctx context.Context, cardID uuid.UUID) error { return nil }

func (r *stubCardRepo) AttachTreeCertificate(ctx context.Context, cardID uuid.UUID, cert models.TreeCertificate) error {
	return nil
}

type stubGateway struct {
	created     *services.CheckoutSession
	createErr   error
	details     *services.SessionDetails
	retrieveErr error
}

func (g *stubGateway) CreateCheckoutSession(ctx context.Context, params services.CreateSessionParams) (*services.CheckoutSession, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.created, nil
}

func (g *stubGateway) RetrieveSession(ctx context.Context, sessionID string) (*services.SessionDetails, error) {
	if g.retrieveErr != nil {
		return nil, g.retrieveErr
	}
	return g.details, nil
}

type stubEmailSender struct{ err error }

func (e *stubEmailSender) SendCardReadyEmail(ctx context.Context, toEmail, recipientName, cardURL string) error {
	return e.err
}

type stubCertIssuer struct {
	cert *models.TreeCertificate
	err  error
}

func (c *stubCertIssuer) IssueCertificate(ctx context.Context, shareID string) (*models.TreeCertificate, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.cert, nil
}

func controllerTestConfig() *config.Config {
	return &config.Config{
		AppName:             "card-service",
		SiteURL:             "https://livingcards.example",
		StripeSecretKey:     "sk_test_x",
		StripeWebhookSecret: "whsec_test",
		StripePriceID:       "price_x",
		ShareTokenSecret:    []byte("test-share-token-secret"),
	}
}

func newTestFulfillment(cfg *config.Config, repo repositories.CardRepository, gw *stubGateway) *services.FulfillmentService {
	return services.NewFulfillmentService(cfg, repo, gw, &stubEmailSender{}, &stubCertIssuer{err: utils.ErrNotConfigured})
}

func serve(router *mux.Router, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(rr *httptest.ResponseRecorder, into interface{}) error {
	return json.NewDecoder(rr.Body).Decode(into)
}

func decodeErrorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp utils.ErrorResponse
	require.NoError(t, decodeBody(rr, &errResp))
	return errResp.Code
}
