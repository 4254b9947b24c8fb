package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/models"
	"github.com/PatchLore/living-cards/internal/repositories"
	"github.com/PatchLore/living-cards/internal/utils"
)

type fakeCardRepo struct {
	cardsBySession map[string]*models.Card
	cardsByShareID map[string]*models.Card
	creates        []repositories.CreateCardParams
	emailMarked    []uuid.UUID
	attached       []models.TreeCertificate
	attachErr      error
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{
		cardsBySession: make(map[string]*models.Card),
		cardsByShareID: make(map[string]*models.Card),
	}
}

func (r *fakeCardRepo) CreateCard(ctx context.Context, params repositories.CreateCardParams) (*models.Card, error) {
	r.creates = append(r.creates, params)
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

func (r *fakeCardRepo) GetByShareID(ctx context.Context, shareID string) (*models.Card, error) {
	return r.cardsByShareID[shareID], nil
}

func (r *fakeCardRepo) GetByStripeSessionID(ctx context.Context, sessionID string) (*models.Card, error) {
	return r.cardsBySession[sessionID], nil
}

func (r *fakeCardRepo) MarkEmailSent(ctx context.Context, cardID uuid.UUID) error {
	r.emailMarked = append(r.emailMarked, cardID)
	return nil
}

func (r *fakeCardRepo) AttachTreeCertificate(ctx context.Context, cardID uuid.UUID, cert models.TreeCertificate) error {
	if r.attachErr != nil {
		return r.attachErr
	}
	r.attached = append(r.attached, cert)
	return nil
}

type fakeGateway struct {
	created        *CheckoutSession
	createdParams  []CreateSessionParams
	createErr      error
	sessionDetails *SessionDetails
	retrieveErr    error
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*CheckoutSession, error) {
	g.createdParams = append(g.createdParams, params)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.created, nil
}

func (g *fakeGateway) RetrieveSession(ctx context.Context, sessionID string) (*SessionDetails, error) {
	if g.retrieveErr != nil {
		return nil, g.retrieveErr
	}
	return g.sessionDetails, nil
}

type fakeEmailSender struct {
	sent []string
	err  error
}

func (e *fakeEmailSender) SendCardReadyEmail(ctx context.Context, toEmail, recipientName, cardURL string) error {
	if e.err != nil {
		return e.err
	}
	e.sent = append(e.sent, toEmail)
	return nil
}

type fakeCertIssuer struct {
	cert   *models.TreeCertificate
	err    error
	issued int
}

func (c *fakeCertIssuer) IssueCertificate(ctx context.Context, shareID string) (*models.TreeCertificate, error) {
	c.issued++
	if c.err != nil {
		return nil, c.err
	}
	return c.cert, nil
}

func testConfig() *config.Config {
	return &config.Config{
		SiteURL:         "https://livingcards.example",
		StripeSecretKey: "sk_test_x",
		StripePriceID:   "price_x",
	}
}

func testMetadata() map[string]string {
	return map[string]string{
		"cardKey":   "starlit-christmas-tree",
		"recipient": "Maya",
		"message":   "Happy Holidays!",
	}
}

func newTestFulfillment(repo *fakeCardRepo, gw *fakeGateway, email *fakeEmailSender, certs *fakeCertIssuer) *FulfillmentService {
	return NewFulfillmentService(testConfig(), repo, gw, email, certs)
}

func TestFulfillPaymentCreatesCardFromMetadata(t *testing.T) {
	repo := newFakeCardRepo()
	certs := &fakeCertIssuer{err: utils.ErrNotConfigured}
	svc := newTestFulfillment(repo, &fakeGateway{}, &fakeEmailSender{}, certs)

	card, err := svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "buyer@example.com")
	require.NoError(t, err)
	require.NotNil(t, card)

	assert.Equal(t, "starlit-christmas-tree", card.CardKey)
	assert.Equal(t, "Maya", card.RecipientName)
	assert.Equal(t, "Happy Holidays!", card.Message)
	require.NotNil(t, card.StripeCustomerEmail)
	assert.Equal(t, "buyer@example.com", *card.StripeCustomerEmail)
}

func TestFulfillPaymentIsIdempotent(t *testing.T) {
	repo := newFakeCardRepo()
	certs := &fakeCertIssuer{err: utils.ErrNotConfigured}
	svc := newTestFulfillment(repo, &fakeGateway{}, &fakeEmailSender{}, certs)

	first, err := svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "buyer@example.com")
	require.NoError(t, err)
	second, err := svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "buyer@example.com")
	require.NoError(t, err)

	assert.Equal(t, first.ShareID, second.ShareID)
	assert.Len(t, repo.cardsBySession, 1)
}

func TestFulfillPaymentRejectsMissingMetadata(t *testing.T) {
	cases := []map[string]string{
		{},
		{"cardKey": "starlit-christmas-tree"},
		{"cardKey": "starlit-christmas-tree", "recipient": "Maya"},
		{"recipient": "Maya", "message": "Happy Holidays!"},
	}
	for _, metadata := range cases {
		repo := newFakeCardRepo()
		svc := newTestFulfillment(repo, &fakeGateway{}, &fakeEmailSender{}, &fakeCertIssuer{})

		_, err := svc.FulfillPayment(context.Background(), "cs_test_1", metadata, "")
		require.ErrorIs(t, err, utils.ErrMissingMetadata)
		assert.Empty(t, repo.creates, "incomplete metadata must not touch storage")
	}
}

func TestFulfillPaymentEmailFailureDoesNotFailFlow(t *testing.T) {
	repo := newFakeCardRepo()
	email := &fakeEmailSender{err: utils.ErrExternalServiceFailure}
	certs := &fakeCertIssuer{err: utils.ErrNotConfigured}
	svc := newTestFulfillment(repo, &fakeGateway{}, email, certs)

	card, err := svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "buyer@example.com")
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.False(t, card.EmailSent)
	assert.Empty(t, repo.emailMarked)
}

func TestFulfillPaymentSendsEmailOnce(t *testing.T) {
	repo := newFakeCardRepo()
	email := &fakeEmailSender{}
	certs := &fakeCertIssuer{err: utils.ErrNotConfigured}
	svc := newTestFulfillment(repo, &fakeGateway{}, email, certs)

	card, err := svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "buyer@example.com")
	require.NoError(t, err)
	assert.True(t, card.EmailSent)
	require.Len(t, email.sent, 1)

	// Redelivery of the same payment does not resend.
	_, err = svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "buyer@example.com")
	require.NoError(t, err)
	assert.Len(t, email.sent, 1)
	assert.Len(t, repo.emailMarked, 1)
}

func TestFulfillPaymentSkipsEmailWithoutAddress(t *testing.T) {
	repo := newFakeCardRepo()
	email := &fakeEmailSender{}
	certs := &fakeCertIssuer{err: utils.ErrNotConfigured}
	svc := newTestFulfillment(repo, &fakeGateway{}, email, certs)

	card, err := svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "")
	require.NoError(t, err)
	assert.Nil(t, card.StripeCustomerEmail)
	assert.Empty(t, email.sent)
}

func TestFulfillPaymentCertificateFailureDoesNotFailFlow(t *testing.T) {
	repo := newFakeCardRepo()
	certs := &fakeCertIssuer{err: assert.AnError}
	svc := newTestFulfillment(repo, &fakeGateway{}, &fakeEmailSender{}, certs)

	card, err := svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "")
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Empty(t, repo.attached)
}

func TestFulfillPaymentAttachesCertificate(t *testing.T) {
	repo := newFakeCardRepo()
	certs := &fakeCertIssuer{cert: &models.TreeCertificate{
		CertificateURL: "https://trees.example/cert/abc",
		TreeID:         "tree_123",
		Species:        "Oak",
		Location:       "Scotland",
		DatePlanted:    time.Now(),
	}}
	svc := newTestFulfillment(repo, &fakeGateway{}, &fakeEmailSender{}, certs)

	_, err := svc.FulfillPayment(context.Background(), "cs_test_1", testMetadata(), "")
	require.NoError(t, err)
	require.Len(t, repo.attached, 1)
	assert.Equal(t, "tree_123", repo.attached[0].TreeID)
}

func TestReconcileSessionRequiresPaidStatus(t *testing.T) {
	repo := newFakeCardRepo()
	gw := &fakeGateway{sessionDetails: &SessionDetails{
		ID:            "cs_test_1",
		PaymentStatus: "unpaid",
		Metadata:      testMetadata(),
	}}
	svc := newTestFulfillment(repo, gw, &fakeEmailSender{}, &fakeCertIssuer{})

	_, err := svc.ReconcileSession(context.Background(), "cs_test_1")
	require.ErrorIs(t, err, utils.ErrSessionNotPaid)
	assert.Empty(t, repo.creates)
}

func TestReconcileSessionFulfillsPaidSession(t *testing.T) {
	repo := newFakeCardRepo()
	gw := &fakeGateway{sessionDetails: &SessionDetails{
		ID:            "cs_test_1",
		PaymentStatus: "paid",
		Metadata:      testMetadata(),
		CustomerEmail: "buyer@example.com",
	}}
	certs := &fakeCertIssuer{err: utils.ErrNotConfigured}
	svc := newTestFulfillment(repo, gw, &fakeEmailSender{}, certs)

	card, err := svc.ReconcileSession(context.Background(), "cs_test_1")
	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, "cs_test_1", card.StripeSessionID)
}

func TestReconcileSessionPropagatesProviderError(t *testing.T) {
	repo := newFakeCardRepo()
	gw := &fakeGateway{retrieveErr: utils.ErrSessionNotFound}
	svc := newTestFulfillment(repo, gw, &fakeEmailSender{}, &fakeCertIssuer{})

	_, err := svc.ReconcileSession(context.Background(), "cs_missing")
	require.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestEnsureCertificateUnknownCard(t *testing.T) {
	svc := newTestFulfillment(newFakeCardRepo(), &fakeGateway{}, &fakeEmailSender{}, &fakeCertIssuer{})

	_, err := svc.EnsureCertificate(context.Background(), "nonexistent")
	require.ErrorIs(t, err, utils.ErrCardNotFound)
}

func TestEnsureCertificateReturnsStoredCertificate(t *testing.T) {
	repo := newFakeCardRepo()
	planted := time.Now()
	card := &models.Card{
		ID:                 uuid.New(),
		ShareID:            "abc123defg",
		TreeCertificateURL: utils.Ptr("https://trees.example/cert/abc"),
		TreeID:             utils.Ptr("tree_123"),
		TreeSpecies:        utils.Ptr("Oak"),
		TreeLocation:       utils.Ptr("Scotland"),
		TreeDatePlanted:    utils.Ptr(planted),
	}
	repo.cardsByShareID[card.ShareID] = card
	certs := &fakeCertIssuer{}
	svc := newTestFulfillment(repo, &fakeGateway{}, &fakeEmailSender{}, certs)

	cert, err := svc.EnsureCertificate(context.Background(), card.ShareID)
	require.NoError(t, err)
	assert.Equal(t, "tree_123", cert.TreeID)
	assert.Equal(t, 0, certs.issued, "stored certificate must not re-issue")
}

func TestEnsureCertificateIssuesAndAttaches(t *testing.T) {
	repo := newFakeCardRepo()
	card := &models.Card{ID: uuid.New(), ShareID: "abc123defg"}
	repo.cardsByShareID[card.ShareID] = card
	certs := &fakeCertIssuer{cert: &models.TreeCertificate{
		CertificateURL: "https://trees.example/cert/abc",
		TreeID:         "tree_123",
	}}
	svc := newTestFulfillment(repo, &fakeGateway{}, &fakeEmailSender{}, certs)

	cert, err := svc.EnsureCertificate(context.Background(), card.ShareID)
	require.NoError(t, err)
	assert.Equal(t, "tree_123", cert.TreeID)
	require.Len(t, repo.attached, 1)
	assert.Equal(t, 1, certs.issued)
}
