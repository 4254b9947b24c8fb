package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/models"
	"github.com/PatchLore/living-cards/internal/utils"
)

// CertificateIssuer requests a tree-planting certificate for a fulfilled
// card. Failures are surfaced to the caller but never block fulfillment.
type CertificateIssuer interface {
	IssueCertificate(ctx context.Context, shareID string) (*models.TreeCertificate, error)
}

type treeAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewTreeCertificateIssuer talks to the external tree-planting API. The
// issuer reports not_configured when the API URL is absent so callers can
// skip the step instead of erroring the whole flow.
func NewTreeCertificateIssuer(cfg *config.Config) CertificateIssuer {
	return &treeAPIClient{
		baseURL: cfg.TreeAPIURL,
		apiKey:  cfg.TreeAPIKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type treePlantRequest struct {
	Reference string `json:"reference"`
}

type treePlantResponse struct {
	CertificateURL string    `json:"certificate_url"`
	TreeID         string    `json:"tree_id"`
	Species        string    `json:"species"`
	Location       string    `json:"location"`
	DatePlanted    time.Time `json:"date_planted"`
}

func (c *treeAPIClient) IssueCertificate(ctx context.Context, shareID string) (*models.TreeCertificate, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: tree api url missing", utils.ErrNotConfigured)
	}

	body, err := json.Marshal(treePlantRequest{Reference: shareID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/trees", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: tree api request: %v", utils.ErrExternalServiceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: tree api status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}

	var planted treePlantResponse
	if err := json.NewDecoder(resp.Body).Decode(&planted); err != nil {
		return nil, fmt.Errorf("%w: tree api response decode: %v", utils.ErrExternalServiceFailure, err)
	}

	return &models.TreeCertificate{
		CertificateURL: planted.CertificateURL,
		TreeID:         planted.TreeID,
		Species:        planted.Species,
		Location:       planted.Location,
		DatePlanted:    planted.DatePlanted,
	}, nil
}
