package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/PatchLore/living-cards/internal/dtos"
	"github.com/PatchLore/living-cards/internal/services"
	"github.com/PatchLore/living-cards/internal/utils"
)

type CertificateController struct {
	fulfillmentService *services.FulfillmentService
}

func NewCertificateController(fulfillmentService *services.FulfillmentService) *CertificateController {
	return &CertificateController{fulfillmentService: fulfillmentService}
}

// CreateCertificateHandler -> POST /api/v1/certificates
//
// Idempotent trigger: a card that already carries a certificate returns
// the stored one.
func (c *CertificateController) CreateCertificateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Missing shareId", nil, err)
		return
	}

	cert, err := c.fulfillmentService.EnsureCertificate(r.Context(), req.ShareID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrCardNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Card not found", nil, err)
		case errors.Is(err, utils.ErrNotConfigured):
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeNotConfigured, "Certificate service not configured", nil, err)
		default:
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to create certificate", nil, err)
		}
		return
	}

	resp := dtos.CertificateResponse{
		OK:             true,
		CertificateURL: cert.CertificateURL,
		TreeID:         cert.TreeID,
		Species:        cert.Species,
		Location:       cert.Location,
		DatePlanted:    cert.DatePlanted,
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
