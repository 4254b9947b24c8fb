package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PatchLore/living-cards/internal/catalog"
	"github.com/PatchLore/living-cards/internal/dtos"
	"github.com/PatchLore/living-cards/internal/services"
	"github.com/PatchLore/living-cards/internal/utils"
)

type CheckoutController struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutController(checkoutService *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkoutService: checkoutService}
}

// CreateSessionHandler -> POST /api/v1/checkout/sessions
func (c *CheckoutController) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateCheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Missing cardKey, recipient, or message", nil, err)
		return
	}
	if _, ok := catalog.Lookup(req.CardKey); !ok {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Unknown card key", nil)
		return
	}

	session, err := c.checkoutService.CreateSession(r.Context(), req.CardKey, req.Recipient, req.Message)
	if err != nil {
		if errors.Is(err, utils.ErrNotConfigured) {
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeNotConfigured, "Server not configured", nil, err)
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to create checkout session", nil, err)
		return
	}

	resp := dtos.CreateCheckoutSessionResponse{
		SessionID:   session.SessionID,
		RedirectURL: session.RedirectURL,
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetSessionHandler -> GET /api/v1/checkout/sessions/{sessionID}
func (c *CheckoutController) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionID"]
	if sessionID == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Missing sessionID", nil)
		return
	}

	details, err := c.checkoutService.RetrieveSession(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrSessionNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Session not found", nil, err)
		case errors.Is(err, utils.ErrNotConfigured):
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeNotConfigured, "Server not configured", nil, err)
		default:
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeExternalServiceFailure, "Failed to load session", nil, err)
		}
		return
	}

	resp := dtos.GetSessionResponse{
		OK: true,
		Session: dtos.SessionDTO{
			ID:            details.ID,
			AmountTotal:   details.AmountTotal,
			PaymentStatus: details.PaymentStatus,
			Metadata:      details.Metadata,
			CustomerEmail: details.CustomerEmail,
		},
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
