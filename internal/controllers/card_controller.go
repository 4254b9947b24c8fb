package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PatchLore/living-cards/internal/catalog"
	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/dtos"
	"github.com/PatchLore/living-cards/internal/repositories"
	"github.com/PatchLore/living-cards/internal/services"
	"github.com/PatchLore/living-cards/internal/utils"
)

type CardController struct {
	cfg                *config.Config
	cardRepo           repositories.CardRepository
	fulfillmentService *services.FulfillmentService
}

func NewCardController(cfg *config.Config, cardRepo repositories.CardRepository, fulfillmentService *services.FulfillmentService) *CardController {
	return &CardController{
		cfg:                cfg,
		cardRepo:           cardRepo,
		fulfillmentService: fulfillmentService,
	}
}

// CreateCardHandler -> POST /api/v1/cards
//
// Success-page reconciliation: confirms the session is paid with the
// provider, then runs the same idempotent fulfillment the webhook uses.
func (c *CardController) CreateCardHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid request body", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Missing sessionId", nil, err)
		return
	}

	card, err := c.fulfillmentService.ReconcileSession(r.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrSessionNotFound):
			utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Session not found", nil, err)
		case errors.Is(err, utils.ErrSessionNotPaid), errors.Is(err, utils.ErrMissingMetadata):
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Session is not eligible for fulfillment", nil, err)
		case errors.Is(err, utils.ErrShareIDExhausted):
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeShareIDExhausted, "Could not allocate share id", nil, err)
		case errors.Is(err, utils.ErrNotConfigured):
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeNotConfigured, "Server not configured", nil, err)
		default:
			utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to create card", nil, err)
		}
		return
	}

	resp := dtos.CreateCardResponse{
		OK:       true,
		ShareID:  card.ShareID,
		ShareURL: c.cfg.CardURL(card.ShareID),
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetCardHandler -> GET /api/v1/cards/{shareID}
func (c *CardController) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	shareID := mux.Vars(r)["shareID"]

	card, err := c.cardRepo.GetByShareID(r.Context(), shareID)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to fetch card", nil, err)
		return
	}
	if card == nil {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Card not found", nil)
		return
	}

	resp := dtos.FetchCardResponse{OK: true, Card: card}
	if entry, ok := catalog.Lookup(card.CardKey); ok {
		resp.VideoFile = entry.VideoFile
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
