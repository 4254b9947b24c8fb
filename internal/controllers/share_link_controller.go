package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PatchLore/living-cards/internal/catalog"
	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/dtos"
	"github.com/PatchLore/living-cards/internal/sharetoken"
	"github.com/PatchLore/living-cards/internal/utils"
)

// ShareLinkController serves the stateless sharing path: a signed token
// carries the personalization, nothing is persisted, and the link stays
// valid for as long as the signing secret is unchanged.
type ShareLinkController struct {
	cfg   *config.Config
	codec *sharetoken.Codec
}

func NewShareLinkController(cfg *config.Config, codec *sharetoken.Codec) *ShareLinkController {
	return &ShareLinkController{cfg: cfg, codec: codec}
}

// CreateShareLinkHandler -> POST /api/v1/share-links
func (c *ShareLinkController) CreateShareLinkHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateShareLinkRequest
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

	token, err := c.codec.Encode(sharetoken.Payload{
		CardKey:   req.CardKey,
		Recipient: req.Recipient,
		Message:   req.Message,
	})
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to create share link", nil, err)
		return
	}

	resp := dtos.CreateShareLinkResponse{
		OK:      true,
		ShareID: token,
		URL:     c.cfg.ShareTokenURL(token),
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ResolveShareLinkHandler -> GET /api/v1/share-links/{token}
//
// Invalid tokens of any kind resolve to 404; the failure reason is logged
// but not exposed.
func (c *ShareLinkController) ResolveShareLinkHandler(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	payload, err := c.codec.Decode(token)
	if err != nil {
		utils.Logger.WithError(err).Info("Rejected share token")
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Card not found", nil)
		return
	}

	entry, ok := catalog.Lookup(payload.CardKey)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Card not found", nil)
		return
	}

	resp := dtos.ResolveShareLinkResponse{
		OK:        true,
		CardKey:   payload.CardKey,
		Recipient: payload.Recipient,
		Message:   payload.Message,
		VideoFile: entry.VideoFile,
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
