package dtos

import "github.com/PatchLore/living-cards/internal/models"

// CreateCardRequest is the success-page reconciliation call: the client
// hands back the provider session id and the server confirms payment and
// fulfills idempotently.
type CreateCardRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type CreateCardResponse struct {
	OK       bool   `json:"ok"`
	ShareID  string `json:"shareId"`
	ShareURL string `json:"shareUrl"`
}

type FetchCardResponse struct {
	OK        bool         `json:"ok"`
	Card      *models.Card `json:"card"`
	VideoFile string       `json:"video_file,omitempty"`
}
