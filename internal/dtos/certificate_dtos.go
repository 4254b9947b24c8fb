package dtos

import "time"

type CreateCertificateRequest struct {
	ShareID string `json:"shareId" validate:"required"`
}

type CertificateResponse struct {
	OK             bool      `json:"ok"`
	CertificateURL string    `json:"certificate_url"`
	TreeID         string    `json:"tree_id"`
	Species        string    `json:"species,omitempty"`
	Location       string    `json:"location,omitempty"`
	DatePlanted    time.Time `json:"date_planted,omitempty"`
}
