package dtos

// CreateShareLinkRequest issues a stateless signed share token. Unlike the
// persisted path there is no payment involved; all three fields are part
// of the token payload and required.
type CreateShareLinkRequest struct {
	CardKey   string `json:"cardKey" validate:"required"`
	Recipient string `json:"recipient" validate:"required,max=100"`
	Message   string `json:"message" validate:"required,max=1000"`
}

type CreateShareLinkResponse struct {
	OK      bool   `json:"ok"`
	ShareID string `json:"shareId"`
	URL     string `json:"url"`
}

type ResolveShareLinkResponse struct {
	OK        bool   `json:"ok"`
	CardKey   string `json:"cardKey"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
	VideoFile string `json:"video_file,omitempty"`
}
