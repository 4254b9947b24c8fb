// Package sharetoken implements the stateless signed-token card sharing
// scheme. A token is the base64url-encoded JSON payload joined to an
// HMAC-SHA256 signature over that encoded segment:
//
//	<payload_b64>.<signature_b64>
//
// Tokens carry no expiry; they remain valid as long as the signing secret
// is unchanged. Anyone holding a link can view the card indefinitely.
package sharetoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

var (
	ErrMalformedToken   = errors.New("malformed_token")
	ErrInvalidSignature = errors.New("invalid_token_signature")
	ErrInvalidPayload   = errors.New("invalid_token_payload")
)

// Payload is the personalization bundle a token carries.
type Payload struct {
	CardKey   string `json:"cardKey"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

// Codec signs and verifies share tokens with a process-wide secret.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("share token secret must not be empty")
	}
	return &Codec{secret: secret}, nil
}

// Encode serializes the payload and signs it.
func (c *Codec) Encode(p Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	payloadB64 := base64.RawURLEncoding.EncodeToString(raw)
	return payloadB64 + "." + c.sign(payloadB64), nil
}

// Decode verifies the signature and deserializes the payload. The
// signature is checked before the payload is parsed, using a
// constant-time comparison.
func (c *Codec) Decode(token string) (Payload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return Payload{}, ErrMalformedToken
	}
	payloadB64, sig := parts[0], parts[1]

	if !hmac.Equal([]byte(sig), []byte(c.sign(payloadB64))) {
		return Payload{}, ErrInvalidSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(payloadB64)
	if err != nil {
		return Payload{}, ErrMalformedToken
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, ErrInvalidPayload
	}
	if p.CardKey == "" || p.Recipient == "" || p.Message == "" {
		return Payload{}, ErrInvalidPayload
	}
	return p, nil
}

func (c *Codec) sign(payloadB64 string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payloadB64))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
