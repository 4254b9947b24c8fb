package sharetoken

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	c, err := NewCodec([]byte("test-share-secret"))
	require.NoError(t, err)
	return c
}

func TestNewCodecRejectsEmptySecret(t *testing.T) {
	_, err := NewCodec(nil)
	require.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	payloads := []Payload{
		{CardKey: "starlit-christmas-tree", Recipient: "Maya", Message: "Happy Holidays!"},
		{CardKey: "warm-wishes", Recipient: "Chris", Message: "With unicode: 🌱 and \"quotes\""},
		{CardKey: "heart-of-light", Recipient: "A", Message: strings.Repeat("x", 1000)},
	}

	for _, p := range payloads {
		token, err := codec.Encode(p)
		require.NoError(t, err)
		require.Contains(t, token, ".")

		decoded, err := codec.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, p, decoded)
	}
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	codec := newTestCodec(t)

	for _, token := range []string{"", "no-separator", "a.b.c", "..."} {
		_, err := codec.Decode(token)
		require.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Encode(Payload{CardKey: "warm-wishes", Recipient: "Maya", Message: "hi"})
	require.NoError(t, err)

	// Flip one character of the payload segment; the signature no longer
	// matches.
	mutated := []byte(token)
	if mutated[0] == 'A' {
		mutated[0] = 'B'
	} else {
		mutated[0] = 'A'
	}
	_, err = codec.Decode(string(mutated))
	require.ErrorIs(t, err, ErrInvalidSignature)

	// Tampering with the signature segment fails the same way.
	sep := strings.LastIndex(token, ".")
	tamperedSig := token[:sep+1] + "AAAA" + token[sep+5:]
	_, err = codec.Decode(tamperedSig)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewCodec([]byte("a-different-secret"))
	require.NoError(t, err)

	token, err := codec.Encode(Payload{CardKey: "warm-wishes", Recipient: "Maya", Message: "hi"})
	require.NoError(t, err)

	_, err = other.Decode(token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeRejectsIncompletePayload(t *testing.T) {
	codec := newTestCodec(t)

	cases := []Payload{
		{Recipient: "Maya", Message: "hi"},
		{CardKey: "warm-wishes", Message: "hi"},
		{CardKey: "warm-wishes", Recipient: "Maya"},
		{},
	}
	for _, p := range cases {
		token, err := codec.Encode(p)
		require.NoError(t, err)

		_, err = codec.Decode(token)
		require.ErrorIs(t, err, ErrInvalidPayload)
	}
}
