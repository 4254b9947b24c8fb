package utils

import (
	"context"
	"crypto/rand"
	"fmt"
)

// Alphabet used for public share identifiers. URL-safe, no padding.
const shareIDAlphabet = "useandom-26T198340PX75pxJACKVERYMINDBUSHWOLF_GQZbfghjklqvwyzrict"

// RandomShareID returns a random identifier of the given length drawn from
// a 64-character URL-safe alphabet.
func RandomShareID(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = shareIDAlphabet[b[i]&63]
	}
	return string(b)
}

// ExistsFunc reports whether a candidate identifier is already taken.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// GenerateUniqueID draws random identifiers until one passes the exists
// check, bounded by maxAttempts. Returns ErrShareIDExhausted once the
// attempts are spent.
func GenerateUniqueID(ctx context.Context, length, maxAttempts int, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id := RandomShareID(length)
		taken, err := exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
		Logger.Warnf("Share ID collision on attempt %d/%d, regenerating", attempt+1, maxAttempts)
	}
	return "", fmt.Errorf("%w: no unique id after %d attempts", ErrShareIDExhausted, maxAttempts)
}
