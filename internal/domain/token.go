package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// linkTokenBytes is the entropy behind every link token: 32 bytes from
// crypto/rand, rendered as 64 hex characters. Collisions are out of
// reach at that size; the unique index on unique_links.token is the
// backstop.
const linkTokenBytes = 32

var ErrTokenTooShort = errors.New("token below minimum length")

// LinkToken is the bearer secret behind a unique link. It is a distinct
// type so the plaintext cannot wander into log lines through a plain
// string parameter; String renders a redacted prefix.
type LinkToken string

func NewLinkToken() (LinkToken, error) {
	buf := make([]byte, linkTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return LinkToken(hex.EncodeToString(buf)), nil
}

// ParseLinkToken wraps a presented token value. Anything shorter than a
// generated token can never match a stored row, so it is rejected
// before the lookup.
func ParseLinkToken(s string) (LinkToken, error) {
	if len(s) < 2*linkTokenBytes {
		return "", ErrTokenTooShort
	}
	return LinkToken(s), nil
}

// Reveal returns the raw secret. Callers are the store lookup and the
// issuance response; nothing else should touch the plaintext.
func (t LinkToken) Reveal() string { return string(t) }

func (t LinkToken) String() string {
	if len(t) < 8 {
		return "token:…"
	}
	return "token:" + string(t[:8]) + "…"
}
