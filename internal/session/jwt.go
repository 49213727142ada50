package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// The token is opaque to the client except for the exp claim, which it may
// decode locally to pre-empt a doomed round trip. No signature check here;
// the server is the authority, this is only an optimization.

// DecodeExpiry returns the exp claim of a JWT-shaped token. ok is false when
// the token doesn't decode as a JWT or carries no exp.
func DecodeExpiry(tok string) (time.Time, bool) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return time.Time{}, false
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(b, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.Exp, 0), true
}

// Expired reports whether the token is locally known to be dead. Tokens that
// don't decode are not judged here; the server gets the final word.
func Expired(tok string) bool {
	exp, ok := DecodeExpiry(tok)
	return ok && time.Now().After(exp)
}
