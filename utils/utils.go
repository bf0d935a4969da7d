package utils

import (
	rndm "math/rand"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// NewID returns a fresh UUID string.
func NewID() string {
	return uuid.NewString()
}

// --- Session Helpers ---

const SessionHeader = "X-Session-ID"

// GetSessionID reads the visitor session id from the request header.
func GetSessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(SessionHeader))
}

// EnsureSessionID returns the request's session id, generating one and
// echoing it on the response when the client has none yet.
func EnsureSessionID(w http.ResponseWriter, r *http.Request) string {
	sid := GetSessionID(r)
	if sid == "" {
		sid = uuid.NewString()
	}
	w.Header().Set(SessionHeader, sid)
	return sid
}

// --- Phone Normalization ---

// DigitsOnly strips everything but digits from a phone number, the format
// wa.me links expect.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
