// middleware/auth/auth.go
package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/RyanR100/ServiceStack/pkg/access"
)

// Middleware verifies bearer tokens and turns the result into request
// attributes for the access evaluator. With no signing key configured it
// treats every caller as anonymous.
type Middleware struct {
	secret []byte
	header string
	leeway time.Duration
}

// Verify checks the bearer token on a request and returns its subject.
func (m *Middleware) Verify(r *http.Request) (string, bool) {
	if len(m.secret) == 0 {
		return "", false
	}
	raw := strings.TrimSpace(r.Header.Get(m.header))
	if !strings.HasPrefix(raw, "Bearer ") {
		return "", false
	}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

	tok, err := jwt.Parse(raw,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithLeeway(m.leeway),
	)
	if err != nil || !tok.Valid {
		return "", false
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil {
		return "", false
	}
	return sub, true
}

// Attributes reports the authentication attributes of a request.
func (m *Middleware) Attributes(r *http.Request) access.Attributes {
	if _, ok := m.Verify(r); ok {
		return access.Authenticated
	}
	return access.Anonymous
}
