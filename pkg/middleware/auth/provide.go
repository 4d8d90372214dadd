package auth

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ProvideAuthentication wires defaults and env config.
func ProvideAuthentication() *Middleware {
	leeway := 60 * time.Second
	if v := strings.TrimSpace(os.Getenv("AUTH_LEEWAY_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			leeway = time.Duration(n) * time.Second
		}
	}

	header := strings.TrimSpace(os.Getenv("AUTH_TOKEN_HEADER"))
	if header == "" {
		header = "Authorization"
	}

	return &Middleware{
		secret: []byte(strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))),
		header: header,
		leeway: leeway,
	}
}

// NewWithSecret is the direct constructor used by tests and embedded hosts.
func NewWithSecret(secret []byte) *Middleware {
	return &Middleware{secret: secret, header: "Authorization", leeway: time.Minute}
}
