// pkg/transport/httpx/attrs.go
package httpx

import (
	"net"
	"net/http"

	"github.com/RyanR100/ServiceStack/pkg/access"
	"github.com/RyanR100/ServiceStack/pkg/middleware/auth"
)

// RequestAttributes derives the actual access attributes of one HTTP call
// from connection facts: locality from the peer address, transport security
// from TLS state, authentication from the bearer token. ca may be nil.
func RequestAttributes(r *http.Request, ca *auth.Middleware) access.Attributes {
	attrs := access.HTTP

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	switch ip := net.ParseIP(host); {
	case ip == nil:
		attrs |= access.External
	case ip.IsLoopback():
		attrs |= access.Localhost
	case ip.IsPrivate() || ip.IsLinkLocalUnicast():
		attrs |= access.InternalNetwork
	default:
		attrs |= access.External
	}

	if r.TLS != nil {
		attrs |= access.Secure
	} else {
		attrs |= access.Insecure
	}

	if ca != nil {
		attrs |= ca.Attributes(r)
	} else {
		attrs |= access.Anonymous
	}
	return attrs
}
