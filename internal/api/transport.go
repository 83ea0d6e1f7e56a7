package api

import (
	"net/http"
	"strings"

	"storefront/internal/session"
)

// bearerTransport injects the session's bearer token into outgoing requests.
// Authentication endpoints pass through untouched; the check is a deliberate
// path substring match, mirroring the server's route layout.
type bearerTransport struct {
	next   http.RoundTripper
	tokens *session.Holder
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.Contains(req.URL.Path, "/auth/") {
		return t.next.RoundTrip(req)
	}
	token, ok := t.tokens.Get()
	if !ok {
		// No token: send as-is and let the server reject it.
		return t.next.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(clone)
}
