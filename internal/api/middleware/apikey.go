package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader is the header carrying the shared API key.
const APIKeyHeader = "X-API-KEY"

// unauthorizedBody is the fixed response body for rejected requests.
// The gate answers before any domain logic runs, so the body is constant
// rather than built through the shared response helpers.
const unauthorizedBody = `{"error":"Unauthorized","message":"Invalid or missing API key"}`

// APIKeyMiddleware gates every request behind one shared static API key.
// There is no per-key identity, no session, and no expiry: the key is a
// process-wide configuration value read once at startup.
type APIKeyMiddleware struct {
	apiKey string
}

// NewAPIKeyMiddleware creates a new APIKeyMiddleware with the given key.
func NewAPIKeyMiddleware(apiKey string) *APIKeyMiddleware {
	return &APIKeyMiddleware{
		apiKey: apiKey,
	}
}

// Authenticate compares the X-API-KEY header against the configured secret
// and short-circuits with 401 on mismatch or absence. The comparison is
// constant-time to avoid leaking key prefixes through response timing.
func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestKey := r.Header.Get(APIKeyHeader)

		if subtle.ConstantTimeCompare([]byte(requestKey), []byte(m.apiKey)) != 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(unauthorizedBody))
			return
		}

		next.ServeHTTP(w, r)
	})
}
