package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"net/http"
	"strings"
)

type contextKey string

const fingerprintContextKey contextKey = "device_fingerprint"

// withFingerprint derives a device fingerprint from stable request
// characteristics and stores it in the context. The login handler falls back
// to it when the body does not carry an explicit fingerprint, so a device
// re-logging-in without one still converges on its existing session row.
func (h *Handler) withFingerprint(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host := r.RemoteAddr
		if hostOnly, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			host = hostOnly
		}

		components := strings.Join([]string{
			r.Header.Get("User-Agent"),
			r.Header.Get("Accept"),
			r.Header.Get("Accept-Language"),
			host,
		}, "|")
		digest := sha256.Sum256([]byte(components))

		ctx := context.WithValue(r.Context(), fingerprintContextKey, hex.EncodeToString(digest[:]))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func fingerprintFromContext(ctx context.Context) string {
	fingerprint, _ := ctx.Value(fingerprintContextKey).(string)
	return fingerprint
}
