package middleware

import (
	"net/http"
	"strings"

	"github.com/achitaan/AR-diagass/internal/pkg/response"
)

// BearerAuth guards write endpoints with a static bearer token. When
// debug is set the check is skipped entirely so local clients need no
// credentials.
func BearerAuth(token string, debug bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if debug {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			provided, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || provided != token {
				response.Error(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
