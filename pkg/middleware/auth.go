package middleware

import (
	"net/http"
	"strings"

	"github.com/arifhossen/shopd/pkg/auth"
	"github.com/arifhossen/shopd/pkg/logger"
	"github.com/arifhossen/shopd/pkg/response"
)

// VerifyToken is the verification gate placed in front of protected catalog
// operations. The two rejection cases carry distinct status codes, which
// callers depend on:
//
//	no Authorization header      → 401 {error:true, message}
//	invalid or expired token     → 403 {error:true, message}
//
// A rejected request is terminated here; the protected handler never runs.
// On success the decoded token payload is attached to the request context
// (auth.ClaimsFromCtx).
func VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.AuthError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		// Expected form: "<scheme> <token>"; the scheme itself is not checked.
		parts := strings.Split(header, " ")
		if len(parts) != 2 {
			response.AuthError(w, http.StatusForbidden, "forbidden access")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			logger.WithCtx(r.Context()).Debug("token rejected", "error", err.Error())
			response.AuthError(w, http.StatusForbidden, "forbidden access")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
	})
}
