package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/hr-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type claimsKey struct{}

// WithClaims attaches the authenticated HR user to ctx.
func WithClaims(ctx context.Context, claims jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the HR user set by AuthRequired.
func ClaimsFromContext(ctx context.Context) (jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.Claims)
	return claims, ok
}

// Verifier reads the bearer token from the Authorization header only.
func Verifier(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(ja, jwtauth.TokenFromHeader)
}

// AuthRequired rejects requests whose token is missing or failed verification.
// It must run after Verifier.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())

		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			response.HandleError(w, auth.ErrNoToken)
			return
		}
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		claims, err := jwt.ClaimsFromToken(token)
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
	return http.HandlerFunc(hfn)
}
