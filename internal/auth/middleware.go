package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type tokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

type claimsKey struct{}

// Guard checks bearer tokens for required permissions. A Guard built without
// a validator lets every request through.
type Guard struct {
	tokens tokenValidator
	logger zerolog.Logger
}

func NewGuard(tokens tokenValidator, logger zerolog.Logger) *Guard {
	return &Guard{tokens: tokens, logger: logger.With().Str("component", "auth").Logger()}
}

// Enabled reports whether tokens are checked at all.
func (g *Guard) Enabled() bool {
	return g.tokens != nil
}

// Authorize returns the caller's claims when the request carries a valid
// bearer token granting perm. It fails with ErrUnauthorized or ErrForbidden.
func (g *Guard) Authorize(r *http.Request, perm string) (*jwt.Claims, error) {
	if !g.Enabled() {
		return nil, nil
	}

	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := g.tokens.Validate(token)
	if err != nil {
		g.logger.Warn().Err(err).Msg("token validation failed")
		return nil, ErrUnauthorized
	}
	if !claims.HasPermission(perm) {
		return claims, ErrForbidden
	}
	return claims, nil
}

// RequirePermission rejects requests lacking perm with 401 or 403.
func (g *Guard) RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := g.Authorize(r, perm)
			switch {
			case errors.Is(err, ErrForbidden):
				httperrors.RespondForbidden(w)
				return
			case err != nil:
				httperrors.RespondUnauthorized(w)
				return
			}
			if claims != nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the claims stored by RequirePermission.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims, ok
}
