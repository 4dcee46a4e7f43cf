package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tenuestore/tenue-backend/api/responses"
	pkgAuth "github.com/tenuestore/tenue-backend/pkg/auth"
	"github.com/tenuestore/tenue-backend/pkg/config"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

// RoleLookup resolves the back-office role of an authenticated user.
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (enums.UserRole, error)
}

// Auth validates a bearer token issued by the identity provider and seeds the
// request context with the subject and its stored role.
func Auth(cfg config.JWTConfig, roles RoleLookup, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			role, err := roles.RoleOf(r.Context(), claims.Subject)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithUserID(r.Context(), claims.Subject)
			ctx = WithRole(ctx, role)

			if logg != nil {
				ctx = logg.WithFields(logg.WithUserID(ctx, claims.Subject), map[string]any{
					"actor_role": string(role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
