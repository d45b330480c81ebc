package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/isdelr/linkstart-be/internal/api/respond"
	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/rs/zerolog/hlog"
)

// TokenValidator is the part of TokenService the middleware needs.
type TokenValidator interface {
	Validate(tokenStr string, kind TokenKind) (string, error)
}

type contextKey string

// SubjectKey is the context key for the authenticated username.
const SubjectKey = contextKey("subject")

// WithSubject returns a copy of ctx carrying subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, SubjectKey, subject)
}

// SubjectFromContext returns the username bound by Middleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok && subject != ""
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", common.ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrUnauthenticated
	}
	return token, nil
}

// Middleware rejects requests without a valid access token and binds the
// token subject to the request context. It never consults the store.
func Middleware(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := BearerToken(r)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				respond.Detail(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			subject, err := tokens.Validate(tokenStr, AccessToken)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				if errors.Is(err, common.ErrExpiredToken) {
					respond.Detail(w, http.StatusUnauthorized, "Token expired")
					return
				}
				hlog.FromRequest(r).Debug().Err(err).Msg("Rejected bearer token")
				respond.Detail(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}
