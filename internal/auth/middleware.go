package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/flathive/flathive/internal/model"
)

type contextKey string

const sessionKey contextKey = "session"

// Session is the authenticated flatmate attached to a request context.
type Session struct {
	FlatmateID string
	Name       string
	Email      string
}

// SessionFrom returns the session on the context, or nil for an anonymous
// request.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}

// WithSession returns ctx carrying the session. Exposed for tests and the
// CLI's local mode.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// RequireSession rejects anonymous requests and, for authenticated ones,
// attaches the session to the request context. Rejections go through reject
// so the API layer controls the response shape.
func RequireSession(jwt *JWTManager, reject func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromRequest(jwt, r)
			if err != nil {
				reject(w, r, err)
				return
			}
			ctx := WithSession(r.Context(), &Session{FlatmateID: claims.FlatmateID, Name: claims.Name, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession attaches the session when a valid token is present and
// passes anonymous requests through untouched.
func OptionalSession(jwt *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, err := claimsFromRequest(jwt, r); err == nil {
				ctx := WithSession(r.Context(), &Session{FlatmateID: claims.FlatmateID, Name: claims.Name, Email: claims.Email})
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func claimsFromRequest(jwt *JWTManager, r *http.Request) (*Claims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		// SSE clients cannot set headers from EventSource; accept the token
		// as a query parameter on watch endpoints.
		if tok := r.URL.Query().Get("token"); tok != "" {
			return jwt.Validate(tok)
		}
		return nil, ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ErrInvalidToken
	}
	return jwt.Validate(parts[1])
}

// Authorize enforces the flat trust model: every collection operation is open
// to any authenticated flatmate and closed to anonymous callers. It returns
// model.ErrDenied so data-access errors and access errors stay distinct.
func Authorize(ctx context.Context) error {
	if SessionFrom(ctx) == nil {
		return model.ErrDenied
	}
	return nil
}
