package auth

import (
	"context"
	"net/http"
	"strings"

	apperrors "carrental/pkg/errors"
	httputil "carrental/pkg/http"
	"carrental/pkg/logger"
	"carrental/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// UserLoader resolves a token subject to a stored user.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Middleware guards httprouter handles with bearer-token authentication.
type Middleware struct {
	tokens *TokenManager
	users  UserLoader
	log    *logger.Logger
}

func NewMiddleware(tokens *TokenManager, users UserLoader, log *logger.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		log:    log,
	}
}

// Protect rejects requests without a valid bearer token and attaches the
// caller's identity to the request context.
func (m *Middleware) Protect(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token, ok := bearerToken(r)
		if !ok {
			m.reject(w, apperrors.Unauthorized("Missing bearer token"))
			return
		}

		userID, _, err := m.tokens.Verify(token)
		if err != nil {
			m.reject(w, apperrors.Unauthorized("Invalid or expired token"))
			return
		}

		user, err := m.users.FindByID(r.Context(), userID)
		if err != nil {
			m.log.Warn("Token subject not resolvable", "user_id", userID, "error", err)
			m.reject(w, apperrors.Unauthorized("Invalid or expired token"))
			return
		}

		ctx := WithIdentity(r.Context(), Identity{ID: user.ID, Role: user.Role})
		next(w, r.WithContext(ctx), ps)
	}
}

// RequireOwner additionally demands the owner role.
func (m *Middleware) RequireOwner(next httprouter.Handle) httprouter.Handle {
	return m.Protect(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, ok := FromContext(r.Context())
		if !ok || identity.Role != model.RoleOwner {
			m.reject(w, apperrors.Forbidden("Owner role required"))
			return
		}
		next(w, r, ps)
	})
}

func (m *Middleware) reject(w http.ResponseWriter, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		m.log.Error("failed to write error response", "middleware", "auth", "error", writeErr)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
