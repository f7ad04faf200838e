package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"queueflow/internal/models"
	"queueflow/internal/store"
)

type authContextKey struct{}

type authInfo struct {
	Session store.Session
	User    models.User
}

// AuthMiddleware resolves the session token into the requesting user. Public
// endpoints pass through without a session, but a valid token still attaches
// the user so handlers can record ticket ownership.
func AuthMiddleware(users store.UserStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := sessionIDFromRequest(r)
		public := isPublicEndpoint(r)

		if sessionID == "" {
			if public {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing session")
			return
		}

		session, user, err := users.GetSession(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				if public {
					next.ServeHTTP(w, r)
					return
				}
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid session")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}

		ctx := context.WithValue(r.Context(), authContextKey{}, authInfo{Session: session, User: user})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) (models.User, bool) {
	value := ctx.Value(authContextKey{})
	if value == nil {
		return models.User{}, false
	}
	info, ok := value.(authInfo)
	if !ok {
		return models.User{}, false
	}
	return info.User, true
}

func requireUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return models.User{}, false
	}
	return user, true
}

func requireAdmin(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := requireUser(w, r)
	if !ok {
		return models.User{}, false
	}
	if user.Role != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "access_denied", "admin role required")
		return models.User{}, false
	}
	return user, true
}

// requireOperator admits operators of the given institution and any admin.
func requireOperator(w http.ResponseWriter, r *http.Request, institutionID int64) (models.User, bool) {
	user, ok := requireUser(w, r)
	if !ok {
		return models.User{}, false
	}
	if user.Role == models.RoleAdmin {
		return user, true
	}
	if user.Role != models.RoleOperator {
		writeError(w, http.StatusForbidden, "access_denied", "operator role required")
		return models.User{}, false
	}
	if user.InstitutionID == nil || *user.InstitutionID != institutionID {
		writeError(w, http.StatusForbidden, "access_denied", "operator is not assigned to this institution")
		return models.User{}, false
	}
	return user, true
}

func sessionIDFromRequest(r *http.Request) string {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	return strings.TrimSpace(r.Header.Get("X-Session-ID"))
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

func isPublicEndpoint(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/metrics", "/api/auth/signup", "/api/auth/login", "/api/queue/summary":
		return true
	case "/api/tickets":
		return r.Method == http.MethodPost
	case "/api/institutions":
		return r.Method == http.MethodGet
	}
	if strings.HasPrefix(r.URL.Path, "/api/institutions/") {
		return r.Method == http.MethodGet
	}
	if strings.HasPrefix(r.URL.Path, "/api/tickets/") {
		if r.Method == http.MethodGet {
			return true
		}
		// Anonymous tickets are cancellable by number possession alone;
		// ownership of registered tickets is enforced in the store.
		return r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/cancel")
	}
	return r.Method == http.MethodOptions
}
