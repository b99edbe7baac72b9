package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/englishhq/internal/common"
	"github.com/dmitrijs2005/englishhq/internal/server/auth"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
)

type contextKey int

const userContextKey contextKey = iota

// userFromContext returns the authenticated user the bearerAuth middleware
// stored, or nil outside an authenticated route.
func userFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// bearerAuth verifies the Authorization header, loads the user and rejects
// inactive accounts. Missing, malformed, invalid and expired tokens all get
// the same 401 detail.
func (h *Handler) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, common.BearerPrefix) {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(header, common.BearerPrefix), h.jwtSecret)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		user, err := h.users.GetByID(r.Context(), userID)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		if !user.IsActive {
			writeDetail(w, http.StatusUnauthorized, "Inactive user")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

// adminOnly gates the admin area.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		if user == nil || !user.IsAdmin {
			writeDetail(w, http.StatusForbidden, "Not enough permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}
