package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"Filmoteka/models"
	"Filmoteka/services"
)

type contextKey string

const userContextKey contextKey = "current_user"

// redirectToLogin logs the reason and sends the visitor to the login page,
// carrying the original path so login can bounce back.
func redirectToLogin(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Debug("Auth redirect", "reason", reason, "path", r.URL.Path)
	target := "/login/"
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// parseUserID converts the session-stored user id to int64
func parseUserID(userID interface{}) (int64, error) {
	switch v := userID.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, strconv.ErrSyntax
	}
}

// UserFromContext returns the user RequireAuth resolved for this request,
// or nil outside the signed-in route group.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// RequireAuth gates the signed-in area. The resolved user is stored on the
// request context so downstream handlers do not query it again.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := services.GetSession(r)
		if err != nil {
			redirectToLogin(w, r, "No session found")
			return
		}

		userID, ok := session.Values["user_id"]
		if !ok {
			redirectToLogin(w, r, "User not authenticated")
			return
		}

		userIDInt, err := parseUserID(userID)
		if err != nil {
			redirectToLogin(w, r, "Invalid user_id in session")
			return
		}

		// The account may have been deleted since the cookie was issued
		user, err := services.GetUserByID(userIDInt)
		if err != nil {
			redirectToLogin(w, r, "User not found in database")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}
