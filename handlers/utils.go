package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"Filmoteka/middleware"
	"Filmoteka/models"
	"Filmoteka/services"
)

// BaseData carries the fields every rendered page needs.
type BaseData struct {
	Username    string
	IsAdmin     bool
	LoggedIn    bool
	CurrentPage string
	Flashes     []string
}

func newBaseData(w http.ResponseWriter, r *http.Request, currentPage string) BaseData {
	data := BaseData{CurrentPage: currentPage, Flashes: services.Flashes(w, r)}
	if user, err := GetCurrentUser(r); err == nil && user != nil {
		data.Username = user.Username
		data.IsAdmin = user.IsAdmin
		data.LoggedIn = true
	}
	return data
}

// GetCurrentUser resolves the signed-in user: from the request context when
// RequireAuth already loaded it, otherwise from the session cookie.
func GetCurrentUser(r *http.Request) (*models.User, error) {
	if user := middleware.UserFromContext(r.Context()); user != nil {
		return user, nil
	}

	session, err := services.GetSession(r)
	if err != nil {
		return nil, err
	}

	userID, ok := session.Values["user_id"]
	if !ok {
		return nil, nil
	}

	var userIDInt int64
	switch v := userID.(type) {
	case int64:
		userIDInt = v
	case int:
		userIDInt = int64(v)
	case string:
		var err error
		userIDInt, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}

	return services.GetUserByID(userIDInt)
}

// SetupUserSession stores the user id in the session cookie.
func SetupUserSession(w http.ResponseWriter, r *http.Request, user *models.User) error {
	session, err := services.GetSession(r)
	if err != nil {
		return err
	}
	session.Values["user_id"] = user.ID
	return services.SaveSession(w, r, session)
}

func GetFuncMap() template.FuncMap {
	return template.FuncMap{
		"hasPrefix": strings.HasPrefix,
		"contains":  strings.Contains,
		"typeLabel": models.MediaTypeLabel,
		"statusLabel": func(s string) string {
			return models.WatchlistStatusLabel(s)
		},
		"score": func(avg float64) string {
			if avg == 0 {
				return "—"
			}
			return fmt.Sprintf("%.1f", avg)
		},
		"now": time.Now,
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
	}
}

// safeRedirectTarget resolves where a POST should bounce back to: the
// "next" form value or the Referer, but only when it stays on this host.
// Anything else falls back to the given URL, never an open redirect.
func safeRedirectTarget(r *http.Request, fallback string) string {
	candidate := r.PostFormValue("next")
	if candidate == "" {
		candidate = r.Referer()
	}
	if candidate == "" {
		return fallback
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return fallback
	}
	if parsed.Scheme == "" && parsed.Host == "" {
		// Relative URL, same origin by construction.
		if strings.HasPrefix(parsed.Path, "/") && !strings.HasPrefix(parsed.Path, "//") {
			return candidate
		}
		return fallback
	}
	if parsed.Host == r.Host && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return candidate
	}
	return fallback
}

// pathID parses the numeric {id} segment chi extracted from the URL.
func pathID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// templatePath locates a template file relative to the working directory,
// walking up so the binary and `go test` both find templates/.
func templatePath(name string) string {
	dir := "templates"
	for i := 0; i < 3; i++ {
		candidate := filepath.Join(dir, filepath.FromSlash(name))
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		dir = filepath.Join("..", dir)
	}
	return filepath.Join("templates", filepath.FromSlash(name))
}
