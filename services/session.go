package services

import (
	"net/http"

	"Filmoteka/config"

	"github.com/gorilla/sessions"
)

var store *sessions.CookieStore

func InitSessionStore(cfg *config.Config) {
	store = sessions.NewCookieStore([]byte(cfg.SessionSecret))

	secure := false
	if cfg.Environment == "production" {
		secure = true
	}

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func GetSession(r *http.Request) (*sessions.Session, error) {
	return store.Get(r, "filmoteka-session")
}

func SaveSession(w http.ResponseWriter, r *http.Request, session *sessions.Session) error {
	return session.Save(r, w)
}

// AddFlash queues a one-shot message shown on the next rendered page.
func AddFlash(w http.ResponseWriter, r *http.Request, message string) {
	session, err := GetSession(r)
	if err != nil {
		return
	}
	session.AddFlash(message)
	SaveSession(w, r, session)
}

// Flashes drains queued messages. Reading flashes consumes them, so the
// session is saved before returning.
func Flashes(w http.ResponseWriter, r *http.Request) []string {
	session, err := GetSession(r)
	if err != nil {
		return nil
	}
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	SaveSession(w, r, session)

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
