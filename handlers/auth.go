package handlers

import (
	"context"
	"html/template"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"Filmoteka/config"
	"Filmoteka/services"
)

var loginTmpl *template.Template
var registerTmpl *template.Template

func init() {
	var err error
	loginTmpl, err = template.New("login").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/login.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse login template:", err)
	}

	registerTmpl, err = template.New("register").Funcs(GetFuncMap()).ParseFiles(
		templatePath("layouts/base.html"),
		templatePath("pages/register.html"),
	)
	if err != nil {
		log.Fatal("Failed to parse register template:", err)
	}
}

type authPageData struct {
	BaseData
	Error      string
	Identifier string
	Username   string
	Email      string
	Next       string
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := authPageData{BaseData: newBaseData(w, r, "/register/")}
		if data.LoggedIn {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderAuthPage(w, registerTmpl, data)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password1 := r.FormValue("password1")
	password2 := r.FormValue("password2")

	renderError := func(msg string) {
		data := authPageData{
			BaseData: newBaseData(w, r, "/register/"),
			Error:    msg,
			Username: username,
			Email:    email,
		}
		renderAuthPage(w, registerTmpl, data)
	}

	if username == "" || email == "" || password1 == "" {
		renderError("Заповніть усі поля")
		return
	}
	if password1 != password2 {
		renderError("Паролі не співпадають")
		return
	}

	exists, err := services.UsernameExists(username)
	if err != nil {
		slog.Error("Registration check failed", "username", username, "error", err)
		renderError("Помилка при реєстрації")
		return
	}
	if exists {
		renderError("Користувач з таким іменем вже існує")
		return
	}

	user, err := services.RegisterUser(username, email, password1)
	if err != nil {
		slog.Error("Registration failed", "username", username, "error", err)
		renderError("Помилка при реєстрації")
		return
	}

	slog.Info("User registered", "username", username, "user_id", user.ID)

	if err := SetupUserSession(w, r, user); err != nil {
		slog.Error("Failed to setup session", "username", username, "error", err)
		http.Redirect(w, r, "/login/", http.StatusSeeOther)
		return
	}

	services.AddFlash(w, r, "Вітаємо! Ви успішно зареєструвалися.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		data := authPageData{
			BaseData: newBaseData(w, r, "/login/"),
			Next:     r.URL.Query().Get("next"),
		}
		if data.LoggedIn {
			// Already signed in, the login page is pointless.
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderAuthPage(w, loginTmpl, data)
		return
	}

	identifier := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if identifier == "" || password == "" {
		renderAuthPage(w, loginTmpl, authPageData{
			BaseData:   newBaseData(w, r, "/login/"),
			Error:      "Введіть логін та пароль",
			Identifier: identifier,
			Next:       r.PostFormValue("next"),
		})
		return
	}

	user, err := services.AuthenticateUser(identifier, password)
	if err != nil {
		slog.Warn("Login failed", "identifier", identifier, "error", err)
		renderAuthPage(w, loginTmpl, authPageData{
			BaseData:   newBaseData(w, r, "/login/"),
			Error:      "Невірний логін або пароль",
			Identifier: identifier,
			Next:       r.PostFormValue("next"),
		})
		return
	}

	if err := SetupUserSession(w, r, user); err != nil {
		slog.Error("Failed to setup session", "identifier", identifier, "error", err)
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	slog.Info("User authenticated", "username", user.Username, "user_id", user.ID)

	// Best-effort avatar import from the configured provider, off the
	// request path. Never overwrites an existing avatar.
	if sourceURL := avatarSourceFor(user.Email); sourceURL != "" {
		go services.ImportRemoteAvatar(context.Background(), user.ID, sourceURL)
	}

	target := "/"
	if r.PostFormValue("next") != "" {
		target = safeRedirectTarget(r, "/")
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func avatarSourceFor(email string) string {
	cfg := config.Load()
	if cfg.AvatarSourceURL == "" {
		return ""
	}
	return strings.ReplaceAll(cfg.AvatarSourceURL, "{email}", url.QueryEscape(email))
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, err := services.GetSession(r)
	if err == nil {
		session.Values = make(map[interface{}]interface{})
		session.Options.MaxAge = -1
		services.SaveSession(w, r, session)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func renderAuthPage(w http.ResponseWriter, tmpl *template.Template, data authPageData) {
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Error rendering auth template", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
