package authpages

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/tasklist/internal/auth"
	"github.com/louisbranch/tasklist/internal/auth/user"
	"github.com/louisbranch/tasklist/internal/storage"
	"github.com/louisbranch/tasklist/internal/web/platform/flash"
	"github.com/louisbranch/tasklist/internal/web/platform/httpx"
	"github.com/louisbranch/tasklist/internal/web/platform/sessioncookie"
	"github.com/louisbranch/tasklist/internal/web/routepath"
	"github.com/louisbranch/tasklist/internal/web/session"
	"github.com/louisbranch/tasklist/internal/web/templates"
)

type handlers struct {
	auth     *auth.Service
	sessions *session.Manager
}

func (h handlers) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	page := templates.PageContext{Title: "Register"}
	if notice, ok := flash.ReadAndClear(w, r); ok {
		page.Notice = &notice
	}
	if err := templates.WritePage(w, r, http.StatusOK, templates.RegisterPage(page, templates.AuthFormData{})); err != nil {
		log.Printf("render register page: %v", err)
	}
}

func (h handlers) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flash.Write(w, r, flash.NoticeError("The submitted form could not be read."))
		httpx.WriteRedirect(w, r, routepath.Register)
		return
	}

	input := user.CreateUserInput{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if _, err := h.auth.Register(httpx.RequestContext(r), input); err != nil {
		flash.Write(w, r, flash.NoticeError(registerFailureMessage(err)))
		httpx.WriteRedirect(w, r, routepath.Register)
		return
	}

	flash.Write(w, r, flash.NoticeSuccess("Account created. Please log in."))
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	page := templates.PageContext{Title: "Log in"}
	if notice, ok := flash.ReadAndClear(w, r); ok {
		page.Notice = &notice
	}
	form := templates.AuthFormData{Next: SanitizeNext(r.URL.Query().Get("next"))}
	if err := templates.WritePage(w, r, http.StatusOK, templates.LoginPage(page, form)); err != nil {
		log.Printf("render login page: %v", err)
	}
}

func (h handlers) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flash.Write(w, r, flash.NoticeError("The submitted form could not be read."))
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}

	next := SanitizeNext(r.PostFormValue("next"))
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	found, err := h.auth.Authenticate(httpx.RequestContext(r), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("authenticate %q: %v", strings.TrimSpace(username), err)
		}
		flash.Write(w, r, flash.NoticeError("Invalid username or password."))
		httpx.WriteRedirect(w, r, loginPathWithNext(next))
		return
	}

	token, err := h.sessions.Issue(found)
	if err != nil {
		log.Printf("issue session: %v", err)
		flash.Write(w, r, flash.NoticeError("Login failed. Please try again."))
		httpx.WriteRedirect(w, r, loginPathWithNext(next))
		return
	}
	sessioncookie.Write(w, r, token)
	if next == "" {
		next = routepath.Root
	}
	httpx.WriteRedirect(w, r, next)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessioncookie.Read(r); !ok {
		flash.Write(w, r, flash.NoticeError("You are not signed in."))
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}
	sessioncookie.Clear(w, r)
	flash.Write(w, r, flash.NoticeSuccess("You have been logged out."))
	httpx.WriteRedirect(w, r, routepath.Login)
}

func registerFailureMessage(err error) string {
	switch {
	case errors.Is(err, storage.ErrDuplicateUsername):
		return "That username is already taken."
	case errors.Is(err, storage.ErrDuplicateEmail):
		return "That email is already registered."
	case errors.Is(err, user.ErrEmptyUsername):
		return "A username is required."
	case errors.Is(err, user.ErrEmptyEmail):
		return "A valid email address is required."
	case errors.Is(err, user.ErrEmptyPassword):
		return "A password is required."
	default:
		return "Registration failed. Please try again."
	}
}

func loginPathWithNext(next string) string {
	if next == "" {
		return routepath.Login
	}
	return routepath.Login + "?next=" + url.QueryEscape(next)
}

// SanitizeNext keeps post-login redirects on this site. Anything that is not
// a same-site absolute path collapses to empty.
func SanitizeNext(raw string) string {
	next := strings.TrimSpace(raw)
	if next == "" || !strings.HasPrefix(next, "/") {
		return ""
	}
	if strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return ""
	}
	return next
}
