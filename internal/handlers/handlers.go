// Package handlers maps the HTTP surface onto the credential store, session
// manager and expense ledger. Each handler is a thin adapter: parse form
// fields, call one storage operation, redirect or render.
package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"spendlog/internal/auth"
	"spendlog/internal/config"
	"spendlog/internal/logger"
	"spendlog/internal/models"
	"spendlog/internal/storage"
	"spendlog/web"
)

// Context key type to avoid collisions.
type contextKey string

// UserContextKey is the context key for the authenticated user.
const UserContextKey contextKey = "user"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "session"

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	db            *storage.DB
	tmpl          *template.Template
	log           *logger.Logger
	sessionSecret []byte
	sessionTTL    time.Duration
	secureCookie  bool
}

// New creates a Handlers instance with templates parsed from the embedded
// filesystem.
func New(db *storage.DB, cfg *config.Config, log *logger.Logger) (*Handlers, error) {
	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handlers{
		db:            db,
		tmpl:          tmpl,
		log:           log,
		sessionSecret: []byte(cfg.SessionSecret),
		sessionTTL:    cfg.SessionTTL,
		secureCookie:  cfg.SecureCookie,
	}, nil
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserContextKey).(*models.User); ok {
		return user
	}
	return nil
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, viewName string, data any) {
	if err := h.tmpl.ExecuteTemplate(w, viewName, data); err != nil {
		logger.FromRequest(r).Err(err).Str("view", viewName).Msg("template execution failed")
	}
}

// LoginViewModel holds data for the login page.
type LoginViewModel struct{}

// RegisterViewModel holds data for the registration page.
type RegisterViewModel struct {
	Error string
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", LoginViewModel{})
}

// Login handles the login form submission. A failed login re-renders the
// form without an error message.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "login.html", LoginViewModel{})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.db.GetUserByUsername(username)
	if err != nil || !auth.CheckPassword(password, user.PasswordHash) {
		h.render(w, r, "login.html", LoginViewModel{})
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to generate session token")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	expiresAt := time.Now().Add(h.sessionTTL)
	if err := h.db.CreateSession(token, user.ID, expiresAt); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to create session")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	signed, err := auth.SignSessionToken(token, h.sessionSecret, expiresAt)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to sign session token")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, signed, int(h.sessionTTL.Seconds()))
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", RegisterViewModel{})
}

// Register handles the registration form submission.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, "register.html", RegisterViewModel{Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := strings.TrimSpace(r.FormValue("password"))

	if username == "" || password == "" {
		h.render(w, r, "register.html", RegisterViewModel{Error: "Username and password required"})
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to hash password")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := h.db.CreateUser(username, hash); err != nil {
		if errors.Is(err, storage.ErrUsernameTaken) {
			h.render(w, r, "register.html", RegisterViewModel{Error: "Username already exists"})
			return
		}
		logger.FromRequest(r).Err(err).Msg("failed to create user")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout destroys the session and redirects to the login page.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if token, err := auth.VerifySessionToken(cookie.Value, h.sessionSecret); err == nil {
			if err := h.db.DeleteSession(token); err != nil {
				logger.FromRequest(r).Err(err).Msg("failed to delete session")
			}
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	h.setSessionCookie(w, "", -1)
}
