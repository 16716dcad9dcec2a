package handlers

import (
	"context"
	"net/http"
	"time"

	"spendlog/internal/auth"

	"github.com/go-chi/chi/v5/middleware"
)

// RequireAuth wraps handlers to require an authenticated session. The cookie
// signature is verified before the session is looked up; anything invalid
// clears the cookie and redirects to the login page without running the
// protected handler.
//
// Sessions roll: a session past the halfway point of its lifetime is
// renewed, so active users stay logged in while inactive sessions expire.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		token, err := auth.VerifySessionToken(cookie.Value, h.sessionSecret)
		if err != nil {
			h.clearSessionCookie(w)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		sessionInfo, err := h.db.ValidateSessionWithInfo(token)
		if err != nil {
			h.clearSessionCookie(w)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		now := time.Now()
		if sessionInfo.ExpiresAt.Sub(now) < h.sessionTTL/2 {
			newExpiresAt := now.Add(h.sessionTTL)
			if err := h.db.RenewSession(token, newExpiresAt); err == nil {
				if signed, err := auth.SignSessionToken(token, h.sessionSecret, newExpiresAt); err == nil {
					h.setSessionCookie(w, signed, int(h.sessionTTL.Seconds()))
				}
			}
			// If renewal fails, continue with the current session.
		}

		ctx := context.WithValue(r.Context(), UserContextKey, sessionInfo.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests attaches a request-scoped logger and emits one line per
// request with method, path, status, size and duration.
func (h *Handlers) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := h.log.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.GetReqID(r.Context())).
			Logger()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(reqLog.WithContext(r.Context())))

		reqLog.Info().
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
