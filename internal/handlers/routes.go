package handlers

import (
	"net/http"

	"spendlog/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the application router.
func (h *Handlers) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	// routes without authentication
	r.Get("/", h.LoginForm)
	r.Post("/", h.Login)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Get("/logout", h.Logout)

	// routes requiring an authenticated session
	r.Group(func(pr chi.Router) {
		pr.Use(h.RequireAuth)
		pr.Get("/dashboard", h.Dashboard)
		pr.Post("/add", h.AddExpense)
		pr.Get("/delete/{id}", h.DeleteExpense)
	})

	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	return r
}
