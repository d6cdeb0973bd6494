package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Strob0t/PartnerConsole/internal/middleware"
	"github.com/Strob0t/PartnerConsole/internal/service"
)

// MountRoutes registers the console pages on r. sessions wraps every page
// route; dashboard routes additionally require a signed-in session. Row
// actions live under /actions so no short name can collide with the view,
// edit or add pages.
func MountRoutes(r chi.Router, h *Handlers, sessions func(http.Handler) http.Handler) {
	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(NoStore, sessions)
		r.NotFound(h.NotFound)

		r.Get("/", h.LoginPage)
		login := http.Handler(http.HandlerFunc(h.Login))
		if h.LoginLimit != nil {
			login = h.LoginLimit(login)
		}
		r.Method(http.MethodPost, "/", login)
		r.Get(middleware.VerifyOTPPath, h.VerifyOTP)
		r.Get("/logout", h.LogoutPage)
		r.Post("/logout", h.Logout)

		r.Route(dashboardPath, func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/", h.Dashboard)
			r.Get("/add", h.Wizard)
			r.Post("/add", h.WizardPost)
			r.Get("/view/{short}", h.View)
			r.Get("/Edit/{short}", h.Edit)

			r.Get("/actions/{short}/activate", h.ConfirmToggle(service.ActionActivate))
			r.Post("/actions/{short}/activate", h.Toggle(service.ActionActivate))
			r.Get("/actions/{short}/deactivate", h.ConfirmToggle(service.ActionDeactivate))
			r.Post("/actions/{short}/deactivate", h.Toggle(service.ActionDeactivate))
		})
	})
}
