// Package http serves the partner console web pages.
package http

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Strob0t/PartnerConsole/internal/domain/session"
	"github.com/Strob0t/PartnerConsole/internal/middleware"
	"github.com/Strob0t/PartnerConsole/internal/service"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

const (
	dashboardPath = "/partner-dashboard"
	addPath       = "/partner-dashboard/add"
)

func viewPath(short string) string { return dashboardPath + "/view/" + url.PathEscape(short) }
func editPath(short string) string { return dashboardPath + "/Edit/" + url.PathEscape(short) }

// Handlers holds the services behind the console pages.
type Handlers struct {
	Auth       *service.AuthService
	Tenants    *service.TenantService
	Onboarding *service.OnboardingService
	Sessions   *service.SessionService
	Cookie     middleware.SessionCookie

	// LoginLimit, when set, wraps the sign-in POST.
	LoginLimit func(http.Handler) http.Handler

	pages pages
	now   func() time.Time
}

// NewHandlers parses the page templates and returns the console handlers.
func NewHandlers(auth *service.AuthService, tenants *service.TenantService, onboarding *service.OnboardingService,
	sessions *service.SessionService, cookie middleware.SessionCookie,
) (*Handlers, error) {
	p, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Handlers{
		Auth:       auth,
		Tenants:    tenants,
		Onboarding: onboarding,
		Sessions:   sessions,
		Cookie:     cookie,
		pages:      p,
		now:        time.Now,
	}, nil
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound renders the console 404 page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "error", messagePage{
		layout:  h.layout(r, "Not found"),
		Heading: "Page not found",
		Message: fmt.Sprintf("Nothing lives at %s.", r.URL.Path),
		BackURL: dashboardPath,
	})
}

// sessionOf returns the request session. The Session middleware guarantees
// one on every console route.
func sessionOf(r *http.Request) *session.Session {
	return middleware.SessionFromContext(r.Context())
}

func credentials(r *http.Request) tenantapi.Credentials {
	return service.Credentials(sessionOf(r), middleware.LanguageFromContext(r.Context()))
}

// messageOr returns the user message for err, or fallback when it has none.
func messageOr(err error, fallback string) string {
	if msg := service.UserMessage(err); msg != "" {
		return msg
	}
	return fallback
}
