package http

import (
	"net/http"

	"github.com/Strob0t/PartnerConsole/internal/domain/auth"
	"github.com/Strob0t/PartnerConsole/internal/logger"
	"github.com/Strob0t/PartnerConsole/internal/middleware"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

// LoginPage shows the login form, or forwards a signed-in session.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionOf(r)
	switch {
	case sess.Authenticated():
		http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
		return
	case sess.LoggedIn && sess.Pending2FA:
		http.Redirect(w, r, middleware.VerifyOTPPath, http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "login", loginPage{
		layout:    h.layout(r, "Sign in"),
		SignedOut: r.URL.Query().Get("signed_out") == "1",
	})
}

// Login authenticates the posted credentials.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	req := auth.LoginRequest{
		Tenant:   r.PostForm.Get("tenant"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}

	sess := sessionOf(r)
	if err := h.Auth.Login(r.Context(), sess, req, middleware.LanguageFromContext(r.Context())); err != nil {
		status := http.StatusUnauthorized
		switch tenantapi.KindOf(err) {
		case tenantapi.KindInvalidInput:
			status = http.StatusUnprocessableEntity
		case tenantapi.KindTransport, tenantapi.KindTimeout, tenantapi.KindInvalidResponse:
			status = http.StatusBadGateway
		}
		h.render(w, r, status, "login", loginPage{
			layout: h.layout(r, "Sign in"),
			Tenant: req.Tenant,
			Email:  req.Email,
			Error:  messageOr(err, "Authentication failed"),
		})
		return
	}

	if err := middleware.RenewSession(w, r, h.Sessions, h.Cookie); err != nil {
		logger.From(r.Context()).Error("renew session", "error", err)
	}

	if sess.Pending2FA {
		http.Redirect(w, r, middleware.VerifyOTPPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
}

// VerifyOTP tells a user awaiting two-factor verification how to proceed.
func (h *Handlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	sess := sessionOf(r)
	if !sess.LoggedIn || !sess.Pending2FA {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, "verify_otp", messagePage{
		layout:  h.layout(r, "Verification required"),
		Heading: "Two-factor verification required",
		Message: "Your account requires a one-time code. Complete verification with your authenticator, then sign in again.",
	})
}

// LogoutPage asks for confirmation before signing out.
func (h *Handlers) LogoutPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "logout", messagePage{
		layout:  h.layout(r, "Sign out"),
		Heading: "Are you sure?",
		Message: "You will be logged out from your account.",
		BackURL: dashboardPath,
	})
}

// Logout clears the session and returns to the login page.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionOf(r)
	logger.From(r.Context()).Info("logout", "tenant", sess.CompanyShortName)
	h.Auth.Logout(sess)
	middleware.EndSession(w, r, h.Sessions, h.Cookie.Name)
	http.Redirect(w, r, middleware.LoginPath+"?signed_out=1", http.StatusSeeOther)
}
