package middleware

import "net/http"

// Console page paths used by the guard.
const (
	LoginPath     = "/"
	VerifyOTPPath = "/verify-otp"
)

// RequireAuth redirects sessions that may not see console pages: anonymous
// ones to the login page and those awaiting two-factor verification to the
// verification notice.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		switch {
		case sess == nil || !sess.LoggedIn || sess.AuthToken == "":
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		case sess.Pending2FA:
			http.Redirect(w, r, VerifyOTPPath, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
