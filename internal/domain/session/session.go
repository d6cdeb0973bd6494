// Package session defines the per-browser console session: login state,
// API credentials and a one-shot flash message.
package session

import (
	"strings"

	"github.com/Strob0t/PartnerConsole/internal/domain/auth"
)

// FlashKind selects the alert style of a flash message.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
	FlashInfo    FlashKind = "info"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

// Session is the server-side state behind one session cookie. Login
// values are set together by Init and cleared together by Teardown.
type Session struct {
	ID       string `json:"id"`
	LoggedIn bool   `json:"logged_in"`

	CompanyShortName       string `json:"company_short_name"`
	AuthToken              string `json:"auth_token"` //nolint:gosec // session field
	RefreshToken           string `json:"refresh_token"`
	RefreshTokenExpiryTime string `json:"refresh_token_expiry_time"`
	UserName               string `json:"user_name,omitempty"`
	Currency               string `json:"currency,omitempty"`
	TenantLogo             string `json:"tenant_logo,omitempty"`
	Pending2FA             bool   `json:"pending_2fa"`

	Flash *Flash `json:"flash,omitempty"`
}

// New returns an anonymous session with the given id.
func New(id string) *Session {
	return &Session{ID: id}
}

// Init records a successful login for tenant.
func (s *Session) Init(tenant string, data auth.Data) {
	*s = Session{
		ID:                     s.ID,
		LoggedIn:               true,
		CompanyShortName:       strings.TrimSpace(tenant),
		AuthToken:              data.Token,
		RefreshToken:           data.RefreshToken,
		RefreshTokenExpiryTime: data.RefreshTokenExpiryTime,
		UserName:               data.Name,
		Currency:               data.Currency,
		TenantLogo:             data.TenantLogo,
		Pending2FA:             data.IsTwoFA,
		Flash:                  s.Flash,
	}
}

// Teardown clears every login value. The id and any pending flash survive
// so the logout confirmation can still be shown.
func (s *Session) Teardown() {
	*s = Session{ID: s.ID, Flash: s.Flash}
}

// Authenticated reports whether the session may see console pages.
func (s *Session) Authenticated() bool {
	return s.LoggedIn && s.AuthToken != "" && !s.Pending2FA
}

// DisplayName is the greeting name, falling back to the tenant short name.
func (s *Session) DisplayName() string {
	if s.UserName != "" {
		return s.UserName
	}
	return s.CompanyShortName
}

// SetFlash queues a message for the next page.
func (s *Session) SetFlash(kind FlashKind, title, message string) {
	s.Flash = &Flash{Kind: kind, Title: title, Message: message}
}

// TakeFlash returns the pending flash, if any, and clears it.
func (s *Session) TakeFlash() *Flash {
	f := s.Flash
	s.Flash = nil
	return f
}
