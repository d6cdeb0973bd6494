// Package auth defines the login request and the authentication result
// returned by the remote auth API.
package auth

import (
	"errors"
	"net/mail"
	"strings"
)

// LoginRequest is the input collected by the login form.
type LoginRequest struct {
	Tenant   string `json:"-"` // sent as the "tenant" header
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request field, not a hardcoded secret
}

// Validate checks that the LoginRequest has all required fields.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Tenant) == "" {
		return errors.New("Company short name is required")
	}
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("invalid email format")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// AuthenticateBody is the JSON body of POST /api/auth/authenticate.
type AuthenticateBody struct {
	Email              string `json:"email"`
	Password           string `json:"password"` //nolint:gosec // request field
	RegistrationSource string `json:"registrationSource"`
}

// Data is the payload of a successful authentication.
type Data struct {
	Token                  string `json:"token"` //nolint:gosec // response field
	RefreshToken           string `json:"refreshToken"`
	RefreshTokenExpiryTime string `json:"refreshTokenExpiryTime"`
	TenantLogo             string `json:"tenantLogo"`
	IsTwoFA                bool   `json:"isTwoFA"`
	Name                   string `json:"name"`
	Currency               string `json:"currency"`
	UserID                 string `json:"userId,omitempty"`
	TokenExpirationSeconds int    `json:"tokenExpirationInSeconds,omitempty"`
	TrialPeriodExpired     bool   `json:"trialPeriodExpired,omitempty"`
	IsPaidSubscription     bool   `json:"isPaidSubscription,omitempty"`
}
