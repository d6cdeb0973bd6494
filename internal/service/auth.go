package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Strob0t/PartnerConsole/internal/domain"
	"github.com/Strob0t/PartnerConsole/internal/domain/auth"
	"github.com/Strob0t/PartnerConsole/internal/domain/session"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

// LoginRecorder observes login outcomes.
type LoginRecorder interface {
	RecordLogin(ctx context.Context, outcome string)
}

// AuthService signs console users in against the remote auth API.
type AuthService struct {
	api     tenantapi.Authenticator
	metrics LoginRecorder
}

// NewAuthService creates an AuthService.
func NewAuthService(api tenantapi.Authenticator) *AuthService {
	return &AuthService{api: api}
}

// SetMetrics attaches a login recorder.
func (s *AuthService) SetMetrics(m LoginRecorder) {
	s.metrics = m
}

// Login validates req, authenticates it and initializes sess on success.
// A failed login leaves sess untouched.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, req auth.LoginRequest, lang string) error {
	req.Tenant = strings.TrimSpace(req.Tenant)
	req.Email = strings.TrimSpace(req.Email)

	if err := req.Validate(); err != nil {
		s.record(ctx, "invalid")
		return &tenantapi.Error{
			Kind:    tenantapi.KindInvalidInput,
			Op:      "login",
			Message: err.Error(),
			Err:     errors.Join(domain.ErrValidation, err),
		}
	}

	res, err := s.api.Authenticate(ctx, req, tenantapi.Credentials{Tenant: req.Tenant, Language: lang})
	if err != nil {
		s.record(ctx, string(tenantapi.KindOf(err)))
		slog.Info("login failed", "tenant", req.Tenant, "error", err)
		return err
	}

	sess.Init(req.Tenant, res.Data)
	outcome := "ok"
	if sess.Pending2FA {
		outcome = "2fa"
	}
	s.record(ctx, outcome)
	slog.Info("login succeeded", "tenant", req.Tenant, "two_factor", sess.Pending2FA)
	return nil
}

// Logout clears every login value of sess.
func (s *AuthService) Logout(sess *session.Session) {
	sess.Teardown()
}

func (s *AuthService) record(ctx context.Context, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordLogin(ctx, outcome)
	}
}

// Credentials returns the API identity of an authenticated session.
func Credentials(sess *session.Session, lang string) tenantapi.Credentials {
	return tenantapi.Credentials{
		Token:    sess.AuthToken,
		Tenant:   sess.CompanyShortName,
		Language: lang,
	}
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	return tenantapi.Message(err)
}
