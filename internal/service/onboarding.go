package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/codes"

	pcotel "github.com/Strob0t/PartnerConsole/internal/adapter/otel"
	"github.com/Strob0t/PartnerConsole/internal/domain"
	"github.com/Strob0t/PartnerConsole/internal/domain/onboarding"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

// ErrNotFinalStep is returned when a draft is submitted before the last step.
var ErrNotFinalStep = errors.New("submission is only allowed from the final step")

// CreateRecorder observes created partners.
type CreateRecorder interface {
	RecordTenantCreated(ctx context.Context)
}

// OnboardingService submits onboarding drafts.
type OnboardingService struct {
	api      tenantapi.Tenants
	sessions *SessionService
	metrics  CreateRecorder
}

// NewOnboardingService creates an OnboardingService.
func NewOnboardingService(api tenantapi.Tenants, sessions *SessionService) *OnboardingService {
	return &OnboardingService{api: api, sessions: sessions}
}

// SetMetrics attaches a creation recorder.
func (s *OnboardingService) SetMetrics(m CreateRecorder) {
	s.metrics = m
}

// Submit creates a partner from d. On success d is reset and stored for
// sessionID and the server message is returned. Failures leave d as it was;
// validation failures never reach the network.
func (s *OnboardingService) Submit(ctx context.Context, sessionID string, d *onboarding.Draft, creds tenantapi.Credentials) (string, error) {
	if !d.IsFinalStep() {
		return "", &tenantapi.Error{
			Kind:    tenantapi.KindInvalidInput,
			Op:      "submit",
			Message: onboarding.MissingMessage,
			Err:     fmt.Errorf("%w: %w", domain.ErrValidation, ErrNotFinalStep),
		}
	}
	if err := d.Validate(); err != nil {
		return "", &tenantapi.Error{
			Kind:    tenantapi.KindInvalidInput,
			Op:      "submit",
			Message: onboarding.MissingMessage,
			Err:     err,
		}
	}

	ctx, span := pcotel.StartSubmitSpan(ctx, sessionID, len(d.Directors), len(d.UBOs))
	defer span.End()

	res, err := s.api.CreateTenant(ctx, d.BuildPayload(), creds)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, tenantapi.Message(err))
		slog.Error("create tenant", "company", d.Company.Name, "kind", tenantapi.KindOf(err), "error", err)
		return "", err
	}

	slog.Info("tenant created", "company", d.Company.Name, "short", d.Company.ShortForm)
	if s.metrics != nil {
		s.metrics.RecordTenantCreated(ctx)
	}

	d.Reset()
	if err := s.sessions.SaveDraft(ctx, sessionID, d); err != nil {
		slog.Warn("store reset draft", "session_id", sessionID, "error", err)
	}
	return res.Message, nil
}
