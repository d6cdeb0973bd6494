package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	pcotel "github.com/Strob0t/PartnerConsole/internal/adapter/otel"
	"github.com/Strob0t/PartnerConsole/internal/domain/dashboard"
	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

// Toggle actions.
const (
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
)

// ToggleRecorder observes activations and deactivations.
type ToggleRecorder interface {
	RecordToggle(ctx context.Context, action string, ok bool)
}

// TenantService reads and toggles partners through the remote API.
type TenantService struct {
	api     tenantapi.Tenants
	metrics ToggleRecorder
	now     func() time.Time
}

// NewTenantService creates a TenantService.
func NewTenantService(api tenantapi.Tenants) *TenantService {
	return &TenantService{api: api, now: time.Now}
}

// SetMetrics attaches a toggle recorder.
func (s *TenantService) SetMetrics(m ToggleRecorder) {
	s.metrics = m
}

// Listing is the dashboard data set: every partner row and its stats.
type Listing struct {
	Rows  []tenant.PartnerRow
	Stats dashboard.Stats
}

// List fetches all partners and projects them into rows.
func (s *TenantService) List(ctx context.Context, creds tenantapi.Credentials) (Listing, error) {
	res, err := s.api.ListTenants(ctx, creds)
	if err != nil {
		slog.Error("list tenants", "error", err)
		return Listing{Rows: []tenant.PartnerRow{}}, err
	}
	rows := tenant.MapToPartnerRows(res.Data)
	return Listing{Rows: rows, Stats: dashboard.ComputeStats(rows)}, nil
}

// Get fetches one partner and projects it into a read-only profile.
func (s *TenantService) Get(ctx context.Context, short string, creds tenantapi.Credentials) (tenant.Profile, error) {
	res, err := s.api.GetTenant(ctx, short, creds)
	if err != nil {
		slog.Error("get tenant", "short", short, "error", err)
		return tenant.Profile{}, err
	}
	return tenant.NewProfile(res.Data, short, s.now()), nil
}

// Toggle activates or deactivates a partner and returns the server message.
func (s *TenantService) Toggle(ctx context.Context, action, short string, creds tenantapi.Credentials) (string, error) {
	ctx, span := pcotel.StartToggleSpan(ctx, action, short)
	defer span.End()

	call := s.api.ActivateTenant
	if action == ActionDeactivate {
		call = s.api.DeactivateTenant
	}

	res, err := call(ctx, short, creds)
	s.record(ctx, action, err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, tenantapi.Message(err))
		slog.Error("toggle tenant", "action", action, "short", short, "kind", tenantapi.KindOf(err), "error", err)
		return "", err
	}
	slog.Info("toggled tenant", "action", action, "short", short)
	return res.Message, nil
}

func (s *TenantService) record(ctx context.Context, action string, ok bool) {
	if s.metrics != nil {
		s.metrics.RecordToggle(ctx, action, ok)
	}
}
