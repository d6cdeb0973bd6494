package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Strob0t/PartnerConsole/internal/domain/dashboard"
	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

func TestTenantService_List(t *testing.T) {
	api := &fakeAPI{tenants: []tenant.Tenant{
		{CompanyName: "Acme Co", CompanyNameShortForm: "acme", IsActive: true, Modules: []tenant.Module{
			{Name: "Sales", IsActive: true}, {Name: "HR", IsActive: false},
		}},
		{CompanyName: "Beta LLC", CompanyNameShortForm: "beta"},
	}}
	svc := NewTenantService(api)
	creds := tenantapi.Credentials{Token: "tok", Tenant: "root"}

	got, err := svc.List(context.Background(), creds)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got.Rows) != 2 || got.Rows[0].Short != "acme" || got.Rows[1].Company != "Beta LLC" {
		t.Errorf("rows = %+v", got.Rows)
	}
	if diff := cmp.Diff(dashboard.Stats{Total: 2, Active: 1, ActiveModules: 1}, got.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if api.lastCreds != creds {
		t.Errorf("credentials = %+v, want %+v", api.lastCreds, creds)
	}
}

func TestTenantService_ListError(t *testing.T) {
	apiErr := &tenantapi.Error{Kind: tenantapi.KindStatus, Status: 500, Message: "Failed to fetch tenants (500)"}
	svc := NewTenantService(&fakeAPI{listErr: apiErr})

	got, err := svc.List(context.Background(), tenantapi.Credentials{})
	if !errors.Is(err, apiErr) {
		t.Fatalf("err = %v, want the API error", err)
	}
	if got.Rows == nil || len(got.Rows) != 0 {
		t.Errorf("rows = %#v, want empty non-nil", got.Rows)
	}
}

func TestTenantService_Get(t *testing.T) {
	api := &fakeAPI{detail: &tenant.Tenant{CompanyNameShortForm: "acme", FirstName: "Ada", LastName: "Lovelace", IsActive: true}}
	svc := NewTenantService(api)

	p, err := svc.Get(context.Background(), "acme", tenantapi.Credentials{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Short != "acme" || p.AdminName != "Ada Lovelace" || !p.IsActive {
		t.Errorf("profile = %+v", p)
	}
}

func TestTenantService_GetError(t *testing.T) {
	apiErr := &tenantapi.Error{Kind: tenantapi.KindStatus, Status: 404, Message: "Failed to fetch tenant acme"}
	svc := NewTenantService(&fakeAPI{getErr: apiErr})

	if _, err := svc.Get(context.Background(), "acme", tenantapi.Credentials{}); UserMessage(err) != "Failed to fetch tenant acme" {
		t.Fatalf("err = %v", err)
	}
}

func TestTenantService_Toggle(t *testing.T) {
	api := &fakeAPI{toggleMsg: "Done"}
	rec := &recorder{}
	svc := NewTenantService(api)
	svc.SetMetrics(rec)
	ctx := context.Background()

	msg, err := svc.Toggle(ctx, ActionActivate, "acme", tenantapi.Credentials{})
	if err != nil || msg != "Done" {
		t.Fatalf("activate = %q, %v", msg, err)
	}
	if _, err := svc.Toggle(ctx, ActionDeactivate, "beta", tenantapi.Credentials{}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if diff := cmp.Diff([]string{"activate:acme", "deactivate:beta"}, api.toggled); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"activate:ok", "deactivate:ok"}, rec.toggles); diff != "" {
		t.Errorf("metrics (-want +got):\n%s", diff)
	}
}

func TestTenantService_ToggleTimeout(t *testing.T) {
	apiErr := &tenantapi.Error{Kind: tenantapi.KindTimeout, Message: "Request timeout", Err: tenantapi.ErrTimeout}
	rec := &recorder{}
	svc := NewTenantService(&fakeAPI{toggleErr: apiErr})
	svc.SetMetrics(rec)

	_, err := svc.Toggle(context.Background(), ActionActivate, "acme", tenantapi.Credentials{})
	if !errors.Is(err, tenantapi.ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if diff := cmp.Diff([]string{"activate:failed"}, rec.toggles); diff != "" {
		t.Errorf("metrics (-want +got):\n%s", diff)
	}
}
