package http_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Strob0t/PartnerConsole/internal/domain/auth"
	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

// fakeAPI is a scripted tenantapi.Client.
type fakeAPI struct {
	mu sync.Mutex

	tenants   []tenant.Tenant
	listErr   error
	detail    *tenant.Tenant
	getErr    error
	createErr error
	toggleErr error
	authData  auth.Data
	authErr   error

	created []tenant.CreatePayload
	toggled []string
}

var _ tenantapi.Client = (*fakeAPI)(nil)

func (f *fakeAPI) ListTenants(context.Context, tenantapi.Credentials) (tenantapi.Result[[]tenant.Tenant], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return tenantapi.Result[[]tenant.Tenant]{}, f.listErr
	}
	return tenantapi.Result[[]tenant.Tenant]{Data: f.tenants}, nil
}

func (f *fakeAPI) GetTenant(context.Context, string, tenantapi.Credentials) (tenantapi.Result[*tenant.Tenant], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return tenantapi.Result[*tenant.Tenant]{}, f.getErr
	}
	return tenantapi.Result[*tenant.Tenant]{Data: f.detail}, nil
}

func (f *fakeAPI) CreateTenant(_ context.Context, p tenant.CreatePayload, _ tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, p)
	if f.createErr != nil {
		return tenantapi.Result[json.RawMessage]{}, f.createErr
	}
	return tenantapi.Result[json.RawMessage]{Message: "Created"}, nil
}

func (f *fakeAPI) ActivateTenant(_ context.Context, short string, _ tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	return f.toggle("activate:" + short)
}

func (f *fakeAPI) DeactivateTenant(_ context.Context, short string, _ tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	return f.toggle("deactivate:" + short)
}

func (f *fakeAPI) toggle(call string) (tenantapi.Result[json.RawMessage], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggled = append(f.toggled, call)
	if f.toggleErr != nil {
		return tenantapi.Result[json.RawMessage]{}, f.toggleErr
	}
	return tenantapi.Result[json.RawMessage]{Message: "OK"}, nil
}

func (f *fakeAPI) Authenticate(context.Context, auth.LoginRequest, tenantapi.Credentials) (tenantapi.Result[auth.Data], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.authErr != nil {
		return tenantapi.Result[auth.Data]{}, f.authErr
	}
	return tenantapi.Result[auth.Data]{Data: f.authData}, nil
}

func (f *fakeAPI) createdPayloads() []tenant.CreatePayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tenant.CreatePayload(nil), f.created...)
}

func (f *fakeAPI) toggledCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.toggled...)
}
