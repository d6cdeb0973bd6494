package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Strob0t/PartnerConsole/internal/config"
	"github.com/Strob0t/PartnerConsole/internal/domain/auth"
	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
)

// memCache is an in-memory cache.Cache that ignores TTLs.
type memCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemCache() *memCache { return &memCache{m: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
	return nil
}

func (c *memCache) has(key string) bool {
	_, ok, _ := c.Get(context.Background(), key)
	return ok
}

// fakeAPI is a scripted tenantapi.Client.
type fakeAPI struct {
	mu sync.Mutex

	tenants   []tenant.Tenant
	listErr   error
	detail    *tenant.Tenant
	getErr    error
	createMsg string
	createErr error
	toggleMsg string
	toggleErr error
	authData  auth.Data
	authErr   error

	created   []tenant.CreatePayload
	toggled   []string
	authCalls int
	lastCreds tenantapi.Credentials
}

var _ tenantapi.Client = (*fakeAPI)(nil)

func (f *fakeAPI) ListTenants(_ context.Context, creds tenantapi.Credentials) (tenantapi.Result[[]tenant.Tenant], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreds = creds
	if f.listErr != nil {
		return tenantapi.Result[[]tenant.Tenant]{}, f.listErr
	}
	return tenantapi.Result[[]tenant.Tenant]{Data: f.tenants}, nil
}

func (f *fakeAPI) GetTenant(_ context.Context, _ string, creds tenantapi.Credentials) (tenantapi.Result[*tenant.Tenant], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreds = creds
	if f.getErr != nil {
		return tenantapi.Result[*tenant.Tenant]{}, f.getErr
	}
	return tenantapi.Result[*tenant.Tenant]{Data: f.detail}, nil
}

func (f *fakeAPI) CreateTenant(_ context.Context, p tenant.CreatePayload, creds tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreds = creds
	f.created = append(f.created, p)
	if f.createErr != nil {
		return tenantapi.Result[json.RawMessage]{}, f.createErr
	}
	return tenantapi.Result[json.RawMessage]{Message: f.createMsg}, nil
}

func (f *fakeAPI) ActivateTenant(ctx context.Context, short string, creds tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	return f.toggle(ctx, "activate:"+short, creds)
}

func (f *fakeAPI) DeactivateTenant(ctx context.Context, short string, creds tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	return f.toggle(ctx, "deactivate:"+short, creds)
}

func (f *fakeAPI) toggle(_ context.Context, call string, creds tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreds = creds
	f.toggled = append(f.toggled, call)
	if f.toggleErr != nil {
		return tenantapi.Result[json.RawMessage]{}, f.toggleErr
	}
	return tenantapi.Result[json.RawMessage]{Message: f.toggleMsg}, nil
}

func (f *fakeAPI) Authenticate(_ context.Context, _ auth.LoginRequest, creds tenantapi.Credentials) (tenantapi.Result[auth.Data], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.authCalls++
	f.lastCreds = creds
	if f.authErr != nil {
		return tenantapi.Result[auth.Data]{}, f.authErr
	}
	return tenantapi.Result[auth.Data]{Data: f.authData}, nil
}

func newTestSessionService(c *memCache) *SessionService {
	return NewSessionService(c, config.Session{
		Secret: "test-secret-key-must-be-long-enough",
		TTL:    time.Hour,
	})
}

// recorder collects metric observations.
type recorder struct {
	mu      sync.Mutex
	logins  []string
	toggles []string
	created int
}

func (r *recorder) RecordLogin(_ context.Context, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logins = append(r.logins, outcome)
}

func (r *recorder) RecordToggle(_ context.Context, action string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ok {
		r.toggles = append(r.toggles, action+":ok")
		return
	}
	r.toggles = append(r.toggles, action+":failed")
}

func (r *recorder) RecordTenantCreated(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created++
}
