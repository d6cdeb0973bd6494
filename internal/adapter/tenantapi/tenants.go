package tenantapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Strob0t/PartnerConsole/internal/domain/auth"
	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
	"github.com/Strob0t/PartnerConsole/internal/logger"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
	"github.com/Strob0t/PartnerConsole/internal/resilience"
)

const tenantsPath = "/api/tenants"

// ListTenants fetches every tenant visible to creds.
func (c *Client) ListTenants(ctx context.Context, creds tenantapi.Credentials) (tenantapi.Result[[]tenant.Tenant], error) {
	const op = "list_tenants"
	var zero tenantapi.Result[[]tenant.Tenant]

	resp, err := c.doRequest(ctx, request{
		op:      op,
		method:  http.MethodGet,
		path:    tenantsPath,
		query:   url.Values{"_": {strconv.FormatInt(c.now().UnixMilli(), 10)}},
		noStore: true,
	}, creds)
	if err != nil {
		return zero, err
	}

	fallback := fmt.Sprintf("Failed to fetch tenants (%d)", resp.status)
	env, decodeErr := decodeEnvelope[[]tenant.Tenant](resp.body)
	if decodeErr != nil {
		if !resp.ok() {
			return zero, statusError(op, resp, "", fallback)
		}
		return zero, &tenantapi.Error{Kind: tenantapi.KindInvalidResponse, Op: op, Status: resp.status, Message: fallback, Err: decodeErr}
	}
	if env == nil {
		env = &envelope[[]tenant.Tenant]{Message: "Empty", Succeeded: new(bool)}
	}

	if !resp.ok() {
		return zero, statusError(op, resp, env.message(), fallback)
	}
	if !env.succeeded() {
		return zero, &tenantapi.Error{Kind: tenantapi.KindRejected, Op: op, Status: resp.status, Message: firstMessage(env.message(), fallback)}
	}

	data := env.Data
	if data == nil {
		data = []tenant.Tenant{}
	}
	return tenantapi.Result[[]tenant.Tenant]{Data: data, Message: env.Message}, nil
}

// GetTenant fetches one tenant by its short name.
func (c *Client) GetTenant(ctx context.Context, short string, creds tenantapi.Credentials) (tenantapi.Result[*tenant.Tenant], error) {
	const op = "get_tenant"
	var zero tenantapi.Result[*tenant.Tenant]

	if short == "" {
		return zero, &tenantapi.Error{Kind: tenantapi.KindInvalidInput, Op: op, Message: "Tenant short name is required."}
	}

	resp, err := c.doRequest(ctx, request{
		op:      op,
		method:  http.MethodGet,
		path:    tenantsPath + "/" + url.PathEscape(short),
		noStore: true,
	}, creds)
	if err != nil {
		return zero, err
	}

	fallback := "Failed to fetch tenant " + short
	// Unparsable bodies are treated as absent.
	env, _ := decodeEnvelope[*tenant.Tenant](resp.body)

	if !resp.ok() {
		return zero, statusError(op, resp, env.message(), fallback)
	}
	if env == nil {
		return zero, &tenantapi.Error{Kind: tenantapi.KindInvalidResponse, Op: op, Status: resp.status, Message: fallback}
	}
	if !env.succeeded() {
		return zero, &tenantapi.Error{Kind: tenantapi.KindRejected, Op: op, Status: resp.status, Message: firstMessage(env.message(), fallback)}
	}
	if env.Data == nil {
		return zero, &tenantapi.Error{Kind: tenantapi.KindInvalidResponse, Op: op, Status: resp.status, Message: fallback}
	}
	return tenantapi.Result[*tenant.Tenant]{Data: env.Data, Message: env.Message}, nil
}

// CreateTenant submits a new tenant. A 2xx response without an envelope is
// reported as success with message "Created".
func (c *Client) CreateTenant(ctx context.Context, payload tenant.CreatePayload, creds tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	const op = "create_tenant"
	var zero tenantapi.Result[json.RawMessage]

	resp, err := c.doRequest(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   tenantsPath,
		body:   payload,
	}, creds)
	if err != nil {
		return zero, err
	}

	env, _ := decodeEnvelope[json.RawMessage](resp.body)

	if !resp.ok() {
		return zero, statusError(op, resp, env.message(), fmt.Sprintf("Failed to create tenant (%s)", resp.statusLine))
	}
	if env.rejected() {
		return zero, &tenantapi.Error{Kind: tenantapi.KindRejected, Op: op, Status: resp.status, Message: firstMessage(env.message(), "Failed to create tenant.")}
	}
	if env == nil {
		return tenantapi.Result[json.RawMessage]{Data: nil, Message: "Created"}, nil
	}
	return tenantapi.Result[json.RawMessage]{Data: nullAsNil(env.Data), Message: env.Message}, nil
}

// ActivateTenant enables a tenant. The call is bounded by the toggle timeout.
func (c *Client) ActivateTenant(ctx context.Context, short string, creds tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	return c.toggle(ctx, short, "activate", creds)
}

// DeactivateTenant disables a tenant. The call is bounded by the toggle timeout.
func (c *Client) DeactivateTenant(ctx context.Context, short string, creds tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	return c.toggle(ctx, short, "deactivate", creds)
}

func (c *Client) toggle(ctx context.Context, short, action string, creds tenantapi.Credentials) (tenantapi.Result[json.RawMessage], error) {
	op := action + "_tenant"
	var zero tenantapi.Result[json.RawMessage]

	if short == "" || short == tenant.Placeholder {
		return zero, &tenantapi.Error{Kind: tenantapi.KindInvalidInput, Op: op, Message: "Invalid tenant short name."}
	}

	var resp *response
	err := resilience.Timeout(ctx, c.toggleTimeout, func(ctx context.Context) error {
		var err error
		resp, err = c.doRequest(ctx, request{
			op:     op,
			method: http.MethodPost,
			path:   tenantsPath + "/" + url.PathEscape(short) + "/" + action,
		}, creds)
		return err
	})
	if err != nil {
		if errors.Is(err, resilience.ErrTimeout) {
			logger.From(ctx).Warn("tenant toggle timed out", "op", op, "short", short, "timeout", c.toggleTimeout)
			c.record(ctx, op, string(tenantapi.KindTimeout), c.toggleTimeout)
			return zero, &tenantapi.Error{Kind: tenantapi.KindTimeout, Op: op, Message: "Request timeout", Err: fmt.Errorf("%w: %w", tenantapi.ErrTimeout, err)}
		}
		var apiErr *tenantapi.Error
		if errors.As(err, &apiErr) {
			return zero, apiErr
		}
		return zero, transportError(op, err)
	}

	env, _ := decodeEnvelope[json.RawMessage](resp.body)

	if !resp.ok() {
		return zero, statusError(op, resp, env.message(), fmt.Sprintf("Failed to %s (%d)", action, resp.status))
	}
	if env.rejected() {
		return zero, &tenantapi.Error{Kind: tenantapi.KindRejected, Op: op, Status: resp.status, Message: firstMessage(env.message(), "Failed to "+action+".")}
	}
	if env == nil {
		return tenantapi.Result[json.RawMessage]{Message: "OK"}, nil
	}
	return tenantapi.Result[json.RawMessage]{Data: nullAsNil(env.Data), Message: firstMessage(env.message(), "OK")}, nil
}

// Authenticate exchanges email and password for tokens under the tenant
// named in creds.
func (c *Client) Authenticate(ctx context.Context, req auth.LoginRequest, creds tenantapi.Credentials) (tenantapi.Result[auth.Data], error) {
	const op = "authenticate"
	var zero tenantapi.Result[auth.Data]

	if creds.Tenant == "" {
		creds.Tenant = req.Tenant
	}
	if creds.Tenant == "" {
		return zero, &tenantapi.Error{Kind: tenantapi.KindInvalidInput, Op: op, Message: "Company short name is required"}
	}

	resp, err := c.doRequest(ctx, request{
		op:     op,
		method: http.MethodPost,
		path:   "/api/auth/authenticate",
		body: auth.AuthenticateBody{
			Email:              req.Email,
			Password:           req.Password,
			RegistrationSource: c.registrationSource,
		},
	}, creds)
	if err != nil {
		return zero, err
	}

	env, decodeErr := decodeEnvelope[auth.Data](resp.body)
	if !resp.ok() {
		return zero, statusError(op, resp, env.message(), fmt.Sprintf("Request failed with %d", resp.status))
	}
	if decodeErr != nil {
		return zero, &tenantapi.Error{Kind: tenantapi.KindInvalidResponse, Op: op, Status: resp.status, Message: "Authentication failed", Err: decodeErr}
	}
	if !env.succeeded() || env.Data.Token == "" {
		return zero, &tenantapi.Error{Kind: tenantapi.KindRejected, Op: op, Status: resp.status, Message: firstMessage(env.message(), "Authentication failed")}
	}
	return tenantapi.Result[auth.Data]{Data: env.Data, Message: env.Message}, nil
}

func nullAsNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}
