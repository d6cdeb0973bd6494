// Package tenantapi defines the port for the remote tenant and auth API.
package tenantapi

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Strob0t/PartnerConsole/internal/domain/auth"
	"github.com/Strob0t/PartnerConsole/internal/domain/tenant"
)

// Credentials carry the per-request identity forwarded to the API.
type Credentials struct {
	Token    string //nolint:gosec // bearer token from the session
	Tenant   string // value of the "tenant" header
	Language string // value of the Accept-Language header
}

// Result is a successful API outcome: the envelope data and the server message.
type Result[T any] struct {
	Data    T
	Message string
}

// Kind classifies API failures.
type Kind string

const (
	KindTransport       Kind = "transport"
	KindTimeout         Kind = "timeout"
	KindStatus          Kind = "status"   // non-2xx response
	KindRejected        Kind = "rejected" // 2xx with succeeded=false
	KindInvalidResponse Kind = "invalid_response"
	KindInvalidInput    Kind = "invalid_input" // caught before any network call
)

// ErrTimeout marks calls abandoned by the client-side time bound.
var ErrTimeout = errors.New("request timeout")

// Error is the single failure type returned by a Client. Message is the
// most specific human-readable text available: the server message when one
// was sent, otherwise a fallback naming the operation.
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// Message returns the human-readable message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// Tenants is the tenant management part of the API.
type Tenants interface {
	ListTenants(ctx context.Context, creds Credentials) (Result[[]tenant.Tenant], error)
	GetTenant(ctx context.Context, short string, creds Credentials) (Result[*tenant.Tenant], error)
	CreateTenant(ctx context.Context, payload tenant.CreatePayload, creds Credentials) (Result[json.RawMessage], error)
	ActivateTenant(ctx context.Context, short string, creds Credentials) (Result[json.RawMessage], error)
	DeactivateTenant(ctx context.Context, short string, creds Credentials) (Result[json.RawMessage], error)
}

// Authenticator exchanges credentials for tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, req auth.LoginRequest, creds Credentials) (Result[auth.Data], error)
}

// Client is the full remote API.
type Client interface {
	Tenants
	Authenticator
}
