// Package tenantapi provides the HTTP client for the remote tenant and auth API.
// Responses arrive wrapped in a {data, message, succeeded} envelope; the
// client unwraps it once and returns (value, error), where error is always a
// *tenantapi.Error from the port package.
package tenantapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Strob0t/PartnerConsole/internal/logger"
	"github.com/Strob0t/PartnerConsole/internal/port/tenantapi"
	"github.com/Strob0t/PartnerConsole/internal/resilience"
)

const (
	defaultLanguage       = "en-US"
	defaultToggleTimeout  = 15 * time.Second
	defaultRegistrationBy = "web"
)

// errServerStatus marks 5xx responses for the circuit breaker. It never
// leaves the package.
var errServerStatus = errors.New("server error status")

// CallRecorder receives one observation per remote call.
type CallRecorder interface {
	RecordAPICall(ctx context.Context, op, outcome string, d time.Duration)
}

// Client talks to the remote tenant API.
type Client struct {
	baseURL            string
	httpClient         *http.Client
	breaker            *resilience.Breaker
	toggleTimeout      time.Duration
	registrationSource string
	recorder           CallRecorder
	now                func() time.Time
}

var _ tenantapi.Client = (*Client)(nil)

// NewClient creates a client for baseURL whose requests are bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:            strings.TrimRight(baseURL, "/"),
		httpClient:         &http.Client{Timeout: timeout},
		toggleTimeout:      defaultToggleTimeout,
		registrationSource: defaultRegistrationBy,
		now:                time.Now,
	}
}

// SetBreaker attaches a circuit breaker to all outgoing HTTP calls.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

// SetTransport replaces the HTTP transport, e.g. with an instrumented one.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.httpClient.Transport = rt
}

// SetToggleTimeout sets the client-side bound for activate/deactivate.
func (c *Client) SetToggleTimeout(d time.Duration) {
	if d > 0 {
		c.toggleTimeout = d
	}
}

// SetRegistrationSource sets the registrationSource sent on login.
func (c *Client) SetRegistrationSource(s string) {
	if s != "" {
		c.registrationSource = s
	}
}

// SetRecorder attaches a metrics recorder.
func (c *Client) SetRecorder(r CallRecorder) {
	c.recorder = r
}

// CountsAsFailure reports whether err should count toward opening the
// circuit: transport failures, expired call bounds and 5xx responses. Caller
// cancellations leave the breaker untouched.
func CountsAsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// response is a completed HTTP exchange.
type response struct {
	status     int
	statusLine string // e.g. "404 Not Found"
	body       []byte
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// envelope is the API response wrapper. Succeeded is a pointer so a body
// without the field can be told apart from an explicit false.
type envelope[T any] struct {
	Data      T      `json:"data"`
	Message   string `json:"message"`
	Succeeded *bool  `json:"succeeded"`
	TraceID   string `json:"traceId,omitempty"`
}

func (e *envelope[T]) succeeded() bool { return e != nil && e.Succeeded != nil && *e.Succeeded }
func (e *envelope[T]) rejected() bool  { return e != nil && e.Succeeded != nil && !*e.Succeeded }

func (e *envelope[T]) message() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Message)
}

// decodeEnvelope parses body. Empty or null bodies yield (nil, nil).
func decodeEnvelope[T any](body []byte) (*envelope[T], error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	var env *envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return env, nil
}

// request describes one API call.
type request struct {
	op      string
	method  string
	path    string
	query   url.Values
	body    any
	noStore bool
}

func (c *Client) doRequest(ctx context.Context, r request, creds tenantapi.Credentials) (*response, error) {
	start := c.now()
	log := logger.From(ctx)

	var payload []byte
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, &tenantapi.Error{Kind: tenantapi.KindInvalidInput, Op: r.op, Message: "Invalid request.", Err: err}
		}
		payload = b
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var result *response
	call := func() error {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, r.method, target, bodyReader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		lang := creds.Language
		if lang == "" {
			lang = defaultLanguage
		}
		req.Header.Set("Accept-Language", lang)
		if creds.Tenant != "" {
			req.Header.Set("tenant", creds.Tenant)
		}
		if creds.Token != "" {
			req.Header.Set("Authorization", "Bearer "+creds.Token)
		}
		if r.noStore {
			req.Header.Set("Cache-Control", "no-store")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("http request: %w", boundExpired(ctx, err))
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", boundExpired(ctx, err))
		}

		result = &response{status: resp.StatusCode, statusLine: resp.Status, body: data}
		if resp.StatusCode >= 500 {
			return errServerStatus
		}
		return nil
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(call)
	} else {
		err = call()
	}
	if errors.Is(err, errServerStatus) {
		err = nil
	}

	elapsed := c.now().Sub(start)
	if err != nil && resilience.TimedOut(ctx) {
		// The caller already gave up and reported the timeout.
		log.Debug("abandoned tenant api call ended", "op", r.op, "error", err, "duration_ms", elapsed.Milliseconds())
		return nil, transportError(r.op, err)
	}
	if err != nil {
		apiErr := transportError(r.op, err)
		c.record(ctx, r.op, string(apiErr.Kind), elapsed)
		log.Warn("tenant api call failed", "op", r.op, "kind", apiErr.Kind, "error", err, "duration_ms", elapsed.Milliseconds())
		return nil, apiErr
	}

	outcome := "ok"
	if !result.ok() {
		outcome = string(tenantapi.KindStatus)
	}
	c.record(ctx, r.op, outcome, elapsed)
	log.Debug("tenant api call", "op", r.op, "status", result.status, "duration_ms", elapsed.Milliseconds())
	return result, nil
}

func (c *Client) record(ctx context.Context, op, outcome string, d time.Duration) {
	if c.recorder != nil {
		c.recorder.RecordAPICall(ctx, op, outcome, d)
	}
}

// boundExpired replaces the context error of a call cut off by a
// resilience.Timeout bound with ErrTimeout, so the breaker counts it.
func boundExpired(ctx context.Context, err error) error {
	if resilience.TimedOut(ctx) {
		return resilience.ErrTimeout
	}
	return err
}

// transportError classifies a failure that produced no HTTP response.
func transportError(op string, err error) *tenantapi.Error {
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return &tenantapi.Error{Kind: tenantapi.KindTransport, Op: op, Message: "Tenant service is temporarily unavailable. Please try again shortly.", Err: err}
	}
	var netErr net.Error
	if errors.Is(err, resilience.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &tenantapi.Error{Kind: tenantapi.KindTimeout, Op: op, Message: "Request timeout", Err: fmt.Errorf("%w: %w", tenantapi.ErrTimeout, err)}
	}
	return &tenantapi.Error{Kind: tenantapi.KindTransport, Op: op, Message: "Unable to reach the tenant service.", Err: err}
}

// statusError builds a KindStatus error for a non-2xx response.
func statusError(op string, resp *response, serverMsg, fallback string) *tenantapi.Error {
	return &tenantapi.Error{
		Kind:    tenantapi.KindStatus,
		Op:      op,
		Status:  resp.status,
		Message: firstMessage(serverMsg, fallback),
	}
}

func firstMessage(serverMsg, fallback string) string {
	if serverMsg != "" {
		return serverMsg
	}
	return fallback
}
