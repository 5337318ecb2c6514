package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the upper bound for a call whose Request does not specify one.
const DefaultTimeout = time.Second * 30

const contentTypeJSON = "application/json"

// Request describes a single call to the backend.
type Request struct {
	Method Method
	// Path is relative to the executor's base URL and may include a query string.
	Path string
	// Body is encoded as JSON if non-nil.
	Body interface{}
	// RawBody is sent verbatim instead of Body if non-nil, for deliberately malformed requests.
	RawBody []byte
	// Headers are applied last, so they override the defaults.
	Headers map[string]string
	// Credential is sent as a bearer token if non-empty.
	Credential string
	// ExpectFailure declares that the backend should reject this call with a 4xx/5xx status.
	ExpectFailure bool
	// Timeout overrides the executor's default timeout if non-zero.
	Timeout time.Duration
}

// Executor issues requests against one backend origin and normalizes every result into an
// Outcome. It performs exactly one attempt per call and holds no per-run state.
type Executor struct {
	baseURL        string
	httpClient     *http.Client
	defaultTimeout time.Duration
}

// ExecutorOption customizes an Executor.
type ExecutorOption func(*Executor)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ExecutorOption {
	return func(e *Executor) { e.httpClient = c }
}

// WithDefaultTimeout sets the timeout for requests that do not specify their own.
func WithDefaultTimeout(t time.Duration) ExecutorOption {
	return func(e *Executor) {
		if t > 0 {
			e.defaultTimeout = t
		}
	}
}

// NewExecutor creates an Executor for the given origin, such as "https://api.example.com".
func NewExecutor(baseURL string, options ...ExecutorOption) *Executor {
	e := &Executor{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     &http.Client{},
		defaultTimeout: DefaultTimeout,
	}
	for _, o := range options {
		o(e)
	}
	return e
}

// BaseURL returns the origin that all request paths are resolved against.
func (e *Executor) BaseURL() string {
	return e.baseURL
}

// Execute performs the request and returns its Outcome. It never returns an error: a failure to
// obtain a response is reported as an Outcome with a zero status code.
func (e *Executor) Execute(ctx context.Context, r Request) Outcome {
	expectSuccess := !r.ExpectFailure
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = e.defaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	transportFailure := func(err error) Outcome {
		return Outcome{
			Endpoint:        r.Path,
			Method:          r.Method,
			ExpectedSuccess: expectSuccess,
			ErrorMessage:    err.Error(),
			Latency:         time.Since(start),
		}
	}

	req, err := e.newRequest(callCtx, r)
	if err != nil {
		return transportFailure(err)
	}
	resp, err := e.httpClient.Do(req)
	if err != nil {
		return transportFailure(err)
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return transportFailure(fmt.Errorf("error reading response body: %w", err))
	}
	latency := time.Since(start)

	o := Outcome{
		Endpoint:        r.Path,
		Method:          r.Method,
		ExpectedSuccess: expectSuccess,
		StatusCode:      resp.StatusCode,
		Success:         Classify(resp.StatusCode, expectSuccess),
		Payload:         DecodePayload(data),
		Latency:         latency,
	}
	if !o.Success {
		o.ErrorMessage = errorMessageFor(o.StatusCode, expectSuccess, o.Payload)
	}
	return o
}

func (e *Executor) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	var body io.Reader
	switch {
	case r.RawBody != nil:
		body = bytes.NewReader(r.RawBody)
	case r.Body != nil:
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("could not encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, string(r.Method), e.baseURL+r.Path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	if r.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+r.Credential)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
