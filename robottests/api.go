package robottests

import (
	"context"
	"fmt"
	"time"

	"github.com/robotadmin/api-contract-tests/apiclient"
	"github.com/robotadmin/api-contract-tests/framework"
	"github.com/robotadmin/api-contract-tests/ledger"
	"github.com/robotadmin/api-contract-tests/lifecycle"

	"golang.org/x/sync/errgroup"
)

// apiPrefix is the alternate path prefix some deployments mount the API under.
const apiPrefix = "/api"

// T represents a scenario or sub-scenario in the backend test suite.
//
// It implements the same basic functionality as Go's testing.T, but outside of the Go test runner;
// those features come from the lower-level framework package. To make assertions, pass the *T to
// the assert and require packages as if it were a *testing.T.
//
// It also carries the Session of the run. Every call made through T is recorded in the session's
// ledger, and a call whose outcome does not match its expectation is reported as a non-fatal
// error of the scenario.
type T struct {
	context *framework.Context
	session *Session
	ctx     context.Context
}

func newT(c *framework.Context, session *Session, ctx context.Context) *T {
	return &T{context: c, session: session, ctx: ctx}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a sub-scenario. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newT(c, t.session, t.ctx))
	})
}

// SkipWithReason stops the scenario and reports it as skipped rather than failed.
func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) Session() *Session {
	return t.session
}

func (t *T) name() string {
	return t.context.ID().String()
}

// CallOption modifies a request before it is sent.
type CallOption func(*apiclient.Request)

// ExpectFailure declares that the backend should reject the call.
func ExpectFailure() CallOption {
	return func(r *apiclient.Request) { r.ExpectFailure = true }
}

func WithTimeout(d time.Duration) CallOption {
	return func(r *apiclient.Request) { r.Timeout = d }
}

// WithRawBody sends the given bytes verbatim instead of a JSON-encoded body.
func WithRawBody(body []byte) CallOption {
	return func(r *apiclient.Request) { r.RawBody = body }
}

// WithCredential sends the given token instead of the session's credential.
func WithCredential(token string) CallOption {
	return func(r *apiclient.Request) { r.Credential = token }
}

// WithoutCredential sends no Authorization header.
func WithoutCredential() CallOption {
	return WithCredential("")
}

func WithHeader(name, value string) CallOption {
	return func(r *apiclient.Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[name] = value
	}
}

func (t *T) request(method apiclient.Method, path string, body interface{}, opts []CallOption) apiclient.Request {
	r := apiclient.Request{
		Method:     method,
		Path:       path,
		Body:       body,
		Credential: t.session.Credential(),
	}
	for _, o := range opts {
		o(&r)
	}
	return r
}

// Call makes one request. If the outcome is not a success, the failure is reported as a scenario
// error, but the scenario continues.
func (t *T) Call(method apiclient.Method, path string, body interface{}, opts ...CallOption) apiclient.Outcome {
	o := t.session.Do(t.ctx, t.request(method, path, body, opts), t.name(), t.context.DebugLogger())
	if !o.Success {
		t.Errorf("%s %s: %s", o.Method, o.Endpoint, o.ErrorMessage)
	}
	return o
}

func (t *T) Get(path string, opts ...CallOption) apiclient.Outcome {
	return t.Call(apiclient.MethodGet, path, nil, opts...)
}

func (t *T) Post(path string, body interface{}, opts ...CallOption) apiclient.Outcome {
	return t.Call(apiclient.MethodPost, path, body, opts...)
}

func (t *T) Put(path string, body interface{}, opts ...CallOption) apiclient.Outcome {
	return t.Call(apiclient.MethodPut, path, body, opts...)
}

func (t *T) Patch(path string, body interface{}, opts ...CallOption) apiclient.Outcome {
	return t.Call(apiclient.MethodPatch, path, body, opts...)
}

func (t *T) Delete(path string, opts ...CallOption) apiclient.Outcome {
	return t.Call(apiclient.MethodDelete, path, nil, opts...)
}

// Create posts a new resource to the collection of its kind. If the backend returns the new
// resource's id, the resource is recorded for teardown; this also happens when the backend
// accepts a creation that was expected to be rejected, since the resource exists either way.
func (t *T) Create(kind lifecycle.Kind, body interface{}, opts ...CallOption) (string, apiclient.Outcome) {
	o := t.Call(apiclient.MethodPost, kind.CollectionPath(), body, opts...)
	if o.Transport() || o.StatusCode >= 400 {
		return "", o
	}
	id, ok := o.Payload.ID()
	if !ok {
		if o.Success {
			t.Errorf("%s was created but the response did not contain an id", kind)
		}
		return "", o
	}
	t.session.resources.Record(kind, id)
	t.Debug("created %s %s", kind, id)
	return id, o
}

// Remove deletes a resource that this run created. On success it is no longer tracked for
// teardown.
func (t *T) Remove(kind lifecycle.Kind, id string) apiclient.Outcome {
	o := t.Delete(lifecycle.Resource{Kind: kind, ID: id}.Path())
	if o.Success {
		t.session.resources.Forget(kind, id)
		if kind == lifecycle.KindItem {
			t.session.forgetMenuItem(id)
		}
	}
	return o
}

// RequireResource returns the id of the earliest created resource of the given kind that still
// exists, or skips the scenario if there is none.
func (t *T) RequireResource(kind lifecycle.Kind) string {
	id, ok := t.session.resources.First(kind)
	if !ok {
		t.SkipWithReason(fmt.Sprintf("no %s was created", kind))
	}
	return id
}

// RequireMenuItem returns the id of a menu item created by the items scenario, or skips.
func (t *T) RequireMenuItem(key string) string {
	id, ok := t.session.MenuItemID(key)
	if !ok {
		t.SkipWithReason(fmt.Sprintf("menu item %q was not created", key))
	}
	return id
}

// RequireLocation returns the location in use, or skips if none is known.
func (t *T) RequireLocation() string {
	id := t.session.LocationID()
	if id == "" {
		t.SkipWithReason("no location is available")
	}
	return id
}

// RequireCredential skips the scenario if no login has succeeded.
func (t *T) RequireCredential() string {
	token := t.session.Credential()
	if token == "" {
		t.SkipWithReason("not logged in")
	}
	return token
}

// RequireClientError asserts that a rejected call was rejected with a 4xx status, as opposed to a
// server error or no response at all.
func (t *T) RequireClientError(o apiclient.Outcome) {
	if !o.ClientError() {
		t.Errorf("%s %s: expected a 4xx status, got %d", o.Method, o.Endpoint, o.StatusCode)
	}
}

// CallAll issues independent read-only requests concurrently, bounded by the configured
// parallelism. The outcomes are returned, logged, and appended to the ledger in the order of the
// requests, whatever order they complete in. No scenario errors are reported.
func (t *T) CallAll(requests []apiclient.Request) []apiclient.Outcome {
	outcomes := make([]apiclient.Outcome, len(requests))
	sequencer := ledger.NewSequencer(t.session.ledger)

	g, ctx := errgroup.WithContext(t.ctx)
	g.SetLimit(t.session.settings.Parallelism)
	for i, r := range requests {
		g.Go(func() error {
			o := t.session.executor.Execute(ctx, r)
			outcomes[i] = o
			sequencer.Accept(i+1, o)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		t.session.logCall(o, t.name(), t.context.DebugLogger())
	}
	return outcomes
}

func (t *T) probePaths(path string) []string {
	if t.session.settings.ProbeAPIPrefix {
		return []string{path, apiPrefix + path}
	}
	return []string{path}
}

// Probe makes a read-only GET. If alternate-prefix probing is enabled, the same path is also
// tried under "/api". A scenario error is reported only if no variant succeeded. The returned
// outcome is the first successful one, or the unprefixed one if none succeeded.
func (t *T) Probe(path string, opts ...CallOption) apiclient.Outcome {
	return t.ProbeAll([]string{path}, opts...)[0]
}

// ProbeAll is like Probe for several paths at once; the requests are issued concurrently with
// CallAll.
func (t *T) ProbeAll(paths []string, opts ...CallOption) []apiclient.Outcome {
	var requests []apiclient.Request
	var owners []int
	for i, p := range paths {
		for _, variant := range t.probePaths(p) {
			requests = append(requests, t.request(apiclient.MethodGet, variant, nil, opts))
			owners = append(owners, i)
		}
	}
	var outcomes []apiclient.Outcome
	if len(requests) == 1 {
		outcomes = []apiclient.Outcome{t.session.Do(t.ctx, requests[0], t.name(), t.context.DebugLogger())}
	} else {
		outcomes = t.CallAll(requests)
	}

	ret := make([]apiclient.Outcome, len(paths))
	found := make([]bool, len(paths))
	for j, o := range outcomes {
		i := owners[j]
		if found[i] {
			continue
		}
		if o.Success {
			ret[i], found[i] = o, true
		} else if ret[i].Method == "" {
			ret[i] = o
		}
	}
	for i := range paths {
		if !found[i] {
			t.Errorf("%s %s: %s", ret[i].Method, ret[i].Endpoint, ret[i].ErrorMessage)
		}
	}
	return ret
}
