package robottests

import (
	"context"
	"sync"
	"time"

	"github.com/robotadmin/api-contract-tests/apiclient"
	"github.com/robotadmin/api-contract-tests/framework"
	"github.com/robotadmin/api-contract-tests/ledger"
	"github.com/robotadmin/api-contract-tests/lifecycle"
	"github.com/robotadmin/api-contract-tests/logging"
	"github.com/robotadmin/api-contract-tests/servicedef"

	"github.com/google/uuid"
)

// Settings are the per-run choices that scenarios depend on.
type Settings struct {
	// RunTag distinguishes the names of resources created by this run. NewSession generates one if
	// it is empty.
	RunTag        string
	Vocabulary    servicedef.StatusVocabulary
	LocationID    string
	HealthTimeout time.Duration
	Parallelism   int
	// ProbeAPIPrefix makes read-only probes also try the same path under "/api".
	ProbeAPIPrefix bool
	Login          servicedef.TelegramLogin
	// Credential, if set, is used until a login replaces it.
	Credential string
}

// Session is the state of one test run: the active credential, the ledger of every call made,
// and the resources created on the backend. All calls to the backend go through it.
type Session struct {
	executor  *apiclient.Executor
	ledger    *ledger.Ledger
	resources *lifecycle.Manager
	runLog    *logging.RunLogger
	settings  Settings
	runTag    string
	now       func() time.Time

	credential string
	locationID string
	menu       map[string]string
	lock       sync.Mutex
}

func NewSession(executor *apiclient.Executor, settings Settings, runLog *logging.RunLogger) *Session {
	if runLog == nil {
		runLog = logging.Nop()
	}
	if settings.Parallelism < 1 {
		settings.Parallelism = 1
	}
	if settings.Vocabulary.Name == "" {
		settings.Vocabulary = servicedef.EnglishStatuses
	}
	if settings.RunTag == "" {
		settings.RunTag = NewRunTag()
	}
	if settings.Login == (servicedef.TelegramLogin{}) {
		settings.Login = servicedef.DefaultLogin()
	}
	return &Session{
		executor:   executor,
		ledger:     ledger.New(),
		resources:  lifecycle.NewManager(),
		runLog:     runLog,
		settings:   settings,
		runTag:     settings.RunTag,
		now:        time.Now,
		credential: settings.Credential,
		locationID: settings.LocationID,
		menu:       make(map[string]string),
	}
}

// NewRunTag returns a short random string for labeling one run.
func NewRunTag() string {
	return uuid.NewString()[:8]
}

func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

func (s *Session) Resources() *lifecycle.Manager { return s.resources }

func (s *Session) Settings() Settings { return s.settings }

// RunTag is a short random string that distinguishes the names of resources created by this run.
func (s *Session) RunTag() string { return s.runTag }

func (s *Session) BaseURL() string { return s.executor.BaseURL() }

func (s *Session) Credential() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.credential
}

func (s *Session) SetCredential(token string) {
	s.lock.Lock()
	s.credential = token
	s.lock.Unlock()
}

func (s *Session) ClearCredential() {
	s.SetCredential("")
}

// LocationID is the location that location-scoped calls and new orders use.
func (s *Session) LocationID() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.locationID
}

func (s *Session) SetLocationID(id string) {
	s.lock.Lock()
	s.locationID = id
	s.lock.Unlock()
}

// MenuItemID returns the backend id of a menu item created by this run, by fixture key.
func (s *Session) MenuItemID(key string) (string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	id, ok := s.menu[key]
	return id, ok
}

func (s *Session) rememberMenuItem(key, id string) {
	s.lock.Lock()
	s.menu[key] = id
	s.lock.Unlock()
}

func (s *Session) forgetMenuItem(id string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for k, v := range s.menu {
		if v == id {
			delete(s.menu, k)
		}
	}
}

// Do executes a request, appends its outcome to the ledger, and logs it. The debug logger, if not
// nil, also receives a one-line summary of the call.
func (s *Session) Do(ctx context.Context, r apiclient.Request, scenario string, debug framework.Logger) apiclient.Outcome {
	o := s.executor.Execute(ctx, r)
	s.record(o, scenario, debug)
	return o
}

func (s *Session) record(o apiclient.Outcome, scenario string, debug framework.Logger) {
	s.ledger.Append(o)
	s.logCall(o, scenario, debug)
}

func (s *Session) logCall(o apiclient.Outcome, scenario string, debug framework.Logger) {
	s.runLog.Call(logging.CallEvent{
		Scenario:     scenario,
		Method:       string(o.Method),
		Endpoint:     o.Endpoint,
		StatusCode:   o.StatusCode,
		Success:      o.Success,
		Expected:     o.ExpectedSuccess,
		Latency:      o.Latency,
		ErrorMessage: o.ErrorMessage,
	})
	if debug != nil {
		debug.Printf("%s", o)
	}
}

// Remove deletes one resource as part of teardown. It implements lifecycle.Remover.
func (s *Session) Remove(ctx context.Context, r lifecycle.Resource) bool {
	o := s.Do(ctx, apiclient.Request{
		Method:     apiclient.MethodDelete,
		Path:       r.Path(),
		Credential: s.Credential(),
	}, "teardown", nil)
	if !o.Success {
		s.runLog.Warnf("could not delete %s: %s", r, o.ErrorMessage)
	}
	return o.Success
}

// Teardown deletes every resource this run created that has not been deleted already, most recent
// first. Calling it again does nothing. If the credential was lost along the way, for instance
// because logout revoked it and the next login failed, it logs in once more first.
func (s *Session) Teardown(ctx context.Context) lifecycle.TeardownResult {
	start := time.Now()
	if s.Credential() == "" && len(s.resources.Resources()) != 0 {
		s.relogin(ctx)
	}
	result := s.resources.Teardown(ctx, s)
	s.runLog.Teardown(len(result.Attempted), len(result.Failed), time.Since(start))
	return result
}

func (s *Session) relogin(ctx context.Context) {
	o := s.Do(ctx, apiclient.Request{
		Method: apiclient.MethodPost,
		Path:   loginPath,
		Body:   servicedef.LoginPayload(s.settings.Login, s.now()),
	}, "teardown", nil)
	if token, ok := accessToken(o); ok && o.Success {
		s.SetCredential(token)
		return
	}
	s.runLog.Warnf("no credential for teardown; deletions will be sent without one")
}
