// Package report turns the ledger of a finished run into an assessment of which backend
// capabilities work, and renders it for people and for machines.
package report

import (
	"time"

	"github.com/robotadmin/api-contract-tests/apiclient"
	"github.com/robotadmin/api-contract-tests/framework"
	"github.com/robotadmin/api-contract-tests/ledger"
	"github.com/robotadmin/api-contract-tests/lifecycle"

	"github.com/samber/lo"
)

// Rating classifies the average latency of successful calls.
type Rating string

const (
	RatingExcellent        Rating = "excellent"
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs improvement"
	RatingUnknown          Rating = "unknown"
)

const (
	excellentLatency = time.Millisecond * 100
	goodLatency      = time.Millisecond * 500
)

// Verdict is the overall assessment of the backend.
type Verdict string

const (
	VerdictFullyFunctional     Verdict = "fully functional"
	VerdictMostlyFunctional    Verdict = "mostly functional"
	VerdictPartiallyFunctional Verdict = "partially functional"
	VerdictCriticalIssues      Verdict = "critical issues"
)

// Capability says whether one area of the API was observed to work at least once. A capability
// that no call touched is not exercised and does not count towards the verdict.
type Capability struct {
	Name      string `json:"name"`
	Working   bool   `json:"working"`
	Exercised bool   `json:"exercised"`
}

// Failure is a call whose outcome did not match its expectation.
type Failure struct {
	Method     apiclient.Method `json:"method"`
	Endpoint   string           `json:"endpoint"`
	StatusCode int              `json:"statusCode"`
	Message    string           `json:"message"`
}

// ScenarioResult is a failed or skipped scenario.
type ScenarioResult struct {
	ID     string   `json:"id"`
	Errors []string `json:"errors,omitempty"`
	Reason string   `json:"reason,omitempty"`
}

type Report struct {
	Stats            ledger.Stats
	Elapsed          time.Duration
	Capabilities     []Capability
	Performance      Rating
	Verdict          Verdict
	Failures         []Failure
	FailedScenarios  []ScenarioResult
	SkippedScenarios []ScenarioResult
	// LeftBehind are resources that still exist on the backend because teardown could not delete
	// them.
	LeftBehind []lifecycle.Resource
}

// Summarize builds the report from the final state of a run. The resources still tracked by the
// manager, plus the ones whose deletion failed during teardown, are reported as left behind.
func Summarize(
	l *ledger.Ledger,
	resources *lifecycle.Manager,
	teardown lifecycle.TeardownResult,
	results framework.Results,
	elapsed time.Duration,
) Report {
	stats := l.Stats()
	capabilities := lo.Map(capabilityChecks, func(c capabilityCheck, _ int) Capability {
		return c.evaluate(l)
	})
	return Report{
		Stats:        stats,
		Elapsed:      elapsed,
		Capabilities: capabilities,
		Performance:  rate(stats),
		Verdict:      judge(capabilities),
		Failures: lo.Map(l.Failures(), func(o apiclient.Outcome, _ int) Failure {
			return Failure{Method: o.Method, Endpoint: o.Endpoint, StatusCode: o.StatusCode, Message: o.ErrorMessage}
		}),
		FailedScenarios: lo.Map(results.Failures, func(r framework.TestResult, _ int) ScenarioResult {
			return ScenarioResult{
				ID:     r.TestID.String(),
				Errors: lo.Map(r.Errors, func(e error, _ int) string { return e.Error() }),
			}
		}),
		SkippedScenarios: lo.Map(results.Skipped, func(r framework.TestResult, _ int) ScenarioResult {
			return ScenarioResult{ID: r.TestID.String(), Reason: r.SkipReason}
		}),
		LeftBehind: append(append([]lifecycle.Resource{}, teardown.Failed...), resources.Resources()...),
	}
}

func rate(stats ledger.Stats) Rating {
	switch {
	case stats.Passed == 0:
		return RatingUnknown
	case stats.AvgLatency < excellentLatency:
		return RatingExcellent
	case stats.AvgLatency < goodLatency:
		return RatingGood
	default:
		return RatingNeedsImprovement
	}
}

func judge(capabilities []Capability) Verdict {
	exercised := lo.CountBy(capabilities, func(c Capability) bool { return c.Exercised })
	working := lo.CountBy(capabilities, func(c Capability) bool { return c.Working })
	if exercised == 0 {
		return VerdictCriticalIssues
	}
	fraction := float64(working) / float64(exercised)
	switch {
	case working == exercised:
		return VerdictFullyFunctional
	case fraction >= 0.8:
		return VerdictMostlyFunctional
	case fraction >= 0.5:
		return VerdictPartiallyFunctional
	default:
		return VerdictCriticalIssues
	}
}

// OK is true if every call matched its expectation and no scenario failed.
func (r Report) OK() bool {
	return r.Stats.Failed == 0 && len(r.FailedScenarios) == 0
}

// ExitCode is the process status that the command line tool exits with.
func (r Report) ExitCode() int {
	if r.OK() {
		return 0
	}
	return 1
}

// WorkingCount returns the number of working capabilities and the number of exercised ones.
func (r Report) WorkingCount() (working, exercised int) {
	for _, c := range r.Capabilities {
		if c.Working {
			working++
		}
		if c.Exercised {
			exercised++
		}
	}
	return working, exercised
}
