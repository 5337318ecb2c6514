// Package ledger holds the ordered record of every call made during a test run.
package ledger

import (
	"sync"
	"time"

	"github.com/robotadmin/api-contract-tests/apiclient"

	"github.com/samber/lo"
)

// Ledger is an append-only sequence of Outcomes. The order of appends is the order of truth for
// "when did this happen" queries. It is safe for concurrent use.
type Ledger struct {
	records []apiclient.Outcome
	lock    sync.Mutex
}

// Stats is an aggregate view of a Ledger.
//
// AvgLatency and MaxLatency are computed over successful records only; failed calls (especially
// timeouts) would otherwise dominate the numbers.
type Stats struct {
	Total      int           `json:"total"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	AvgLatency time.Duration `json:"avgLatency"`
	MaxLatency time.Duration `json:"maxLatency"`
}

func New() *Ledger {
	return &Ledger{}
}

// Append adds a record. It is the only mutator.
func (l *Ledger) Append(o apiclient.Outcome) {
	l.lock.Lock()
	l.records = append(l.records, o)
	l.lock.Unlock()
}

// Records returns a copy of all records in call order.
func (l *Ledger) Records() []apiclient.Outcome {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]apiclient.Outcome(nil), l.records...)
}

func (l *Ledger) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()
	return len(l.records)
}

// Filter returns the records matching the predicate, in call order.
func (l *Ledger) Filter(p Predicate) []apiclient.Outcome {
	return lo.Filter(l.Records(), func(o apiclient.Outcome, _ int) bool { return p(o) })
}

// Any returns true if at least one record matches the predicate.
func (l *Ledger) Any(p Predicate) bool {
	return lo.ContainsBy(l.Records(), func(o apiclient.Outcome) bool { return p(o) })
}

// Failures returns the records whose Success is false, in call order.
func (l *Ledger) Failures() []apiclient.Outcome {
	return l.Filter(Not(Succeeded()))
}

func (l *Ledger) Stats() Stats {
	records := l.Records()
	passed := lo.Filter(records, func(o apiclient.Outcome, _ int) bool { return o.Success })
	s := Stats{
		Total:  len(records),
		Passed: len(passed),
		Failed: len(records) - len(passed),
	}
	if len(passed) > 0 {
		latencies := lo.Map(passed, func(o apiclient.Outcome, _ int) time.Duration { return o.Latency })
		s.AvgLatency = lo.Sum(latencies) / time.Duration(len(latencies))
		s.MaxLatency = lo.Max(latencies)
	}
	return s
}

// SuccessRate returns the percentage of passed records. It returns false for an empty ledger, where
// the rate is undefined.
func (s Stats) SuccessRate() (float64, bool) {
	if s.Total == 0 {
		return 0, false
	}
	return float64(s.Passed) / float64(s.Total) * 100, true
}
