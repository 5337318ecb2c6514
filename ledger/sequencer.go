package ledger

import (
	"sort"
	"sync"

	"github.com/robotadmin/api-contract-tests/apiclient"
)

// Sequencer appends outcomes to a Ledger in issue order even if they complete out of order, as
// happens when independent probes run on a worker pool. Sequence numbers start at 1.
type Sequencer struct {
	ledger   *Ledger
	lastSeq  int
	deferred []deferredOutcome
	lock     sync.Mutex
}

type deferredOutcome struct {
	seq     int
	outcome apiclient.Outcome
}

func NewSequencer(l *Ledger) *Sequencer {
	return &Sequencer{ledger: l}
}

// Accept takes the outcome of the call that was issued with the given sequence number. If earlier
// calls have not been accepted yet, it is held back until they are.
func (s *Sequencer) Accept(seq int, o apiclient.Outcome) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if seq > s.lastSeq+1 {
		s.deferred = append(s.deferred, deferredOutcome{seq: seq, outcome: o})
		sort.Slice(s.deferred, func(i, j int) bool { return s.deferred[i].seq < s.deferred[j].seq })
		return
	}
	s.lastSeq = seq
	s.ledger.Append(o)
	for len(s.deferred) > 0 {
		next := s.deferred[0]
		if next.seq != s.lastSeq+1 {
			break
		}
		s.deferred = s.deferred[1:]
		s.lastSeq++
		s.ledger.Append(next.outcome)
	}
}

// Pending returns the outcomes that are still waiting for an earlier sequence number.
func (s *Sequencer) Pending() []apiclient.Outcome {
	s.lock.Lock()
	defer s.lock.Unlock()
	ret := make([]apiclient.Outcome, 0, len(s.deferred))
	for _, d := range s.deferred {
		ret = append(ret, d.outcome)
	}
	return ret
}
