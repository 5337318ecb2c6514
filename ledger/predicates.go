package ledger

import (
	"strings"

	"github.com/robotadmin/api-contract-tests/apiclient"
)

// Predicate selects records for post-hoc capability detection, e.g. "a successful PATCH to an
// endpoint containing /status".
type Predicate func(apiclient.Outcome) bool

func Succeeded() Predicate {
	return func(o apiclient.Outcome) bool { return o.Success }
}

// ExpectedSuccess matches calls that were meant to be accepted, as opposed to deliberately invalid
// requests.
func ExpectedSuccess() Predicate {
	return func(o apiclient.Outcome) bool { return o.ExpectedSuccess }
}

func MethodIs(m apiclient.Method) Predicate {
	return func(o apiclient.Outcome) bool { return o.Method == m }
}

// EndpointIs matches the full endpoint, including any query string.
func EndpointIs(endpoint string) Predicate {
	return func(o apiclient.Outcome) bool { return o.Endpoint == endpoint }
}

func EndpointHasPrefix(prefix string) Predicate {
	return func(o apiclient.Outcome) bool { return strings.HasPrefix(o.Endpoint, prefix) }
}

func EndpointContains(s string) Predicate {
	return func(o apiclient.Outcome) bool { return strings.Contains(o.Endpoint, s) }
}

func PayloadContains(s string) Predicate {
	return func(o apiclient.Outcome) bool { return o.Payload.Contains(s) }
}

// And matches records that satisfy every one of the predicates.
func And(ps ...Predicate) Predicate {
	return func(o apiclient.Outcome) bool {
		for _, p := range ps {
			if !p(o) {
				return false
			}
		}
		return true
	}
}

// Or matches records that satisfy at least one of the predicates.
func Or(ps ...Predicate) Predicate {
	return func(o apiclient.Outcome) bool {
		for _, p := range ps {
			if p(o) {
				return true
			}
		}
		return false
	}
}

func Not(p Predicate) Predicate {
	return func(o apiclient.Outcome) bool { return !p(o) }
}
