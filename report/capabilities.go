package report

import (
	"github.com/robotadmin/api-contract-tests/apiclient"
	"github.com/robotadmin/api-contract-tests/ledger"
)

// Some deployments mount the API under this prefix; calls to either form count.
const apiPrefix = "/api"

type capabilityCheck struct {
	name string
	// area selects the calls that exercise the capability. Calls expected to be rejected never
	// count, since they cannot show that it works.
	area ledger.Predicate
	// evidence, if set, must also hold for a call to show that the capability works.
	evidence ledger.Predicate
}

func (c capabilityCheck) evaluate(l *ledger.Ledger) Capability {
	exercised := ledger.And(c.area, ledger.ExpectedSuccess())
	working := ledger.And(exercised, ledger.Succeeded())
	if c.evidence != nil {
		working = ledger.And(working, c.evidence)
	}
	return Capability{
		Name:      c.name,
		Working:   l.Any(working),
		Exercised: l.Any(exercised),
	}
}

func at(path string) ledger.Predicate {
	return ledger.Or(ledger.EndpointIs(path), ledger.EndpointIs(apiPrefix+path))
}

func under(prefix string) ledger.Predicate {
	return ledger.Or(ledger.EndpointHasPrefix(prefix), ledger.EndpointHasPrefix(apiPrefix+prefix))
}

func get(p ledger.Predicate) ledger.Predicate {
	return ledger.And(ledger.MethodIs(apiclient.MethodGet), p)
}

var capabilityChecks = []capabilityCheck{
	{name: "health check", area: get(at("/health"))},
	{name: "authentication", area: ledger.And(ledger.MethodIs(apiclient.MethodPost), at("/auth/telegram/verify"))},
	{name: "categories", area: under("/categories")},
	{name: "items", area: ledger.And(under("/items"), ledger.Not(ledger.EndpointContains("/availability")))},
	{name: "availability toggle", area: ledger.And(ledger.MethodIs(apiclient.MethodPatch), ledger.EndpointContains("/availability"))},
	{name: "locations", area: ledger.And(under("/locations"), ledger.Not(ledger.EndpointContains("/delivery-settings")))},
	{name: "delivery settings", area: ledger.EndpointContains("/delivery-settings")},
	{name: "media signing", area: ledger.And(ledger.MethodIs(apiclient.MethodPost), at("/media/sign-upload"))},
	{name: "orders list", area: get(at("/orders"))},
	{name: "order creation", area: ledger.And(ledger.MethodIs(apiclient.MethodPost), at("/orders"))},
	{name: "order retrieval", area: get(ledger.And(under("/orders/"), ledger.Not(ledger.EndpointContains("/stats/"))))},
	{name: "status updates", area: ledger.And(ledger.MethodIs(apiclient.MethodPatch), under("/orders/"), ledger.EndpointContains("/status"))},
	{name: "filtering", area: get(ledger.EndpointContains("?"))},
	{name: "statistics", area: get(ledger.EndpointContains("/stats/"))},
	{
		name:     "language support",
		area:     get(ledger.Or(under("/categories"), under("/items"), under("/orders"))),
		evidence: ledger.Or(ledger.PayloadContains("українськ"), ledger.PayloadContains("Ukrainian")),
	},
}
