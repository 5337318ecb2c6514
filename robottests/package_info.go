// Package robottests contains the backend contract scenarios and their supporting API.
//
// Scenarios are functions of *T that run in a fixed order (see AllScenarios) against one Session,
// which owns the credential, the ledger of calls, and the resources created on the backend.
// Suites select subsets of the scenarios. Test infrastructure that is not specific to this backend
// is in the lower-level framework package.
package robottests
