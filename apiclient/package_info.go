// Package apiclient is the request executor of the contract-test harness: it sends one HTTP call
// to the backend under test and turns whatever happens into an Outcome.
//
// It knows nothing about sessions, resources, or scenarios. Callers decide what to do with each
// Outcome (append it to a ledger, record a created resource, fail a scenario).
package apiclient
