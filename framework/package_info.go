// Package framework contains the domain-neutral test harness infrastructure: a tree of test
// contexts that behaves like Go's *testing.T outside of the Go test runner, regex filters for
// selecting tests, result accumulation, and a startup wait for the system under test.
//
// The robottests package builds the backend-specific test API on top of it.
package framework
