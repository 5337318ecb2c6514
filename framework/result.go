package framework

import (
	"fmt"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skipped  []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Passed counts tests that neither failed nor were skipped.
func (r Results) Passed() int {
	return len(r.Tests) - len(r.Failures) - len(r.Skipped)
}

type TestID struct {
	Path []string
}

// Plus returns the ID of a sub-test. It never shares the receiver's backing array.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// AllFailures flattens the failed tests into one error per recorded message.
func (r Results) AllFailures() []TestFailure {
	var ret []TestFailure
	for _, t := range r.Failures {
		for _, e := range t.Errors {
			ret = append(ret, TestFailure{ID: t.TestID, Err: e})
		}
	}
	return ret
}
