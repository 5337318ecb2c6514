package robottests

import (
	"context"

	"github.com/robotadmin/api-contract-tests/framework"
	"github.com/robotadmin/api-contract-tests/lifecycle"
)

// RunTestSuite runs the suite's scenarios in order and then tears down everything they created.
// Teardown runs even if a scenario panics, and is not subject to the filter.
func RunTestSuite(
	ctx context.Context,
	session *Session,
	suite Suite,
	filter framework.Filter,
	testLogger framework.TestLogger,
) (framework.Results, lifecycle.TeardownResult, error) {
	scenarios, err := suite.Select()
	if err != nil {
		return framework.Results{}, lifecycle.TeardownResult{}, err
	}

	var teardown lifecycle.TeardownResult
	results := framework.Run(filter, testLogger, func(c *framework.Context) {
		c.Defer(func() {
			teardown = session.Teardown(context.WithoutCancel(ctx))
		})
		t := newT(c, session, ctx)
		for _, s := range scenarios {
			t.Run(s.Name, s.Action)
		}
	})
	return results, teardown, nil
}
