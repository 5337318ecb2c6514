package framework

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loggedEvent struct {
	kind string
	id   string
	text string
}

type recordingTestLogger struct {
	events []loggedEvent
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, loggedEvent{"started", id.String(), ""})
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, loggedEvent{"error", id.String(), err.Error()})
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	r.events = append(r.events, loggedEvent{"finished", id.String(), fmt.Sprint(failed)})
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, loggedEvent{"skipped", id.String(), reason})
}

func idsOf(results []TestResult) []string {
	var ret []string
	for _, r := range results {
		ret = append(ret, r.TestID.String())
	}
	return ret
}

func TestPassingAndFailingTests(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {})
		c.Run("b", func(c *Context) {
			c.Errorf("bad thing %d", 1)
			c.Errorf("bad thing %d", 2)
		})
		c.Run("c", func(c *Context) {
			c.FailNow()
		})
	})

	assert.False(t, results.OK())
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(results.Tests))
	assert.Equal(t, []string{"b", "c"}, idsOf(results.Failures))
	assert.Len(t, results.Failures[0].Errors, 2)
	assert.Equal(t, "test failed with no failure message", results.Failures[1].Errors[0].Error())
	assert.Equal(t, 1, results.Passed())

	require.Len(t, results.AllFailures(), 3)
	assert.Equal(t, "[b]: bad thing 1", results.AllFailures()[0].Error())

	assert.Contains(t, logger.events, loggedEvent{"finished", "b", "true"})
	assert.Contains(t, logger.events, loggedEvent{"finished", "a", "false"})
}

func TestNestedIDs(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("orders", func(c *Context) {
			c.Run("create", func(c *Context) {
				assert.Equal(t, []string{"orders", "create"}, c.ID().Path)
			})
			c.Run("status", func(c *Context) {
				assert.Equal(t, "orders/status", c.ID().String())
			})
		})
	})
	assert.Equal(t, []string{"orders/create", "orders/status", "orders"}, idsOf(results.Tests))
}

func TestSkipIsNotFailure(t *testing.T) {
	logger := &recordingTestLogger{}
	ran := false
	results := Run(nil, logger, func(c *Context) {
		c.Run("items", func(c *Context) {
			c.SkipWithReason("no category was created")
			ran = true
		})
	})
	assert.False(t, ran)
	assert.True(t, results.OK())
	require.Len(t, results.Skipped, 1)
	assert.Equal(t, "no category was created", results.Skipped[0].SkipReason)
	assert.Contains(t, logger.events, loggedEvent{"skipped", "items", "no category was created"})
}

func TestPanicIsRecoveredAndLaterTestsRun(t *testing.T) {
	laterRan := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("explodes", func(c *Context) {
			var m map[string]int
			m["x"]++
		})
		c.Run("later", func(c *Context) {
			laterRan = true
		})
	})
	assert.True(t, laterRan)
	require.Len(t, results.Failures, 1)
	assert.True(t, strings.HasPrefix(results.Failures[0].Errors[0].Error(), "unexpected panic in test"))
}

func TestDeferredFunctionsRunAfterPanic(t *testing.T) {
	var order []string
	results := Run(nil, nil, func(c *Context) {
		c.Defer(func() { order = append(order, "first") })
		c.Defer(func() { order = append(order, "second") })
		panic(errors.New("boom"))
	})
	assert.Equal(t, []string{"second", "first"}, order)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "", results.Failures[0].TestID.String())
}

func TestDeferredFunctionsRunAfterSkip(t *testing.T) {
	cleaned := false
	Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Defer(func() { cleaned = true })
			c.Skip()
		})
	})
	assert.True(t, cleaned)
}

func TestPanicInDeferredFunctionIsRecorded(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Defer(func() { panic("cleanup broke") })
		})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "cleanup broke")
}

func TestFilterExcludesTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^orders"))
	ran := map[string]bool{}
	results := Run(filters.AsFilter, nil, func(c *Context) {
		c.Run("categories", func(c *Context) { ran["categories"] = true })
		c.Run("orders", func(c *Context) { ran["orders"] = true })
	})
	assert.Equal(t, map[string]bool{"categories": true}, ran)
	assert.Equal(t, []string{"orders"}, idsOf(results.Skipped))
	assert.Equal(t, "excluded by filter parameters", results.Skipped[0].SkipReason)
}

func TestReformatError(t *testing.T) {
	err := reformatError(errors.New("\n\tError Trace:\tx.go:1\n\tError:\tnot equal"))
	assert.Equal(t, "Error Trace:\tx.go:1\nError:\tnot equal", err.Error())

	plain := errors.New("plain")
	assert.Equal(t, plain, reformatError(plain))
}

func TestTeeLogger(t *testing.T) {
	var a, b CapturingLogger
	Tee(&a, nil, &b).Printf("hello %s", "world")
	require.Len(t, a.Output(), 1)
	assert.Equal(t, "hello world", a.Output()[0].Message)
	assert.Equal(t, a.Output()[0].Message, b.Output()[0].Message)
}

func TestMultiTestLogger(t *testing.T) {
	a, b := &recordingTestLogger{}, &recordingTestLogger{}
	Run(nil, MultiTestLogger{a, b}, func(c *Context) {
		c.Run("x", func(c *Context) {})
	})
	assert.Equal(t, a.events, b.events)
	assert.Len(t, a.events, 2)
}
