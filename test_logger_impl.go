package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/robotadmin/api-contract-tests/framework"
	"github.com/robotadmin/api-contract-tests/logging"

	"github.com/fatih/color"
)

var (
	failedColor  = color.New(color.FgRed, color.Bold)
	skippedColor = color.New(color.FgYellow)
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "  %s: %s\n", failedColor.Sprint("FAILED"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s: %s\n", skippedColor.Sprint("SKIPPED"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s: %s (%s)\n", skippedColor.Sprint("SKIPPED"), id, reason)
	}
}

// runLogTestLogger records scenario results in the structured run log.
type runLogTestLogger struct {
	runLog *logging.RunLogger
}

func (r runLogTestLogger) TestStarted(framework.TestID)      {}
func (r runLogTestLogger) TestError(framework.TestID, error) {}

func (r runLogTestLogger) TestFinished(id framework.TestID, failed bool, _ framework.CapturedOutput) {
	r.runLog.ScenarioFinished(id.String(), failed)
}

func (r runLogTestLogger) TestSkipped(id framework.TestID, reason string) {
	r.runLog.ScenarioSkipped(id.String(), reason)
}
