package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/robotadmin/api-contract-tests/apiclient"
	"github.com/robotadmin/api-contract-tests/framework"
	"github.com/robotadmin/api-contract-tests/logging"
	"github.com/robotadmin/api-contract-tests/report"
	"github.com/robotadmin/api-contract-tests/robottests"
	"github.com/robotadmin/api-contract-tests/servicedef"

	"github.com/samber/lo"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var params commandParams
	if !params.Read(args, stderr) {
		return 2
	}
	if params.listSuites {
		printSuites(stdout)
		return 0
	}

	cfg, err := params.loadConfig(os.Getenv)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %s\n", err)
		return 2
	}
	suite, err := robottests.SuiteNamed(cfg.Suite)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	vocabulary, _ := servicedef.Vocabulary(cfg.StatusVocabulary)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runTag := robottests.NewRunTag()
	runLog := logging.NewRunLogger(logging.Options{
		Output: stderr,
		Level:  logging.LevelFor(params.debug, params.debugAll),
		JSON:   params.logJSON,
		RunTag: runTag,
	})
	executor := apiclient.NewExecutor(cfg.BaseURL, apiclient.WithDefaultTimeout(cfg.Timeouts.Default))
	session := robottests.NewSession(executor, robottests.Settings{
		RunTag:         runTag,
		Vocabulary:     vocabulary,
		LocationID:     cfg.LocationID,
		HealthTimeout:  cfg.Timeouts.Health,
		Parallelism:    cfg.Parallelism,
		ProbeAPIPrefix: cfg.ProbeAPIPrefix,
		Login:          cfg.Login,
		Credential:     cfg.Token,
	}, runLog)

	if cfg.StartupWait > 0 {
		info, err := framework.AwaitService(ctx, cfg.BaseURL+"/health", cfg.StartupWait, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Backend is not available: %s\n", err)
			return 1
		}
		if info.Version != "" {
			fmt.Fprintf(stdout, "Backend version %s\n", info.Version)
		}
	}

	fmt.Fprintf(stdout, "Testing %s (run %s)\n", cfg.BaseURL, session.RunTag())
	framework.PrintFilterDescription(stdout, params.filters, suite.Name, suite.Scenarios)

	testLogger := framework.MultiTestLogger{
		&ConsoleTestLogger{
			Out:                  stdout,
			DebugOutputOnFailure: params.debug || params.debugAll,
			DebugOutputOnSuccess: params.debugAll,
		},
		runLogTestLogger{runLog: runLog},
	}

	start := time.Now()
	results, teardown, err := robottests.RunTestSuite(ctx, session, suite, params.filters.AsFilter, testLogger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	rep := report.Summarize(session.Ledger(), session.Resources(), teardown, results, time.Since(start))

	report.WriteConsole(stdout, rep)
	if params.jsonReport != "" {
		if err := writeJSONReport(params.jsonReport, stdout, rep); err != nil {
			fmt.Fprintf(stderr, "Could not write JSON report: %s\n", err)
			return 1
		}
	}

	if !rep.OK() {
		failed := lo.Uniq(lo.FilterMap(results.Failures, func(r framework.TestResult, _ int) (string, bool) {
			if len(r.TestID.Path) == 0 {
				return "", false
			}
			return r.TestID.Path[0], true
		}))
		if len(failed) > 0 {
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, "To run the failed scenarios again:")
			fmt.Fprintf(stdout, "  %s\n", rerunCommand(args[0], cfg, failed))
		}
	}
	return rep.ExitCode()
}

func writeJSONReport(path string, stdout io.Writer, rep report.Report) error {
	if path == "-" {
		return report.WriteJSON(stdout, rep)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteJSON(f, rep); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printSuites(out io.Writer) {
	for _, s := range robottests.Suites {
		fmt.Fprintf(out, "%-10s %s\n", s.Name, s.Description)
	}
}
