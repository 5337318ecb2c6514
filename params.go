package main

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/robotadmin/api-contract-tests/config"
	"github.com/robotadmin/api-contract-tests/framework"

	"github.com/alessio/shellescape"
)

var defaultEnvFiles = []string{".env", "backend/.env"}

type commandParams struct {
	configFile     string
	envFile        string
	baseURL        string
	token          string
	suite          string
	filters        framework.RegexFilters
	timeout        time.Duration
	healthTimeout  time.Duration
	parallelism    int
	probeAPIPrefix bool
	vocabulary     string
	locationID     string
	startupWait    time.Duration
	jsonReport     string
	logJSON        bool
	listSuites     bool
	debug          bool
	debugAll       bool

	// explicitly holds the names of the flags that appeared on the command line.
	explicitly map[string]bool
}

func (c *commandParams) Read(args []string, stderr io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.configFile, "config", "", "YAML file with run settings")
	fs.StringVar(&c.envFile, "env-file", "", "file of environment variables to load (default: .env or backend/.env if present)")
	fs.StringVar(&c.baseURL, "url", "", "base URL of the backend under test (or "+config.EnvBaseURL+")")
	fs.StringVar(&c.token, "token", "", "bearer token to use before login (or "+config.EnvToken+")")
	fs.StringVar(&c.suite, "suite", "", "suite of scenarios to run (see -list-suites)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.DurationVar(&c.timeout, "timeout", 0, "timeout for each call")
	fs.DurationVar(&c.healthTimeout, "health-timeout", 0, "timeout for the health check")
	fs.IntVar(&c.parallelism, "parallelism", 0, "maximum concurrent read-only probes")
	fs.BoolVar(&c.probeAPIPrefix, "probe-api-prefix", false, `also probe read-only endpoints under "/api"`)
	fs.StringVar(&c.vocabulary, "status-vocabulary", "", `order status names: "english" or "ukrainian"`)
	fs.StringVar(&c.locationID, "location", "", "location to use if the backend does not list any")
	fs.DurationVar(&c.startupWait, "startup-wait", 0, "wait up to this long for the backend to become healthy")
	fs.StringVar(&c.jsonReport, "json-report", "", `write the report as JSON to this file ("-" for stdout)`)
	fs.BoolVar(&c.logJSON, "log-json", false, "write the run log as JSON lines")
	fs.BoolVar(&c.listSuites, "list-suites", false, "list the available suites and exit")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	c.explicitly = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.explicitly[f.Name] = true })
	return true
}

// loadConfig layers the configuration file, the environment, and the command line, in that order.
func (c *commandParams) loadConfig(getenv func(string) string) (config.Config, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return cfg, err
	}
	envFiles := defaultEnvFiles
	if c.envFile != "" {
		envFiles = []string{c.envFile}
	}
	if _, err := config.LoadDotEnv(envFiles...); err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(getenv)
	c.applyFlags(&cfg)
	return cfg, cfg.Validate()
}

func (c *commandParams) applyFlags(cfg *config.Config) {
	set := c.explicitly
	if set["url"] {
		cfg.BaseURL = c.baseURL
	}
	if set["token"] {
		cfg.Token = c.token
	}
	if set["suite"] {
		cfg.Suite = c.suite
	}
	if set["timeout"] {
		cfg.Timeouts.Default = c.timeout
	}
	if set["health-timeout"] {
		cfg.Timeouts.Health = c.healthTimeout
	}
	if set["parallelism"] {
		cfg.Parallelism = c.parallelism
	}
	if set["probe-api-prefix"] {
		cfg.ProbeAPIPrefix = c.probeAPIPrefix
	}
	if set["status-vocabulary"] {
		cfg.StatusVocabulary = c.vocabulary
	}
	if set["location"] {
		cfg.LocationID = c.locationID
	}
	if set["startup-wait"] {
		cfg.StartupWait = c.startupWait
	}
}

// rerunCommand builds a command line that runs only the given scenarios again.
func rerunCommand(program string, cfg config.Config, scenarios []string) string {
	var b commandBuilder
	b.add(program, "-url", cfg.BaseURL, "-suite", cfg.Suite)
	for _, s := range scenarios {
		b.add("-run", "^"+regexp.QuoteMeta(s)+"(/|$)")
	}
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
