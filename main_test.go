package main

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robotadmin/api-contract-tests/config"
	"github.com/robotadmin/api-contract-tests/framework"

	"github.com/fatih/color"
	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func noEnv(string) string { return "" }

func TestConfigLayering(t *testing.T) {
	configFile := writeFile(t, "robot.yaml", `
base_url: https://from-file.example.com
suite: backend
parallelism: 2
timeouts: {default: 10s, health: 3s}
`)
	envFile := writeFile(t, ".env", "")
	env := map[string]string{config.EnvBaseURL: "https://from-env.example.com/", config.EnvToken: "env-token"}

	var params commandParams
	require.True(t, params.Read([]string{"robot-tests", "-config", configFile, "-env-file", envFile,
		"-parallelism", "6", "-status-vocabulary", "ukrainian"}, &bytes.Buffer{}))
	cfg, err := params.loadConfig(func(name string) string { return env[name] })
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.com", cfg.BaseURL)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, "backend", cfg.Suite)
	assert.Equal(t, 6, cfg.Parallelism)
	assert.Equal(t, "ukrainian", cfg.StatusVocabulary)
	assert.Equal(t, config.Timeouts{Default: time.Second * 10, Health: time.Second * 3}, cfg.Timeouts)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	var params commandParams
	require.True(t, params.Read([]string{"robot-tests", "-url", "http://localhost:8001", "-timeout", "2s",
		"-env-file", writeFile(t, ".env", "")}, &bytes.Buffer{}))
	cfg, err := params.loadConfig(func(name string) string {
		if name == config.EnvBaseURL {
			return "https://from-env.example.com"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8001", cfg.BaseURL)
	assert.Equal(t, time.Second*2, cfg.Timeouts.Default)
	assert.Equal(t, config.DefaultHealthTimeout, cfg.Timeouts.Health)
	assert.Equal(t, "full", cfg.Suite)
}

func TestDotEnvFileSeedsEnvironment(t *testing.T) {
	t.Setenv(config.EnvToken, "placeholder")
	require.NoError(t, os.Unsetenv(config.EnvToken))

	var params commandParams
	require.True(t, params.Read([]string{"robot-tests", "-url", "http://localhost:8001",
		"-env-file", writeFile(t, ".env", config.EnvToken+"=dotenv-token\n")}, &bytes.Buffer{}))
	cfg, err := params.loadConfig(os.Getenv)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-token", cfg.Token)
}

func TestReadRejectsBadArguments(t *testing.T) {
	var stderr bytes.Buffer
	var params commandParams
	assert.False(t, params.Read([]string{"robot-tests", "-run", "("}, &stderr))
	assert.False(t, params.Read([]string{"robot-tests", "extra"}, &stderr))
	assert.Contains(t, stderr.String(), "unexpected arguments: extra")
}

func TestRerunCommand(t *testing.T) {
	cfg := config.Default()
	cfg.BaseURL = "https://api.example.com"
	assert.Equal(t,
		`robot-tests -url https://api.example.com -suite full -run '^orders(/|$)' -run '^order filtering(/|$)'`,
		rerunCommand("robot-tests", cfg, []string{"orders", "order filtering"}))
}

func TestListSuites(t *testing.T) {
	var stdout bytes.Buffer
	assert.Equal(t, 0, run([]string{"robot-tests", "-list-suites"}, &stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "smoke")
	assert.Contains(t, stdout.String(), "connectivity and authentication only")
}

func TestRunWithoutURL(t *testing.T) {
	t.Setenv(config.EnvBaseURL, "")
	var stderr bytes.Buffer
	code := run([]string{"robot-tests", "-env-file", writeFile(t, ".env", "")}, &bytes.Buffer{}, &stderr)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "base URL is required")
}

func TestRunAgainstFailingBackend(t *testing.T) {
	color.NoColor = true
	httphelpers.WithServer(httphelpers.HandlerWithStatus(503), func(server *httptest.Server) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"robot-tests", "-url", server.URL, "-suite", "smoke", "-json-report", "-",
			"-env-file", writeFile(t, ".env", "")}, &stdout, &stderr)

		assert.Equal(t, 1, code)
		out := stdout.String()
		assert.Contains(t, out, `Running suite "smoke"`)
		assert.Contains(t, out, "FAILED: health/health endpoint")
		assert.Contains(t, out, "Verdict: critical issues")
		assert.Contains(t, out, `"verdict": "critical issues"`)
		assert.Contains(t, out, "To run the failed scenarios again:")
		assert.Contains(t, out, `-run '^health(/|$)'`)
	})
}

func TestConsoleTestLogger(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	id := framework.TestID{Path: []string{"orders", "read back"}}
	logger.TestStarted(id)
	logger.TestError(id, errors.New("first line\nsecond line"))
	logger.TestFinished(id, true, framework.CapturedOutput{{Time: time.Now(), Message: "GET /orders/1"}})
	logger.TestSkipped(framework.TestID{Path: []string{"media"}}, "excluded by filter parameters")

	out := buf.String()
	assert.Contains(t, out, "[orders/read back]\n  first line\n  second line\n")
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "DEBUG [")
	assert.Contains(t, out, "GET /orders/1")
	assert.Contains(t, out, "media (excluded by filter parameters)")
}
