package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	var ret []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		ret = append(ret, m)
	}
	return ret
}

func TestCallEvents(t *testing.T) {
	var buf bytes.Buffer
	l := NewRunLogger(Options{Output: &buf, Level: zerolog.DebugLevel, JSON: true, RunTag: "abc"})

	l.Call(CallEvent{Scenario: "orders", Method: "POST", Endpoint: "/orders", StatusCode: 201, Success: true,
		Expected: true, Latency: time.Millisecond * 40})
	l.Call(CallEvent{Method: "GET", Endpoint: "/me", StatusCode: 200, Success: false,
		ErrorMessage: "expected rejection, got HTTP 200: OK"})

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "abc", lines[0]["run"])
	assert.Equal(t, "orders", lines[0]["scenario"])
	assert.Equal(t, "/orders", lines[0]["endpoint"])
	assert.Equal(t, 201.0, lines[0]["status"])
	assert.Nil(t, lines[0]["error"])

	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "call failed", lines[1]["message"])
	assert.Equal(t, "expected rejection, got HTTP 200: OK", lines[1]["error"])
	assert.Nil(t, lines[1]["scenario"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewRunLogger(Options{Output: &buf, Level: LevelFor(false, false), JSON: true})

	l.Printf("hidden %d", 1)
	l.Infof("hidden too")
	l.Call(CallEvent{Method: "GET", Endpoint: "/health", StatusCode: 200, Success: true})
	l.Warnf("shown %s", "warning")

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown warning", lines[0]["message"])
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, LevelFor(false, false))
	assert.Equal(t, zerolog.InfoLevel, LevelFor(true, false))
	assert.Equal(t, zerolog.DebugLevel, LevelFor(false, true))
	assert.Equal(t, zerolog.DebugLevel, LevelFor(true, true))
}

func TestTeardownEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewRunLogger(Options{Output: &buf, Level: zerolog.InfoLevel, JSON: true})
	l.Teardown(4, 1, time.Second)

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, 4.0, lines[0]["attempted"])
	assert.Equal(t, 1.0, lines[0]["failed"])
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Printf("nothing")
	l.Call(CallEvent{Method: "GET"})
}

func TestConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewRunLogger(Options{Output: &buf, Level: zerolog.InfoLevel})
	l.Infof("connected to %s", "http://localhost")
	assert.Contains(t, buf.String(), "connected to http://localhost")
}

func TestScenarioEvents(t *testing.T) {
	var buf bytes.Buffer
	l := NewRunLogger(Options{Output: &buf, Level: zerolog.InfoLevel, JSON: true})

	l.ScenarioFinished("orders/read back", false)
	l.ScenarioFinished("orders/status transitions", true)
	l.ScenarioSkipped("orders/create pickup order", `menu item "pizza" was not created`)

	lines := jsonLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "scenario passed", lines[0]["message"])
	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "orders/status transitions", lines[1]["scenario"])
	assert.Equal(t, "scenario skipped", lines[2]["message"])
	assert.Equal(t, `menu item "pizza" was not created`, lines[2]["reason"])
}
