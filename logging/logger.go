// Package logging provides the run-level structured log of a test run. Each HTTP call made against
// the backend produces one event, and scenario and teardown milestones are logged around them.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the minimal logging interface shared with the test framework's debug loggers.
type Logger interface {
	Printf(message string, args ...interface{})
}

// Options configures a RunLogger.
type Options struct {
	// Output defaults to os.Stderr.
	Output io.Writer
	Level  zerolog.Level
	// JSON disables the human-readable console writer.
	JSON   bool
	RunTag string
}

// RunLogger wraps a zerolog.Logger. It also implements Logger, logging Printf messages at debug
// level.
type RunLogger struct {
	logger zerolog.Logger
}

func NewRunLogger(opts Options) *RunLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}
	}
	ctx := zerolog.New(out).Level(opts.Level).With().Timestamp()
	if opts.RunTag != "" {
		ctx = ctx.Str("run", opts.RunTag)
	}
	return &RunLogger{logger: ctx.Logger()}
}

// Nop returns a RunLogger that discards everything.
func Nop() *RunLogger {
	return &RunLogger{logger: zerolog.Nop()}
}

// LevelFor maps the command-line debug switches to a log level.
func LevelFor(debug, debugAll bool) zerolog.Level {
	switch {
	case debugAll:
		return zerolog.DebugLevel
	case debug:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

func (r *RunLogger) Printf(message string, args ...interface{}) {
	r.logger.Debug().Msg(fmt.Sprintf(message, args...))
}

// Infof logs a run milestone.
func (r *RunLogger) Infof(message string, args ...interface{}) {
	r.logger.Info().Msg(fmt.Sprintf(message, args...))
}

// Warnf logs a problem that does not stop the run.
func (r *RunLogger) Warnf(message string, args ...interface{}) {
	r.logger.Warn().Msg(fmt.Sprintf(message, args...))
}

// CallEvent describes one completed HTTP call.
type CallEvent struct {
	Scenario     string
	Method       string
	Endpoint     string
	StatusCode   int
	Success      bool
	Expected     bool
	Latency      time.Duration
	ErrorMessage string
}

// Call logs one HTTP call. Successful calls are logged at debug level, failed ones at warn level.
func (r *RunLogger) Call(e CallEvent) {
	ev := r.logger.Debug()
	if !e.Success {
		ev = r.logger.Warn()
	}
	if e.Scenario != "" {
		ev = ev.Str("scenario", e.Scenario)
	}
	ev = ev.Str("method", e.Method).
		Str("endpoint", e.Endpoint).
		Int("status", e.StatusCode).
		Bool("expected_success", e.Expected).
		Dur("latency", e.Latency)
	if e.ErrorMessage != "" {
		ev = ev.Str("error", e.ErrorMessage)
	}
	if e.Success {
		ev.Msg("call passed")
	} else {
		ev.Msg("call failed")
	}
}

// Teardown logs the result of removing the resources created during the run.
func (r *RunLogger) Teardown(attempted, failed int, elapsed time.Duration) {
	ev := r.logger.Info()
	if failed > 0 {
		ev = r.logger.Warn()
	}
	ev.Int("attempted", attempted).Int("failed", failed).Dur("elapsed", elapsed).Msg("teardown finished")
}

// ScenarioFinished logs the end of a scenario or sub-scenario that ran.
func (r *RunLogger) ScenarioFinished(id string, failed bool) {
	if failed {
		r.logger.Warn().Str("scenario", id).Msg("scenario failed")
		return
	}
	r.logger.Info().Str("scenario", id).Msg("scenario passed")
}

func (r *RunLogger) ScenarioSkipped(id, reason string) {
	r.logger.Info().Str("scenario", id).Str("reason", reason).Msg("scenario skipped")
}
