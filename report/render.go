package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/robotadmin/api-contract-tests/lifecycle"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

var (
	passColor = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
	headColor = color.New(color.Bold)
)

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func (v Verdict) color() *color.Color {
	switch v {
	case VerdictFullyFunctional:
		return passColor
	case VerdictMostlyFunctional, VerdictPartiallyFunctional:
		return warnColor
	default:
		return failColor
	}
}

func (r Rating) color() *color.Color {
	switch r {
	case RatingExcellent:
		return passColor
	case RatingGood:
		return warnColor
	default:
		return failColor
	}
}

// WriteConsole prints the report as a set of tables.
func WriteConsole(w io.Writer, r Report) {
	fmt.Fprintln(w)
	headColor.Fprintln(w, "Summary")
	summary := tablewriter.NewWriter(w)
	summary.SetAutoFormatHeaders(false)
	summary.SetHeader([]string{"Calls", "Passed", "Failed", "Success rate", "Avg latency", "Max latency", "Elapsed"})
	rate := "n/a"
	if pct, ok := r.Stats.SuccessRate(); ok {
		rate = strconv.FormatFloat(pct, 'f', 1, 64) + "%"
	}
	summary.Append([]string{
		strconv.Itoa(r.Stats.Total),
		strconv.Itoa(r.Stats.Passed),
		strconv.Itoa(r.Stats.Failed),
		rate,
		fmt.Sprintf("%.1fms", milliseconds(r.Stats.AvgLatency)),
		fmt.Sprintf("%.1fms", milliseconds(r.Stats.MaxLatency)),
		r.Elapsed.Round(time.Millisecond).String(),
	})
	summary.Render()

	fmt.Fprintln(w)
	headColor.Fprintln(w, "Capabilities")
	capabilities := tablewriter.NewWriter(w)
	capabilities.SetAutoFormatHeaders(false)
	capabilities.SetHeader([]string{"Capability", "Status"})
	for _, c := range r.Capabilities {
		status := failColor.Sprint("NOT WORKING")
		switch {
		case !c.Exercised:
			status = "not exercised"
		case c.Working:
			status = passColor.Sprint("WORKING")
		}
		capabilities.Append([]string{c.Name, status})
	}
	capabilities.Render()

	if len(r.Failures) > 0 {
		fmt.Fprintln(w)
		failColor.Fprintln(w, "Failed calls")
		failures := tablewriter.NewWriter(w)
		failures.SetAutoFormatHeaders(false)
		failures.SetAutoWrapText(false)
		failures.SetHeader([]string{"Method", "Endpoint", "Status", "Message"})
		for _, f := range r.Failures {
			failures.Append([]string{string(f.Method), f.Endpoint, strconv.Itoa(f.StatusCode), f.Message})
		}
		failures.Render()
	}

	if len(r.SkippedScenarios) > 0 {
		fmt.Fprintln(w)
		warnColor.Fprintln(w, "Skipped scenarios")
		for _, s := range r.SkippedScenarios {
			fmt.Fprintf(w, "  %s (%s)\n", s.ID, s.Reason)
		}
	}

	if len(r.LeftBehind) > 0 {
		fmt.Fprintln(w)
		failColor.Fprintln(w, "Resources left on the backend")
		for _, res := range r.LeftBehind {
			fmt.Fprintf(w, "  %s\n", res)
		}
	}

	working, exercised := r.WorkingCount()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Performance: %s\n", r.Performance.color().Sprint(r.Performance))
	fmt.Fprintf(w, "Verdict: %s (%d of %d exercised capabilities working)\n",
		r.Verdict.color().Sprint(r.Verdict), working, exercised)
}

type jsonReport struct {
	Total            int              `json:"total"`
	Passed           int              `json:"passed"`
	Failed           int              `json:"failed"`
	SuccessRate      *float64         `json:"successRate"`
	AvgLatencyMs     float64          `json:"avgLatencyMs"`
	MaxLatencyMs     float64          `json:"maxLatencyMs"`
	ElapsedMs        float64          `json:"elapsedMs"`
	Performance      Rating           `json:"performance"`
	Verdict          Verdict          `json:"verdict"`
	Capabilities     []Capability     `json:"capabilities"`
	Failures         []Failure        `json:"failures"`
	FailedScenarios  []ScenarioResult `json:"failedScenarios"`
	SkippedScenarios []ScenarioResult `json:"skippedScenarios"`
	LeftBehind       []string         `json:"leftBehind"`
}

// WriteJSON writes the report as an indented JSON document. The success rate is null if no calls
// were made.
func WriteJSON(w io.Writer, r Report) error {
	out := jsonReport{
		Total:            r.Stats.Total,
		Passed:           r.Stats.Passed,
		Failed:           r.Stats.Failed,
		AvgLatencyMs:     milliseconds(r.Stats.AvgLatency),
		MaxLatencyMs:     milliseconds(r.Stats.MaxLatency),
		ElapsedMs:        milliseconds(r.Elapsed),
		Performance:      r.Performance,
		Verdict:          r.Verdict,
		Capabilities:     nonNil(r.Capabilities),
		Failures:         nonNil(r.Failures),
		FailedScenarios:  nonNil(r.FailedScenarios),
		SkippedScenarios: nonNil(r.SkippedScenarios),
		LeftBehind:       lo.Map(r.LeftBehind, func(res lifecycle.Resource, _ int) string { return res.String() }),
	}
	if pct, ok := r.Stats.SuccessRate(); ok {
		out.SuccessRate = &pct
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
