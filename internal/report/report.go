// Package report collects per-tool outcomes of a run and prints the
// closing summary.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/beaconworks/devstrap/internal/messages"
)

// Status classifies how a tool operation ended.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
)

// Outcome records what happened to one tool during a run.
type Outcome struct {
	Tool    string
	Action  string
	Status  Status
	Detail  string
	Err     error
	Elapsed time.Duration
}

// OK records a successful operation.
func OK(tool, action, detail string) Outcome {
	return Outcome{Tool: tool, Action: action, Status: StatusOK, Detail: detail}
}

// Skipped records an operation that did not need to run.
func Skipped(tool, action, detail string) Outcome {
	return Outcome{Tool: tool, Action: action, Status: StatusSkipped, Detail: detail}
}

// Failed records a failed operation.
func Failed(tool, action string, err error) Outcome {
	return Outcome{Tool: tool, Action: action, Status: StatusFailed, Err: err}
}

// WithElapsed returns a copy of o carrying the operation duration.
func (o Outcome) WithElapsed(elapsed time.Duration) Outcome {
	o.Elapsed = elapsed
	return o
}

// FailedCount returns how many outcomes failed.
func FailedCount(outcomes []Outcome) int {
	count := 0
	for _, outcome := range outcomes {
		if outcome.Status == StatusFailed {
			count++
		}
	}
	return count
}

// Print writes the run summary: one line per tool, then totals.
func Print(w io.Writer, outcomes []Outcome) {
	if len(outcomes) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w, messages.ReportSummaryHeader)

	toolWidth := 0
	actionWidth := 0
	for _, outcome := range outcomes {
		if len(outcome.Tool) > toolWidth {
			toolWidth = len(outcome.Tool)
		}
		if len(outcome.Action) > actionWidth {
			actionWidth = len(outcome.Action)
		}
	}

	succeeded, skipped, failed := 0, 0, 0
	for _, outcome := range outcomes {
		var label string
		switch outcome.Status {
		case StatusOK:
			label = color.GreenString(messages.ReportStatusOKLabel)
			succeeded++
		case StatusSkipped:
			label = color.YellowString(messages.ReportStatusSkipLabel)
			skipped++
		case StatusFailed:
			label = color.RedString(messages.ReportStatusFailLabel)
			failed++
		}
		_, _ = fmt.Fprintf(w, "  %s  %-*s  %-*s  %s\n",
			label, toolWidth, outcome.Tool, actionWidth, outcome.Action, describe(outcome))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, messages.ReportTotalsFmt+"\n", len(outcomes), succeeded, skipped, failed)
}

func describe(outcome Outcome) string {
	var parts []string
	if outcome.Status == StatusFailed && outcome.Err != nil {
		parts = append(parts, outcome.Err.Error())
	} else if outcome.Detail != "" {
		parts = append(parts, outcome.Detail)
	}
	if outcome.Elapsed > 0 {
		parts = append(parts, "("+outcome.Elapsed.Round(100*time.Millisecond).String()+")")
	}
	return strings.Join(parts, " ")
}
