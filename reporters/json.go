package reporters

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/rmoorman/unitrun/harness"
)

// JSONReporter writes one JSON object per line for each run event, suitable
// for machine consumption by CI tooling.
type JSONReporter struct {
	out io.Writer
}

func NewJSONReporter(out io.Writer) *JSONReporter {
	return &JSONReporter{out: out}
}

type jsonEvent struct {
	Event          string              `json:"event"`
	Suite          string              `json:"suite,omitempty"`
	Test           string              `json:"test,omitempty"`
	File           string              `json:"file,omitempty"`
	Line           ldvalue.OptionalInt `json:"line,omitempty"`
	Message        string              `json:"message,omitempty"`
	ElapsedSeconds *float64            `json:"elapsedSeconds,omitempty"`
	Summary        *jsonSummary        `json:"summary,omitempty"`
}

type jsonSummary struct {
	IncludedTests  int     `json:"includedTests"`
	FailedTests    int     `json:"failedTests"`
	ExcludedTests  int     `json:"excludedTests"`
	DisabledTests  int     `json:"disabledTests"`
	Checks         int64   `json:"checks"`
	FailedChecks   int64   `json:"failedChecks"`
	ElapsedSeconds float64 `json:"elapsedSeconds"`
}

func (r *JSONReporter) emit(e jsonEvent) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	fmt.Fprintf(r.out, "%s\n", data)
}

func (r *JSONReporter) Begin(details *harness.TestDetails) {
	r.emit(jsonEvent{
		Event: "begin",
		Suite: details.SuiteName,
		Test:  details.TestName,
		File:  details.FileName,
		Line:  ldvalue.NewOptionalInt(details.LineNumber),
	})
}

func (r *JSONReporter) Fail(details *harness.TestDetails, message string) {
	r.emit(jsonEvent{
		Event:   "fail",
		Suite:   details.SuiteName,
		Test:    details.TestName,
		File:    details.FileName,
		Line:    ldvalue.NewOptionalInt(details.LineNumber),
		Message: message,
	})
}

func (r *JSONReporter) End(details *harness.TestDetails, elapsedSeconds float64) {
	r.emit(jsonEvent{
		Event:          "end",
		Suite:          details.SuiteName,
		Test:           details.TestName,
		ElapsedSeconds: &elapsedSeconds,
	})
}

func (r *JSONReporter) Summary(summary *harness.Summary) {
	r.emit(jsonEvent{
		Event: "summary",
		Summary: &jsonSummary{
			IncludedTests:  summary.NumIncludedTests,
			FailedTests:    summary.NumFailedTests,
			ExcludedTests:  summary.NumExcludedTests,
			DisabledTests:  summary.NumDisabledTests,
			Checks:         summary.NumChecks,
			FailedChecks:   summary.NumFailedChecks,
			ElapsedSeconds: summary.ElapsedSeconds,
		},
	})
}
