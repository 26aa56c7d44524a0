package reporters

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"

	"github.com/rmoorman/unitrun/harness"
)

var (
	failureColor = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// SimpleReporter writes human-readable progress and summary output to a
// console. The engine serializes reporter calls, so no locking is needed
// here.
type SimpleReporter struct {
	harness.NullReporter
	out            io.Writer
	reportProgress bool
	failedNames    []string
	failedSeen     map[string]bool
}

func NewSimpleReporter(out io.Writer, reportProgress bool) *SimpleReporter {
	return &SimpleReporter{
		out:            out,
		reportProgress: reportProgress,
		failedSeen:     make(map[string]bool),
	}
}

func (r *SimpleReporter) Begin(details *harness.TestDetails) {
	if !r.reportProgress {
		return
	}
	fmt.Fprintf(r.out, "%s:%d: Begin %s\n", details.FileName, details.LineNumber, details.TestName)
}

func (r *SimpleReporter) Fail(details *harness.TestDetails, message string) {
	failureColor.Fprintf(r.out, "%s:%d: ERROR in %s: %s\n",
		details.FileName, details.LineNumber, details.TestName, message)
	name := details.FullName()
	if !r.failedSeen[name] {
		r.failedSeen[name] = true
		r.failedNames = append(r.failedNames, name)
	}
}

func (r *SimpleReporter) Summary(summary *harness.Summary) {
	fmt.Fprintln(r.out)
	if summary.NumFailedTests == 0 {
		successColor.Fprintf(r.out, "Success: All %d tests passed (%d checks).\n",
			summary.NumIncludedTests, summary.NumChecks)
	} else {
		failureColor.Fprintf(r.out, "FAILURE: %d out of %d tests failed (%d out of %d checks failed).\n",
			summary.NumFailedTests, summary.NumIncludedTests,
			summary.NumFailedChecks, summary.NumChecks)
	}
	fmt.Fprintf(r.out, "Test time: %.3fs\n", summary.ElapsedSeconds)
	switch {
	case summary.NumExcludedTests == 1:
		fmt.Fprintf(r.out, "\nNote: One test was excluded!\n")
	case summary.NumExcludedTests > 1:
		fmt.Fprintf(r.out, "\nNote: %d tests were excluded!\n", summary.NumExcludedTests)
	}
	if len(r.failedNames) > 0 {
		fmt.Fprintf(r.out, "\nTo re-run the failed tests, filter with:\n  -run %s\n",
			shellescape.Quote(rerunPattern(r.failedNames)))
	}
}

// rerunPattern builds a regex matching exactly the given full test names,
// suitable for a MustMatch filter.
func rerunPattern(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, regexp.QuoteMeta(name))
	}
	return "^(" + strings.Join(quoted, "|") + ")$"
}
