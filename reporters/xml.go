package reporters

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/rmoorman/unitrun/harness"
)

// XMLReporter accumulates per-test outcomes and writes a single XML document
// when the run's summary arrives.
type XMLReporter struct {
	out   io.Writer
	tests map[int]*xmlTestRecord
}

type xmlTestRecord struct {
	details        harness.TestDetails
	failures       []xmlFailureRecord
	elapsedSeconds float64
}

type xmlFailureRecord struct {
	details harness.TestDetails
	message string
}

func NewXMLReporter(out io.Writer) *XMLReporter {
	return &XMLReporter{out: out, tests: make(map[int]*xmlTestRecord)}
}

func (r *XMLReporter) record(index int) *xmlTestRecord {
	t := r.tests[index]
	if t == nil {
		t = &xmlTestRecord{}
		r.tests[index] = t
	}
	return t
}

func (r *XMLReporter) Begin(details *harness.TestDetails) {
	r.record(details.TestIndex).details = *details
}

func (r *XMLReporter) Fail(details *harness.TestDetails, message string) {
	t := r.record(details.TestIndex)
	t.failures = append(t.failures, xmlFailureRecord{details: *details, message: message})
}

func (r *XMLReporter) End(details *harness.TestDetails, elapsedSeconds float64) {
	r.record(details.TestIndex).elapsedSeconds = elapsedSeconds
}

func (r *XMLReporter) Summary(summary *harness.Summary) {
	doc := xmlResults{
		Tests:       summary.NumIncludedTests,
		FailedTests: summary.NumFailedTests,
		Checks:      summary.NumChecks,
		Failures:    summary.NumFailedChecks,
		Time:        summary.ElapsedSeconds,
	}
	indexes := make([]int, 0, len(r.tests))
	for index := range r.tests {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	for _, index := range indexes {
		t := r.tests[index]
		tc := xmlTestCase{
			Suite: t.details.SuiteName,
			Name:  t.details.TestName,
			Time:  t.elapsedSeconds,
		}
		for _, f := range t.failures {
			tc.Failures = append(tc.Failures, xmlFailure{
				Message: fmt.Sprintf("%s(%d) : %s", f.details.FileName, f.details.LineNumber, f.message),
			})
		}
		doc.TestCases = append(doc.TestCases, tc)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintf(r.out, "%s%s\n", xml.Header, data)
}

type xmlResults struct {
	XMLName     xml.Name      `xml:"unittest-results"`
	Tests       int           `xml:"tests,attr"`
	FailedTests int           `xml:"failedtests,attr"`
	Checks      int64         `xml:"checks,attr"`
	Failures    int64         `xml:"failures,attr"`
	Time        float64       `xml:"time,attr"`
	TestCases   []xmlTestCase `xml:"test"`
}

type xmlTestCase struct {
	Suite    string       `xml:"suite,attr"`
	Name     string       `xml:"name,attr"`
	Time     float64      `xml:"time,attr"`
	Failures []xmlFailure `xml:"failure"`
}

type xmlFailure struct {
	Message string `xml:"message,attr"`
}
