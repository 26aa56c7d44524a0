package harness

import "fmt"

// TestDetails identifies one registered test. FileName and LineNumber refer
// to the registration site, except in failure reports, where they are
// overridden with the location of the failing check.
type TestDetails struct {
	TestIndex  int
	SuiteName  string
	TestName   string
	FileName   string
	LineNumber int
}

// FullName returns "suite.name", the form used when matching tests against
// name filters.
func (d *TestDetails) FullName() string {
	return fmt.Sprintf("%s.%s", d.SuiteName, d.TestName)
}

// Summary is the aggregate result of one run, produced after all workers
// have finished.
type Summary struct {
	NumIncludedTests int
	NumFailedTests   int
	NumExcludedTests int
	NumDisabledTests int
	NumChecks        int64
	NumFailedChecks  int64
	ElapsedSeconds   float64
}

// OK reports whether the run had no failed tests.
func (s *Summary) OK() bool {
	return s.NumFailedTests == 0
}
