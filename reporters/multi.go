package reporters

import "github.com/rmoorman/unitrun/harness"

// MultiReporter fans every event out to several reporters, in order.
type MultiReporter struct {
	reporters []harness.Reporter
}

func NewMultiReporter(reporters ...harness.Reporter) *MultiReporter {
	return &MultiReporter{reporters: reporters}
}

func (r *MultiReporter) Begin(details *harness.TestDetails) {
	for _, rep := range r.reporters {
		rep.Begin(details)
	}
}

func (r *MultiReporter) Fail(details *harness.TestDetails, message string) {
	for _, rep := range r.reporters {
		rep.Fail(details, message)
	}
}

func (r *MultiReporter) End(details *harness.TestDetails, elapsedSeconds float64) {
	for _, rep := range r.reporters {
		rep.End(details, elapsedSeconds)
	}
}

func (r *MultiReporter) Summary(summary *harness.Summary) {
	for _, rep := range r.reporters {
		rep.Summary(summary)
	}
}
