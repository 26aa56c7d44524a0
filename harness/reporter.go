package harness

// Reporter is the sink for run lifecycle events. The engine serializes all
// calls on one mutex, so implementations do not need to be thread-safe. For
// a given test, Begin precedes any Fail for that test, which precedes its
// End; Summary is delivered exactly once, after every worker has finished.
// No ordering is guaranteed between events of different tests.
type Reporter interface {
	Begin(details *TestDetails)
	Fail(details *TestDetails, message string)
	End(details *TestDetails, elapsedSeconds float64)
	Summary(summary *Summary)
}

// NullReporter discards all events. It is the fallback when Run is given a
// nil reporter, and can be embedded by implementations that only care about
// some events.
type NullReporter struct{}

func (NullReporter) Begin(*TestDetails)        {}
func (NullReporter) Fail(*TestDetails, string) {}
func (NullReporter) End(*TestDetails, float64) {}
func (NullReporter) Summary(*Summary)          {}
