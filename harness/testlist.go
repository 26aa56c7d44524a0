package harness

import (
	"runtime"
	"sort"

	"github.com/rmoorman/unitrun/logging"
)

// Test is the contract the engine requires from a test case. Run receives
// the test's TestResults handle for recording check outcomes; a non-nil
// error (or a panic escaping Run) fails the test.
type Test interface {
	Enabled() bool
	Run(tr *TestResults) error
}

type registeredTest struct {
	test    Test
	details TestDetails
	results TestResults
}

// TestList is a registry of tests. Registration happens single-threaded,
// typically from init functions; the list is read-only while Run is active.
type TestList struct {
	tests  []*registeredTest
	logger logging.Logger
}

func NewTestList() *TestList {
	return &TestList{logger: logging.NullLogger()}
}

var defaultList = NewTestList()

// DefaultList returns the process-wide registry. Code that needs an isolated
// registry (such as the engine's own tests) should use NewTestList instead.
func DefaultList() *TestList {
	return defaultList
}

// SetDebugLogger directs the engine's scheduling debug output to the given
// logger. The default discards it.
func (l *TestList) SetDebugLogger(logger logging.Logger) {
	if logger == nil {
		logger = logging.NullLogger()
	}
	l.logger = logger
}

// Add registers a test under the given identity and assigns it the next
// sequential index.
func (l *TestList) Add(test Test, suite, name, file string, line int) {
	rt := &registeredTest{test: test}
	rt.details = TestDetails{
		TestIndex:  len(l.tests),
		SuiteName:  suite,
		TestName:   name,
		FileName:   file,
		LineNumber: line,
	}
	rt.results.test = rt
	rt.results.list = l
	l.tests = append(l.tests, rt)
}

// AddFunc registers an always-enabled test implemented by a plain function,
// using the caller's source location as the test's identity.
func (l *TestList) AddFunc(suite, name string, fn func(tr *TestResults) error) {
	file, line := "<unknown>", 0
	if _, f, ln, ok := runtime.Caller(1); ok {
		file, line = f, ln
	}
	l.Add(funcTest{fn: fn}, suite, name, file, line)
}

type funcTest struct {
	fn func(tr *TestResults) error
}

func (t funcTest) Enabled() bool             { return true }
func (t funcTest) Run(tr *TestResults) error { return t.fn(tr) }

// Count returns the number of registered tests.
func (l *TestList) Count() int {
	return len(l.tests)
}

// ReassignIndexes renumbers every test's TestIndex to match the current
// storage order. It must be called after any external reordering of the
// list before indexes are relied upon again.
func (l *TestList) ReassignIndexes() {
	for i, rt := range l.tests {
		rt.details.TestIndex = i
	}
}

// Sort reorders the registered tests by the given Order and renumbers their
// indexes to match the new positions.
func (l *TestList) Sort(order Order) {
	sort.SliceStable(l.tests, func(i, j int) bool {
		return order.Less(&l.tests[i].details, &l.tests[j].details)
	})
	l.ReassignIndexes()
}
