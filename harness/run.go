package harness

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const maxThreads = 1024

// sharedContext is the state shared by all workers of one run: the schedule,
// the cursor of the next unclaimed test, and the reporter. The mutex guards
// the cursor and every reporter call.
type sharedContext struct {
	reporter Reporter
	tests    []*registeredTest
	mu       sync.Mutex
	nextTest int
}

// execContext is one worker's execution state. Its counters are only ever
// touched by the worker that owns it; the mutex covers the brief critical
// section in check recording.
type execContext struct {
	shared          *sharedContext
	mu              sync.Mutex
	numChecks       int64
	numFailedChecks int64
	numFailedTests  int
	errorsSeen      bool
}

// Run executes the registered tests and reports the aggregate outcome.
// Disabled tests and tests rejected by the filter are skipped; the remaining
// schedule is optionally shuffled and then consumed by numThreads worker
// loops claiming tests from a shared cursor. A nil reporter discards all
// events; a nil filter includes every enabled test. Run returns true if no
// test failed, and an error only when numThreads is out of range, before
// any test has executed.
func (l *TestList) Run(reporter Reporter, filter Filter, numThreads int, shuffle bool) (bool, error) {
	start := time.Now()
	if reporter == nil {
		reporter = NullReporter{}
	}
	if numThreads < 1 || numThreads > maxThreads {
		return false, errors.Errorf("bad number of threads %d (must be in [1, %d])", numThreads, maxThreads)
	}

	shared := &sharedContext{reporter: reporter}
	numDisabled := 0
	for _, rt := range l.tests {
		if !rt.test.Enabled() {
			numDisabled++
			continue
		}
		if filter != nil && !filter.Include(&rt.details) {
			continue
		}
		shared.tests = append(shared.tests, rt)
	}

	if shuffle {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		rnd.Shuffle(len(shared.tests), func(i, j int) {
			shared.tests[i], shared.tests[j] = shared.tests[j], shared.tests[i]
		})
	}

	l.logger.Printf("Running %d of %d tests on %d workers (%d disabled)",
		len(shared.tests), len(l.tests), numThreads, numDisabled)

	contexts := make([]*execContext, numThreads)
	for i := range contexts {
		contexts[i] = &execContext{shared: shared}
	}

	if numThreads == 1 {
		contexts[0].run()
	} else {
		var wg sync.WaitGroup
		for _, c := range contexts {
			wg.Add(1)
			go func(c *execContext) {
				defer wg.Done()
				c.run()
			}(c)
		}
		wg.Wait()
	}

	summary := Summary{
		NumIncludedTests: len(shared.tests),
		NumDisabledTests: numDisabled,
		NumExcludedTests: (len(l.tests) - numDisabled) - len(shared.tests),
	}
	for _, c := range contexts {
		summary.NumFailedTests += c.numFailedTests
		summary.NumChecks += c.numChecks
		summary.NumFailedChecks += c.numFailedChecks
	}
	summary.ElapsedSeconds = time.Since(start).Seconds()
	reporter.Summary(&summary)

	return summary.NumFailedTests == 0, nil
}

// run is the worker loop: claim the next test under the shared mutex, run
// it, repeat until the cursor reaches the end of the schedule. The End event
// for a test is reported at the next claim (or at loop exit), so a test's
// reported time also includes this worker's scheduling overhead; test bodies
// are expected to dominate the cost.
func (c *execContext) run() {
	start := time.Now()
	var current *registeredTest
	var claimedAt time.Duration
	for {
		now := time.Since(start)

		shared := c.shared
		shared.mu.Lock()
		if current != nil {
			shared.reporter.End(&current.details, (now - claimedAt).Seconds())
		}
		claimedAt = now
		if shared.nextTest == len(shared.tests) {
			shared.mu.Unlock()
			break
		}
		current = shared.tests[shared.nextTest]
		shared.nextTest++
		shared.reporter.Begin(&current.details)
		shared.mu.Unlock()

		c.mu.Lock()
		c.errorsSeen = false
		c.mu.Unlock()
		current.results.context = c

		c.invoke(current)

		current.results.context = nil
		if c.errorsSeen {
			c.numFailedTests++
		}
	}
}

// invoke runs one test body, converting a returned error or an escaping
// panic into a single synthetic failure.
func (c *execContext) invoke(rt *registeredTest) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				rt.results.TestFailed(fmt.Sprintf("Unhandled panic %T: %s", err, err.Error()))
			} else {
				rt.results.TestFailed("Unhandled panic of unknown type")
			}
		}
	}()
	if err := rt.test.Run(&rt.results); err != nil {
		rt.results.TestFailed(fmt.Sprintf("Test returned error %T: %s", err, err.Error()))
	}
}
