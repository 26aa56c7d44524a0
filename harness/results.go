package harness

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// TestResults is the handle a test body uses to record check outcomes. One
// instance exists per registered test; while the test is running it is bound
// to the worker executing it, which owns the counters the checks update.
type TestResults struct {
	test    *registeredTest
	list    *TestList
	context *execContext
}

// Details returns the identity of the owning test.
func (r *TestResults) Details() *TestDetails {
	return &r.test.details
}

// CheckSucceeded records one passing check.
func (r *TestResults) CheckSucceeded() {
	c := r.context
	c.mu.Lock()
	c.numChecks++
	c.mu.Unlock()
}

// CheckFailed records one failing check at the given source location and
// reports it. The worker's own counters are updated under its mutex; the
// reporter call takes the separate run-wide mutex, serializing it with all
// other reporter events.
func (r *TestResults) CheckFailed(file string, line int, message string) {
	c := r.context
	c.mu.Lock()
	c.numChecks++
	c.numFailedChecks++
	c.errorsSeen = true
	c.mu.Unlock()

	details := r.test.details // copy
	details.FileName = file
	details.LineNumber = line

	shared := c.shared
	shared.mu.Lock()
	shared.reporter.Fail(&details, message)
	shared.mu.Unlock()
}

// TestFailed records a whole-test failure that is not tied to a particular
// check, such as an error escaping the test body. It counts toward the
// failed-check total without adding a check of its own, and is reported
// against the test's own declared location.
func (r *TestResults) TestFailed(message string) {
	c := r.context
	c.mu.Lock()
	c.numFailedChecks++
	c.errorsSeen = true
	c.mu.Unlock()

	shared := c.shared
	shared.mu.Lock()
	shared.reporter.Fail(&r.test.details, message)
	shared.mu.Unlock()
}

// Check records a passing check if cond is true, otherwise a failing one.
// It returns cond so callers can bail out early.
func (r *TestResults) Check(cond bool) bool {
	if cond {
		r.CheckSucceeded()
		return true
	}
	file, line := callerInfo(1)
	r.CheckFailed(file, line, "Check failed")
	return false
}

// CheckEqual compares two values with reflect.DeepEqual.
func (r *TestResults) CheckEqual(a, b interface{}) bool {
	if reflect.DeepEqual(a, b) {
		r.CheckSucceeded()
		return true
	}
	file, line := callerInfo(1)
	r.CheckFailed(file, line, fmt.Sprintf("CheckEqual failed with (%v, %v)", a, b))
	return false
}

// CheckNotEqual compares two values with reflect.DeepEqual, expecting them
// to differ.
func (r *TestResults) CheckNotEqual(a, b interface{}) bool {
	if !reflect.DeepEqual(a, b) {
		r.CheckSucceeded()
		return true
	}
	file, line := callerInfo(1)
	r.CheckFailed(file, line, fmt.Sprintf("CheckNotEqual failed with (%v, %v)", a, b))
	return false
}

// CheckApproxEqual checks that a and b differ by at most eps relative to
// the larger magnitude of the two.
func (r *TestResults) CheckApproxEqual(a, b, eps float64) bool {
	if math.Abs(a-b) <= eps*math.Max(math.Abs(a), math.Abs(b)) {
		r.CheckSucceeded()
		return true
	}
	file, line := callerInfo(1)
	r.CheckFailed(file, line, fmt.Sprintf("CheckApproxEqual failed with (%s, %s, %s)",
		formatFloat(a), formatFloat(b), formatFloat(eps)))
	return false
}

// CheckPanics checks that fn panics.
func (r *TestResults) CheckPanics(fn func()) bool {
	if panicked, _ := capturePanic(fn); panicked {
		r.CheckSucceeded()
		return true
	}
	file, line := callerInfo(1)
	r.CheckFailed(file, line, "CheckPanics failed: did not panic")
	return false
}

// CheckPanicsWith checks that fn panics and that the panic value's string
// form contains substr.
func (r *TestResults) CheckPanicsWith(fn func(), substr string) bool {
	panicked, value := capturePanic(fn)
	if panicked && strings.Contains(fmt.Sprintf("%v", value), substr) {
		r.CheckSucceeded()
		return true
	}
	file, line := callerInfo(1)
	if !panicked {
		r.CheckFailed(file, line, fmt.Sprintf("CheckPanicsWith(%q) failed: did not panic", substr))
	} else {
		r.CheckFailed(file, line, fmt.Sprintf("CheckPanicsWith(%q) failed: did panic, but with %v", substr, value))
	}
	return false
}

// The formatter methods below synthesize failure messages for check helpers
// that carry the source text of the checked expressions, such as generated
// bindings. They record through CheckFailed and add no concurrency concerns
// of their own.

func (r *TestResults) CondFailed(file string, line int, checkName, condText string) {
	r.CheckFailed(file, line, fmt.Sprintf("%s(%s) failed", checkName, condText))
}

func (r *TestResults) CompareFailed(file string, line int, checkName, aText, bText, aVal, bVal string) {
	r.CheckFailed(file, line, fmt.Sprintf("%s(%s, %s) failed with (%s, %s)", checkName, aText, bText, aVal, bVal))
}

func (r *TestResults) InexactCompareFailed(file string, line int, checkName, aText, bText, epsText string,
	a, b, eps float64) {
	r.CheckFailed(file, line, fmt.Sprintf("%s(%s, %s, %s) failed with (%s, %s, %s)",
		checkName, aText, bText, epsText, formatFloat(a), formatFloat(b), formatFloat(eps)))
}

func (r *TestResults) PanicFailed(file string, line int, exprText, panicName string) {
	r.CheckFailed(file, line, fmt.Sprintf("CheckPanic(%s, %s) failed: did not panic", exprText, panicName))
}

func (r *TestResults) PanicMatchFailed(file string, line int, exprText, panicName, condText string) {
	r.CheckFailed(file, line, fmt.Sprintf("CheckPanicMatch(%s, %s, %s) failed: did not panic",
		exprText, panicName, condText))
}

func (r *TestResults) PanicCondFailed(file string, line int, exprText, panicName, condText string) {
	r.CheckFailed(file, line, fmt.Sprintf("CheckPanicMatch(%s, %s, %s) failed: did panic, but condition failed",
		exprText, panicName, condText))
}

func (r *TestResults) AnyPanicFailed(file string, line int, exprText string) {
	r.CheckFailed(file, line, fmt.Sprintf("CheckPanics(%s) failed: did not panic", exprText))
}

func capturePanic(fn func()) (panicked bool, value interface{}) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			value = r
		}
	}()
	fn()
	return false, nil
}

func callerInfo(skip int) (string, int) {
	if _, file, line, ok := runtime.Caller(skip + 1); ok {
		return file, line
	}
	return "<unknown>", 0
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
