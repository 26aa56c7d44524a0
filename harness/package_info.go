// Package harness implements a concurrent test-execution engine.
//
// The general model is:
//
// 1. Tests are registered in a TestList, each with a stable identity of
// suite name, test name, and source location.
//
// 2. A run selects tests through an optional Filter, optionally shuffles
// them, and dispatches them across a fixed number of worker loops that claim
// tests from a single shared cursor, so load balances automatically
// regardless of per-test cost.
//
// 3. Test bodies record check outcomes through their TestResults handle;
// per-worker counters are aggregated into a Summary when all workers have
// finished.
//
// 4. Lifecycle and outcome events are delivered to a Reporter, strictly
// serialized, so reporter implementations need no locking of their own.
package harness
