// Package reporters provides Reporter implementations for the test engine:
// human-readable console output, an XML results document, a line-delimited
// JSON event stream, and a fan-out combinator. All of them rely on the
// engine serializing reporter calls and therefore do no locking.
package reporters
