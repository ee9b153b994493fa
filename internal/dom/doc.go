// Package dom models the host page the widgets render into.
//
// The widgets only need two capabilities from a page: find an element by
// locator, and replace everything inside it. Document and Element capture
// exactly that, so the request executor does not care whether the page is a
// terminal pane, a test fixture or something else.
//
// Page is the in-memory implementation used by the CLI and the tests. It is
// safe for concurrent use: writers hold a mutex, readers get copies via
// Snapshot. Two requests that target the same element are not ordered; the
// one that finishes last overwrites the other.
//
// OnChange lets a consumer (the TUI) learn about writes made on other
// goroutines without polling.
package dom
