// Package diag defines the diagnostic model shared by the loader, the binder
// and the checker.
//
// A Diagnostic carries a severity, a stable Code, a message, zero or more
// labelled spans and free-form notes. At most one label is primary; the rest
// point at context such as the import statement that pulled a broken file in
// or the binding an error originated from. Diagnostics produced without a
// location (I/O failures, recursive imports) have no labels at all.
//
// *Diagnostic implements error, so every phase returns it through ordinary
// error results and stops at the first one. Callers that analyse several
// inputs collect them in a Bag via a Reporter.
//
// Package diag does no formatting beyond the one-line short form used by
// tests and scripts; terminal, JSON and SARIF output live in internal/diagfmt.
package diag
