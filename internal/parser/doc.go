// Package parser is a recursive-descent parser for Candid files.
//
// Parse returns either a complete *ast.Program or the first syntax error.
// There is no recovery: the loader reports one error per file and stops.
// Errors carry the set of tokens that would have been accepted, rendered
// the way diagnostics print them ("id", `";"`).
package parser
