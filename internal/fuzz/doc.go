// Package fuzztests holds Go fuzz harnesses for the front of the checker
// (source -> lexer -> parser). They guard against panics and hangs on
// arbitrary input.
package fuzztests
