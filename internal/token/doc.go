// Package token defines lexical token kinds of the Candid interface language.
// Invariants:
//   - Token.Span covers the token's source bytes exactly, quotes included.
//   - Comments and whitespace never reach the token stream.
//   - Primitive type names (nat, int32, text, ...) are identifiers; the
//     parser recognizes them.
package token
