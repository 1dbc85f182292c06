package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token. Primitive type names are identifiers.
	Ident
	// Text is a quoted string literal.
	Text
	// Nat is an unsigned decimal or hexadecimal literal.
	Nat

	KwType           // type
	KwImport         // import
	KwService        // service
	KwFunc           // func
	KwOpt            // opt
	KwVec            // vec
	KwRecord         // record
	KwVariant        // variant
	KwBlob           // blob
	KwPrincipal      // principal
	KwOneway         // oneway
	KwQuery          // query
	KwCompositeQuery // composite_query

	Semicolon // ;
	Comma     // ,
	Colon     // :
	Assign    // =
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
)

var kindNames = [...]string{
	Invalid:          "invalid",
	EOF:              "EOF",
	Ident:            "id",
	Text:             "text",
	Nat:              "decimal",
	KwType:           `"type"`,
	KwImport:         `"import"`,
	KwService:        `"service"`,
	KwFunc:           `"func"`,
	KwOpt:            `"opt"`,
	KwVec:            `"vec"`,
	KwRecord:         `"record"`,
	KwVariant:        `"variant"`,
	KwBlob:           `"blob"`,
	KwPrincipal:      `"principal"`,
	KwOneway:         `"oneway"`,
	KwQuery:          `"query"`,
	KwCompositeQuery: `"composite_query"`,
	Semicolon:        `";"`,
	Comma:            `","`,
	Colon:            `":"`,
	Assign:           `"="`,
	Arrow:            `"->"`,
	LParen:           `"("`,
	RParen:           `")"`,
	LBrace:           `"{"`,
	RBrace:           `"}"`,
}

// String returns the form used in "Expects ..." notes: punctuation and
// keywords are quoted, token classes are bare.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
