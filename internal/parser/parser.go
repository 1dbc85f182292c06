package parser

import (
	"slices"

	"candidc/internal/ast"
	"candidc/internal/lexer"
	"candidc/internal/source"
	"candidc/internal/token"
)

// Parser holds the state for one file. It stops at the first error.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	err      *Error
	lastSpan source.Span // span of the last consumed token
}

// Parse turns file into a program or returns the first syntax error.
func Parse(file *source.File) (*ast.Program, *Error) {
	p := &Parser{file: file, lastSpan: source.Span{File: file.ID}}
	p.lx = lexer.New(file, lexer.Options{
		Reporter: lexer.ReporterFunc(p.lexError),
	})
	prog, ok := p.parseProgram()
	if p.err != nil {
		return nil, p.err
	}
	if !ok {
		// every failing path records an error
		return nil, &Error{Kind: UnrecognizedToken, Span: p.peek().Span}
	}
	return prog, nil
}

func (p *Parser) lexError(sp source.Span, msg string) {
	p.fail(&Error{Kind: InvalidToken, Span: sp, Msg: msg})
}

func (p *Parser) fail(e *Error) {
	if p.err == nil {
		p.err = e
	}
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// eat consumes the next token if it has kind k.
func (p *Parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k or records an error listing k.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if tok, ok := p.eat(k); ok {
		return tok, true
	}
	p.unexpected(k)
	return token.Token{}, false
}

// unexpected records an error for the next token given what would have
// been accepted instead.
func (p *Parser) unexpected(expected ...token.Kind) {
	tok := p.peek()
	names := make([]string, 0, len(expected))
	for _, k := range expected {
		names = append(names, k.String())
	}
	switch tok.Kind {
	case token.Invalid:
		// the lexer already reported it
		p.fail(&Error{Kind: InvalidToken, Span: tok.Span})
	case token.EOF:
		p.fail(&Error{Kind: UnrecognizedEOF, Span: tok.Span, Expected: names})
	default:
		p.fail(&Error{Kind: UnrecognizedToken, Span: tok.Span, Expected: names})
	}
}

func (p *Parser) userError(sp source.Span, msg string) {
	p.fail(&Error{Kind: User, Span: sp, Msg: msg})
}

func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}
