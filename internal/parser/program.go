package parser

import (
	"candidc/internal/ast"
	"candidc/internal/token"
)

// parseProgram parses `(def ;)* actor? ;?` followed by EOF.
func (p *Parser) parseProgram() (*ast.Program, bool) {
	start := p.peek().Span
	prog := &ast.Program{File: p.file.ID}

	needSemi := false
	for p.atOr(token.KwType, token.KwImport) {
		dec, ok := p.parseDec()
		if !ok {
			return nil, false
		}
		prog.Decs = append(prog.Decs, dec)
		if _, ok := p.eat(token.Semicolon); !ok {
			needSemi = true
			break
		}
	}

	if p.at(token.KwService) {
		actor, ok := p.parseActor()
		if !ok {
			return nil, false
		}
		prog.Actor = actor
		p.eat(token.Semicolon)
		if tok := p.peek(); tok.Kind != token.EOF {
			if tok.Kind != token.Invalid {
				p.fail(&Error{Kind: ExtraToken, Span: tok.Span})
			}
			return nil, false
		}
	}

	if !p.at(token.EOF) {
		if needSemi {
			p.unexpected(token.Semicolon, token.KwService)
		} else {
			p.unexpected(token.KwImport, token.KwService, token.KwType)
		}
		return nil, false
	}
	prog.Span = p.spanFrom(start)
	return prog, p.err == nil
}

func (p *Parser) parseDec() (ast.Dec, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.KwType:
		p.advance()
		name, ok := p.expect(token.Ident)
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Assign); !ok {
			return nil, false
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return &ast.TypeDec{
			Name: ast.Ident{Name: name.Text, Span: name.Span},
			Type: ty,
			Span: p.spanFrom(start),
		}, true

	case token.KwImport:
		p.advance()
		path, ok := p.expect(token.Text)
		if !ok {
			return nil, false
		}
		return &ast.ImportDec{
			Path:     path.Text,
			PathSpan: path.Span,
			Span:     p.spanFrom(start),
		}, true
	}
	p.unexpected(token.KwImport, token.KwType)
	return nil, false
}

// parseActor parses `service id? : (tuple ->)? ({ methods } | id)`.
func (p *Parser) parseActor() (ast.Type, bool) {
	p.advance() // service
	_, named := p.eat(token.Ident)
	if _, ok := p.eat(token.Colon); !ok {
		// `service { ... }` is accepted as shorthand for `service : { ... }`
		if named || !p.atOr(token.LBrace, token.LParen) {
			p.unexpected(token.Colon)
			return nil, false
		}
	}
	start := p.peek().Span
	if p.at(token.LParen) {
		args, ok := p.parseTuple()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Arrow); !ok {
			return nil, false
		}
		body, ok := p.parseActorBody()
		if !ok {
			return nil, false
		}
		return &ast.ClassT{Args: args, Service: body, Span: p.spanFrom(start)}, true
	}
	return p.parseActorBody()
}

func (p *Parser) parseActorBody() (ast.Type, bool) {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseServiceBody()
	case token.Ident:
		return p.namedType(p.advance()), true
	}
	p.unexpected(token.LBrace, token.Ident)
	return nil, false
}
