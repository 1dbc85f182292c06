package parser

import (
	"candidc/internal/ast"
	"candidc/internal/token"
)

// typeStarters is what may begin a data type, in the order shown to users.
var typeStarters = []token.Kind{
	token.KwBlob, token.KwFunc, token.KwOpt, token.KwPrincipal, token.KwRecord,
	token.KwService, token.KwVariant, token.KwVec, token.Ident,
}

func (p *Parser) parseType() (ast.Type, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.namedType(p.advance()), true

	case token.KwOpt:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return &ast.OptT{Elem: elem, Span: p.spanFrom(tok.Span)}, true

	case token.KwVec:
		p.advance()
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return &ast.VecT{Elem: elem, Span: p.spanFrom(tok.Span)}, true

	case token.KwBlob:
		p.advance()
		return &ast.VecT{Elem: &ast.PrimT{Name: "nat8", Span: tok.Span}, Span: tok.Span}, true

	case token.KwPrincipal:
		p.advance()
		return &ast.PrincipalT{Span: tok.Span}, true

	case token.KwRecord:
		p.advance()
		fields, ok := p.parseFields(false)
		if !ok {
			return nil, false
		}
		return &ast.RecordT{Fields: fields, Span: p.spanFrom(tok.Span)}, true

	case token.KwVariant:
		p.advance()
		fields, ok := p.parseFields(true)
		if !ok {
			return nil, false
		}
		return &ast.VariantT{Fields: fields, Span: p.spanFrom(tok.Span)}, true

	case token.KwFunc:
		p.advance()
		fn, ok := p.parseFuncType()
		if !ok {
			return nil, false
		}
		fn.Span = p.spanFrom(tok.Span)
		return fn, true

	case token.KwService:
		p.advance()
		serv, ok := p.parseServiceBody()
		if !ok {
			return nil, false
		}
		serv.Span = p.spanFrom(tok.Span)
		return serv, true
	}
	p.unexpected(typeStarters...)
	return nil, false
}

// parseFuncType parses `tuple -> tuple mode*`.
func (p *Parser) parseFuncType() (*ast.FuncT, bool) {
	start := p.peek().Span
	args, ok := p.parseTuple()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Arrow); !ok {
		return nil, false
	}
	rets, ok := p.parseTuple()
	if !ok {
		return nil, false
	}
	fn := &ast.FuncT{Args: args, Rets: rets}
	for {
		var kind ast.ModeKind
		switch p.peek().Kind {
		case token.KwOneway:
			kind = ast.ModeOneway
		case token.KwQuery:
			kind = ast.ModeQuery
		case token.KwCompositeQuery:
			kind = ast.ModeCompositeQuery
		default:
			fn.Span = p.spanFrom(start)
			return fn, true
		}
		tok := p.advance()
		fn.Modes = append(fn.Modes, ast.Mode{Kind: kind, Span: tok.Span})
	}
}

// parseTuple parses `( arg, ... )` where an argument is `T` or `name : T`.
func (p *Parser) parseTuple() ([]ast.Arg, bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	var args []ast.Arg
	for !p.at(token.RParen) {
		arg, ok := p.parseArg()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	return args, true
}

func (p *Parser) parseArg() (ast.Arg, bool) {
	tok := p.peek()
	if tok.Kind == token.Text || tok.Kind == token.Ident {
		p.advance()
		if _, ok := p.eat(token.Colon); ok {
			ty, ok := p.parseType()
			if !ok {
				return ast.Arg{}, false
			}
			return ast.Arg{Name: &ast.Ident{Name: tok.Text, Span: tok.Span}, Type: ty}, true
		}
		if tok.Kind == token.Text {
			p.unexpected(token.Colon)
			return ast.Arg{}, false
		}
		return ast.Arg{Type: p.namedType(tok)}, true
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.Arg{}, false
	}
	return ast.Arg{Type: ty}, true
}

// parseServiceBody parses `{ name : (func type | id) ; ... }`.
func (p *Parser) parseServiceBody() (*ast.ServT, bool) {
	start := p.peek().Span
	if _, ok := p.expect(token.LBrace); !ok {
		return nil, false
	}
	serv := &ast.ServT{}
	seen := make(map[string]struct{})
	for !p.at(token.RBrace) {
		m, ok := p.parseMethod()
		if !ok {
			return nil, false
		}
		if _, dup := seen[m.Name.Name]; dup {
			p.userError(m.Name.Span, "duplicate binding for "+m.Name.Name)
			return nil, false
		}
		seen[m.Name.Name] = struct{}{}
		serv.Methods = append(serv.Methods, m)
		if _, ok := p.eat(token.Semicolon); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return nil, false
	}
	serv.Span = p.spanFrom(start)
	return serv, true
}

func (p *Parser) parseMethod() (ast.Binding, bool) {
	name, ok := p.parseName()
	if !ok {
		return ast.Binding{}, false
	}
	if _, ok := p.expect(token.Colon); !ok {
		return ast.Binding{}, false
	}
	var ty ast.Type
	switch p.peek().Kind {
	case token.Ident:
		ty = p.namedType(p.advance())
	case token.LParen:
		fn, ok := p.parseFuncType()
		if !ok {
			return ast.Binding{}, false
		}
		ty = fn
	default:
		p.unexpected(token.LParen, token.Ident)
		return ast.Binding{}, false
	}
	return ast.Binding{Name: name, Type: ty, Span: name.Span.Cover(p.lastSpan)}, true
}

// parseName accepts an identifier or a text literal.
func (p *Parser) parseName() (ast.Ident, bool) {
	switch p.peek().Kind {
	case token.Ident, token.Text:
		tok := p.advance()
		return ast.Ident{Name: tok.Text, Span: tok.Span}, true
	}
	p.unexpected(token.Ident, token.Text)
	return ast.Ident{}, false
}

// namedType turns an identifier into a primitive or a type reference.
func (p *Parser) namedType(tok token.Token) ast.Type {
	if ast.IsPrim(tok.Text) {
		return &ast.PrimT{Name: tok.Text, Span: tok.Span}
	}
	return &ast.VarT{Name: tok.Text, Span: tok.Span}
}
