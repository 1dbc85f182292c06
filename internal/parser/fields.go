package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"candidc/internal/ast"
	"candidc/internal/token"
)

// parseFields parses `{ field ; ... }` of a record or variant. Fields are
// `nat : T`, `name : T` or a bare type. In a variant a bare name or number
// is a field of type null. Unnamed fields are numbered after the previous
// numeric label.
func (p *Parser) parseFields(variant bool) ([]ast.Field, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		return nil, false
	}
	var (
		fields []ast.Field
		next   uint32
	)
	seen := make(map[uint32]ast.Label)
	for !p.at(token.RBrace) {
		f, ok := p.parseField(variant, &next)
		if !ok {
			return nil, false
		}
		if prev, dup := seen[f.Label.ID]; dup {
			p.userError(f.Label.Span, duplicateLabelMessage(prev, f.Label))
			return nil, false
		}
		seen[f.Label.ID] = f.Label
		fields = append(fields, f)
		if _, ok := p.eat(token.Semicolon); !ok {
			break
		}
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return nil, false
	}
	return fields, true
}

func duplicateLabelMessage(prev, cur ast.Label) string {
	if prev.Kind == ast.LabelNamed && cur.Kind == ast.LabelNamed && prev.Name != cur.Name {
		return fmt.Sprintf("label '%s' hash collision with '%s'", cur.Name, prev.Name)
	}
	return fmt.Sprintf("duplicate field label '%s'", cur)
}

func (p *Parser) parseField(variant bool, next *uint32) (ast.Field, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Nat:
		p.advance()
		id, ok := p.parseLabelID(tok)
		if !ok {
			return ast.Field{}, false
		}
		*next = id + 1
		label := ast.Label{Kind: ast.LabelID, ID: id, Span: tok.Span}
		return p.finishField(label, variant)

	case token.Text:
		p.advance()
		label := ast.Label{Kind: ast.LabelNamed, Name: tok.Text, ID: ast.HashName(tok.Text), Span: tok.Span}
		return p.finishField(label, variant)

	case token.Ident:
		p.advance()
		if p.at(token.Colon) || variant {
			label := ast.Label{Kind: ast.LabelNamed, Name: tok.Text, ID: ast.HashName(tok.Text), Span: tok.Span}
			return p.finishField(label, variant)
		}
		// a bare type name in a record
		label := ast.Label{Kind: ast.LabelUnnamed, ID: *next, Span: tok.Span}
		*next++
		return ast.Field{Label: label, Type: p.namedType(tok), Span: tok.Span}, true
	}

	start := p.peek().Span
	ty, ok := p.parseType()
	if !ok {
		return ast.Field{}, false
	}
	label := ast.Label{Kind: ast.LabelUnnamed, ID: *next, Span: start}
	*next++
	return ast.Field{Label: label, Type: ty, Span: p.spanFrom(start)}, true
}

// finishField parses the optional `: T` after a label. The type may only be
// omitted in a variant, where it defaults to null.
func (p *Parser) finishField(label ast.Label, variant bool) (ast.Field, bool) {
	if _, ok := p.eat(token.Colon); ok {
		ty, ok := p.parseType()
		if !ok {
			return ast.Field{}, false
		}
		return ast.Field{Label: label, Type: ty, Span: p.spanFrom(label.Span)}, true
	}
	if !variant {
		p.unexpected(token.Colon)
		return ast.Field{}, false
	}
	null := &ast.PrimT{Name: "null", Span: label.Span}
	return ast.Field{Label: label, Type: null, Span: label.Span}, true
}

func (p *Parser) parseLabelID(tok token.Token) (uint32, bool) {
	digits := strings.ReplaceAll(tok.Text, "_", "")
	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits, base = digits[2:], 16
	}
	n, err := strconv.ParseUint(digits, base, 64)
	if err != nil || n > math.MaxUint32 {
		p.userError(tok.Span, fmt.Sprintf("field label %s out of range", tok.Text))
		return 0, false
	}
	return uint32(n), true
}
