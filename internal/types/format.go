package types

import (
	"strconv"
	"strings"
)

func (t *Prim) String() string  { return t.K.String() }
func (t *Opt) String() string   { return "opt " + t.Elem.String() }
func (t *Vec) String() string   { return "vec " + t.Elem.String() }
func (t *Var) String() string   { return t.Name }
func (t *Func) String() string  { return "func " + funcSig(t) }
func (t *Class) String() string { return tuple(t.Args) + " -> " + t.Service.String() }

func (t *Record) String() string {
	var sb strings.Builder
	sb.WriteString("record {")
	for i, f := range t.Fields {
		sb.WriteString(sep(i))
		if f.Label.Kind != LabelUnnamed {
			sb.WriteString(labelText(f.Label))
			sb.WriteString(" : ")
		}
		sb.WriteString(f.Type.String())
	}
	sb.WriteString(closing(len(t.Fields)))
	return sb.String()
}

func (t *Variant) String() string {
	var sb strings.Builder
	sb.WriteString("variant {")
	for i, f := range t.Fields {
		sb.WriteString(sep(i))
		sb.WriteString(labelText(f.Label))
		if p, ok := f.Type.(*Prim); !ok || p.K != KindNull {
			sb.WriteString(" : ")
			sb.WriteString(f.Type.String())
		}
	}
	sb.WriteString(closing(len(t.Fields)))
	return sb.String()
}

func (t *Service) String() string {
	var sb strings.Builder
	sb.WriteString("service {")
	for i, m := range t.Methods {
		sb.WriteString(sep(i))
		sb.WriteString(quoteName(m.Name))
		sb.WriteString(" : ")
		if fn, ok := m.Type.(*Func); ok {
			sb.WriteString(funcSig(fn))
		} else {
			sb.WriteString(m.Type.String())
		}
	}
	sb.WriteString(closing(len(t.Methods)))
	return sb.String()
}

func funcSig(f *Func) string {
	var sb strings.Builder
	sb.WriteString(tuple(f.Args))
	sb.WriteString(" -> ")
	sb.WriteString(tuple(f.Rets))
	for _, m := range f.Modes {
		sb.WriteByte(' ')
		sb.WriteString(m.String())
	}
	return sb.String()
}

func tuple(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func sep(i int) string {
	if i == 0 {
		return " "
	}
	return "; "
}

func closing(n int) string {
	if n == 0 {
		return "}"
	}
	return " }"
}

func labelText(l Label) string {
	if l.Kind == LabelNamed {
		return quoteName(l.Name)
	}
	return l.String()
}

// quoteName quotes names that are not plain identifiers.
func quoteName(name string) string {
	if isIdent(name) {
		return name
	}
	return strconv.Quote(name)
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
