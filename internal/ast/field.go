package ast

import (
	"strconv"

	"candidc/internal/source"
)

type LabelKind uint8

const (
	// LabelNamed is a textual field name; its id is the name's hash.
	LabelNamed LabelKind = iota
	// LabelID is an explicit numeric label.
	LabelID
	// LabelUnnamed is a positional label; its id is assigned in order.
	LabelUnnamed
)

// Label identifies a record or variant field. ID is always filled in.
type Label struct {
	Kind LabelKind
	Name string // LabelNamed only
	ID   uint32
	Span source.Span
}

func (l Label) String() string {
	if l.Kind == LabelNamed {
		return l.Name
	}
	return strconv.FormatUint(uint64(l.ID), 10)
}

type Field struct {
	Label Label
	Type  Type
	Span  source.Span
}

// HashName is the Candid field-name hash: h = h*223 + b over the UTF-8 bytes,
// modulo 2^32.
func HashName(name string) uint32 {
	var h uint32
	for i := 0; i < len(name); i++ {
		h = h*223 + uint32(name[i])
	}
	return h
}
