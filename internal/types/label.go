package types

import "strconv"

type LabelKind uint8

const (
	LabelNamed LabelKind = iota
	LabelID
	LabelUnnamed
)

// Label is a field label. ID orders fields; Name is kept for display.
type Label struct {
	Kind LabelKind
	ID   uint32
	Name string
}

func (l Label) String() string {
	if l.Kind == LabelNamed {
		return l.Name
	}
	return strconv.FormatUint(uint64(l.ID), 10)
}
