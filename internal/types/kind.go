package types

import "fmt"

// Kind enumerates the Candid type constructors.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNat
	KindInt
	KindNat8
	KindNat16
	KindNat32
	KindNat64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindText
	KindReserved
	KindEmpty
	KindPrincipal
	KindOpt
	KindVec
	KindRecord
	KindVariant
	KindFunc
	KindService
	KindClass
	KindVar
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindNull:      "null",
	KindBool:      "bool",
	KindNat:       "nat",
	KindInt:       "int",
	KindNat8:      "nat8",
	KindNat16:     "nat16",
	KindNat32:     "nat32",
	KindNat64:     "nat64",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindFloat32:   "float32",
	KindFloat64:   "float64",
	KindText:      "text",
	KindReserved:  "reserved",
	KindEmpty:     "empty",
	KindPrincipal: "principal",
	KindOpt:       "opt",
	KindVec:       "vec",
	KindRecord:    "record",
	KindVariant:   "variant",
	KindFunc:      "func",
	KindService:   "service",
	KindClass:     "class",
	KindVar:       "var",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsPrimitive reports whether k has no type arguments.
func (k Kind) IsPrimitive() bool {
	return k >= KindNull && k <= KindPrincipal
}

var primByName = map[string]Kind{
	"null":     KindNull,
	"bool":     KindBool,
	"nat":      KindNat,
	"int":      KindInt,
	"nat8":     KindNat8,
	"nat16":    KindNat16,
	"nat32":    KindNat32,
	"nat64":    KindNat64,
	"int8":     KindInt8,
	"int16":    KindInt16,
	"int32":    KindInt32,
	"int64":    KindInt64,
	"float32":  KindFloat32,
	"float64":  KindFloat64,
	"text":     KindText,
	"reserved": KindReserved,
	"empty":    KindEmpty,
}

// PrimByName maps a primitive type keyword to its kind.
func PrimByName(name string) (Kind, bool) {
	k, ok := primByName[name]
	return k, ok
}
