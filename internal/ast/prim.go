package ast

var primNames = map[string]struct{}{
	"nat": {}, "nat8": {}, "nat16": {}, "nat32": {}, "nat64": {},
	"int": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"float32": {}, "float64": {},
	"bool": {}, "text": {}, "null": {}, "reserved": {}, "empty": {},
}

// IsPrim reports whether name denotes a primitive type. Primitive names
// always win over type definitions of the same name.
func IsPrim(name string) bool {
	_, ok := primNames[name]
	return ok
}
