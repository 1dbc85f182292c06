package token

var keywords = map[string]Kind{
	"type":            KwType,
	"import":          KwImport,
	"service":         KwService,
	"func":            KwFunc,
	"opt":             KwOpt,
	"vec":             KwVec,
	"record":          KwRecord,
	"variant":         KwVariant,
	"blob":            KwBlob,
	"principal":       KwPrincipal,
	"oneway":          KwOneway,
	"query":           KwQuery,
	"composite_query": KwCompositeQuery,
}

// LookupKeyword reports whether ident is a reserved word. Keywords are
// case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
