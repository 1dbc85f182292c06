package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"type":            KwType,
		"import":          KwImport,
		"service":         KwService,
		"func":            KwFunc,
		"vec":             KwVec,
		"blob":            KwBlob,
		"principal":       KwPrincipal,
		"composite_query": KwCompositeQuery,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Type", "SERVICE",
		"nat", "int8", "text", "null", "reserved",
		"identifier", "compositeQuery",
	}
	for _, s := range notKw {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want not a keyword", s, k)
		}
	}
}
