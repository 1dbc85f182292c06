package fuzztests

import (
	"testing"

	"candidc/internal/lexer"
	"candidc/internal/source"
	"candidc/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.did", input))

		lx := lexer.New(file, lexer.Options{Reporter: lexer.ReporterFunc(func(source.Span, string) {})})
		for i := 0; ; i++ {
			if i > 2*len(input)+2 {
				t.Fatalf("lexer did not reach EOF after %d tokens", i)
			}
			if lx.Next().Kind == token.EOF {
				break
			}
		}
	})
}
