package fuzztests

import (
	"testing"
	"time"

	"candidc/internal/parser"
	"candidc/internal/source"
	"candidc/internal/testkit"
)

const parseTimeout = 5 * time.Second

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.did", input))

		prog, perr := parser.Parse(file)
		if perr != nil {
			if perr.Span.File != file.ID {
				t.Fatalf("error span in file %d", perr.Span.File)
			}
			return
		}
		if err := testkit.CheckSpanInvariants(prog, file); err != nil {
			t.Fatal(err)
		}
	})
}

// FuzzParserNoHang fails when a single parse runs longer than parseTimeout.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("type A = record { record { record { record { nat } } } };"))
	f.Add([]byte("type A = opt opt opt opt opt opt opt opt nat"))
	f.Add([]byte("service : (((((("))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			_, _ = parser.Parse(fs.Get(fs.AddVirtual("fuzz.did", input)))
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hung on %d bytes of input", len(input))
		}
	})
}
