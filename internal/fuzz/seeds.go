package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var builtinSeeds = []string{
	"",
	"type A = nat;",
	`import "common.did"; type B = record { a : A; 1 : text; "quoted" : opt B };`,
	"type V = variant { ok : nat; err : text; none };",
	"type F = func (nat, x : vec nat8) -> (bool) query;",
	"service : { get : () -> (text) query; put : (text) -> () oneway };",
	"type S = service { m : F };\nservice : (init : S) -> S",
	"type T = record { nat; text; blob; principal; reserved; empty };",
	"/* open comment",
	`type X = record { "unterminated : nat };`,
	"type Big = record { 4294967296 : nat };",
	"// only a comment\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.did file under ../../testdata when present.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".did" {
			return nil
		}
		// #nosec G304 -- path comes from the repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
