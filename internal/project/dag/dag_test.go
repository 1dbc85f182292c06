package dag

import (
	"reflect"
	"testing"

	"candidc/internal/project"
)

func meta(path string, imports ...string) project.FileMeta {
	m := project.FileMeta{Path: path, Name: path}
	m.ContentHash[0] = byte(len(path))
	for _, imp := range imports {
		m.Imports = append(m.Imports, project.ImportMeta{Path: imp})
	}
	return m
}

func batchNames(idx FileIndex, batches [][]FileID) [][]string {
	out := make([][]string, len(batches))
	for i, b := range batches {
		out[i] = idx.Names(b)
	}
	return out
}

func TestBuildIndexIncludesImports(t *testing.T) {
	metas := []project.FileMeta{
		meta("/p/main.did", "/p/lib/math.did", "/p/lib/util.did"),
		meta("/p/lib/util.did"),
	}
	idx := BuildIndex(metas)
	want := []string{"/p/lib/math.did", "/p/lib/util.did", "/p/main.did"}
	if !reflect.DeepEqual(idx.IDToName, want) {
		t.Fatalf("IDToName = %v, want %v", idx.IDToName, want)
	}
	for i, name := range want {
		if id := idx.NameToID[name]; int(id) != i {
			t.Fatalf("NameToID[%q] = %d, want %d", name, id, i)
		}
	}
}

func TestToposortBatches(t *testing.T) {
	metas := []project.FileMeta{
		meta("main", "a", "b"),
		meta("a", "common"),
		meta("b", "common", "common"),
		meta("common"),
	}
	idx := BuildIndex(metas)
	g, _ := BuildGraph(idx, metas)
	topo := ToposortKahn(g)

	if topo.Cyclic {
		t.Fatalf("unexpected cycle: %v", idx.Names(topo.Cycles))
	}
	want := [][]string{{"common"}, {"a", "b"}, {"main"}}
	if got := batchNames(idx, topo.Batches); !reflect.DeepEqual(got, want) {
		t.Fatalf("batches = %v, want %v", got, want)
	}
	if got := idx.Names(topo.Order); !reflect.DeepEqual(got, []string{"common", "a", "b", "main"}) {
		t.Fatalf("order = %v", got)
	}
	if got := idx.Names(g.Deps(idx.NameToID["main"])); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("deps(main) = %v", got)
	}
}

func TestMissingAndSelfImportsAreIgnored(t *testing.T) {
	metas := []project.FileMeta{
		meta("main", "main", "gone"),
	}
	idx := BuildIndex(metas)
	g, slots := BuildGraph(idx, metas)
	if g.Present[idx.NameToID["gone"]] || slots[idx.NameToID["gone"]].Present {
		t.Fatal("imported-only path marked present")
	}
	topo := ToposortKahn(g)
	if topo.Cyclic || len(topo.Order) != 1 {
		t.Fatalf("topo = %+v", topo)
	}
}

func TestToposortReportsCycles(t *testing.T) {
	metas := []project.FileMeta{
		meta("a", "b"),
		meta("b", "a"),
		meta("c"),
	}
	idx := BuildIndex(metas)
	g, _ := BuildGraph(idx, metas)
	topo := ToposortKahn(g)
	if !topo.Cyclic {
		t.Fatal("cycle not detected")
	}
	if got := idx.Names(topo.Cycles); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("cycles = %v", got)
	}
	if got := idx.Names(topo.Order); !reflect.DeepEqual(got, []string{"c"}) {
		t.Fatalf("order = %v", got)
	}
}

func TestClosureHashesPropagate(t *testing.T) {
	build := func(leafByte byte) []FileSlot {
		metas := []project.FileMeta{meta("top", "leaf"), meta("leaf")}
		metas[1].ContentHash[1] = leafByte
		idx := BuildIndex(metas)
		g, slots := BuildGraph(idx, metas)
		ClosureHashes(g, slots, ToposortKahn(g))
		return slots
	}
	one, two := build(1), build(2)
	// ids: leaf=0, top=1
	if one[1].Meta.ContentHash != two[1].Meta.ContentHash {
		t.Fatal("fixture: top content should be identical")
	}
	if one[1].Meta.ClosureHash == two[1].Meta.ClosureHash {
		t.Fatal("changing an import did not change the importer's closure hash")
	}
}
