package dag

import (
	"slices"

	"candidc/internal/project"
)

// Graph has an edge from every imported file to each file importing it, so a
// topological order lists dependencies first.
type Graph struct {
	Edges   [][]FileID // Edges[dep] = importers
	Indeg   []int      // number of present imports per file
	Present []bool     // false for paths that are only imported, never loaded
}

// FileSlot is the per-id view of the metadata.
type FileSlot struct {
	Meta    project.FileMeta
	Present bool
}

// BuildGraph wires the imports of metas. Self imports, duplicate imports and
// imports of files that were never loaded do not produce edges.
func BuildGraph(idx FileIndex, metas []project.FileMeta) (Graph, []FileSlot) {
	n := len(idx.IDToName)
	g := Graph{
		Edges:   make([][]FileID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
	}
	slots := make([]FileSlot, n)
	for i, name := range idx.IDToName {
		slots[i].Meta.Path = name
	}
	for _, meta := range metas {
		id, ok := idx.NameToID[meta.Path]
		if !ok || slots[int(id)].Present {
			continue
		}
		slots[int(id)] = FileSlot{Meta: meta, Present: true}
		g.Present[int(id)] = true
	}

	for from := range slots {
		slot := &slots[from]
		if !slot.Present {
			continue
		}
		seen := make(map[FileID]struct{}, len(slot.Meta.Imports))
		for _, imp := range slot.Meta.Imports {
			dep, ok := idx.NameToID[imp.Path]
			if !ok || int(dep) == from || !g.Present[int(dep)] {
				continue
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			g.Edges[int(dep)] = append(g.Edges[int(dep)], FileID(from))
			g.Indeg[from]++
		}
	}
	for i := range g.Edges {
		slices.Sort(g.Edges[i])
	}
	return g, slots
}

// Deps returns the present imports of id, sorted.
func (g Graph) Deps(id FileID) []FileID {
	var out []FileID
	for dep, importers := range g.Edges {
		if _, ok := slices.BinarySearch(importers, id); ok {
			out = append(out, FileID(dep))
		}
	}
	return out
}
