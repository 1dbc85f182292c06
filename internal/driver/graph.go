package driver

import (
	"candidc/internal/project"
	"candidc/internal/project/dag"
	"candidc/internal/source"
)

// FileMetas describes every parsed file and its followed imports, in
// discovery order.
func (a *Analyzer) FileMetas() []project.FileMeta {
	paths := make(map[source.FileID]string, len(a.loaded))
	for p, id := range a.loaded {
		paths[id] = p
	}
	metas := make([]project.FileMeta, 0, len(a.programs))
	at := make(map[source.FileID]int, len(a.programs))
	for _, prog := range a.programs {
		f := a.fs.Get(prog.File)
		at[prog.File] = len(metas)
		metas = append(metas, project.FileMeta{
			Path:        paths[prog.File],
			Name:        f.Name,
			File:        prog.File,
			ContentHash: project.Digest(f.Hash),
		})
	}
	for _, imp := range a.imports {
		i, ok := at[imp.From]
		if !ok {
			continue
		}
		metas[i].Imports = append(metas[i].Imports, project.ImportMeta{Path: imp.Path, Span: imp.Span})
	}
	return metas
}

// ImportGraph is the loaded closure ordered for display.
type ImportGraph struct {
	Index dag.FileIndex
	Slots []dag.FileSlot
	Topo  *dag.Topo
}

// BuildImportGraph orders the loaded files dependencies first and computes
// a closure hash for each.
func (a *Analyzer) BuildImportGraph() ImportGraph {
	metas := a.FileMetas()
	idx := dag.BuildIndex(metas)
	g, slots := dag.BuildGraph(idx, metas)
	topo := dag.ToposortKahn(g)
	dag.ClosureHashes(g, slots, topo)
	return ImportGraph{Index: idx, Slots: slots, Topo: topo}
}

// Ordered returns the metadata of present files in topological order.
func (ig ImportGraph) Ordered() []project.FileMeta {
	out := make([]project.FileMeta, 0, len(ig.Topo.Order))
	for _, id := range ig.Topo.Order {
		out = append(out, ig.Slots[int(id)].Meta)
	}
	return out
}
