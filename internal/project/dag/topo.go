package dag

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"candidc/internal/project"
)

type Topo struct {
	Order   []FileID   // dependencies before importers
	Batches [][]FileID // files whose imports are all in earlier batches
	Cyclic  bool
	Cycles  []FileID // files left with unresolved imports
}

func ToposortKahn(g Graph) *Topo {
	n := len(g.Edges)
	indeg := make([]int, len(g.Indeg))
	copy(indeg, g.Indeg)

	topo := &Topo{
		Order:   make([]FileID, 0, n),
		Batches: make([][]FileID, 0),
	}

	active := 0
	current := make([]FileID, 0, n)
	for i := range n {
		if !g.Present[i] {
			continue
		}
		active++
		if indeg[i] == 0 {
			current = append(current, toID(i))
		}
	}

	visited := 0
	for len(current) > 0 {
		batch := slices.Clone(current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]FileID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, to := range g.Edges[int(id)] {
				indeg[int(to)]--
				if indeg[int(to)] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		for i := range n {
			if g.Present[i] && indeg[i] > 0 {
				topo.Cycles = append(topo.Cycles, toID(i))
			}
		}
	}
	return topo
}

// ClosureHashes fills ClosureHash of every present slot, visiting files in
// topological order so each import is hashed before its importers.
func ClosureHashes(g Graph, slots []FileSlot, topo *Topo) {
	for _, id := range topo.Order {
		slot := &slots[int(id)]
		deps := g.Deps(id)
		hashes := make([]project.Digest, 0, len(deps))
		for _, dep := range deps {
			hashes = append(hashes, slots[int(dep)].Meta.ClosureHash)
		}
		slot.Meta.ClosureHash = project.Combine(slot.Meta.ContentHash, hashes...)
	}
}

func toID(i int) FileID {
	id, err := safecast.Conv[FileID](i)
	if err != nil {
		panic(fmt.Errorf("file id overflow: %w", err))
	}
	return id
}
