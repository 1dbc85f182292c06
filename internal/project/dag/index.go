package dag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"candidc/internal/project"
)

type FileID uint32

type FileIndex struct {
	NameToID map[string]FileID
	IDToName []string
}

// BuildIndex collects every path that is loaded or imported, sorts them and
// numbers them in that order.
func BuildIndex(metas []project.FileMeta) FileIndex {
	uniq := make(map[string]struct{}, len(metas))
	for _, meta := range metas {
		if meta.Path != "" {
			uniq[meta.Path] = struct{}{}
		}
		for _, dep := range meta.Imports {
			if dep.Path != "" {
				uniq[dep.Path] = struct{}{}
			}
		}
	}

	paths := make([]string, 0, len(uniq))
	for path := range uniq {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	nameToID := make(map[string]FileID, len(paths))
	for i, path := range paths {
		id, err := safecast.Conv[FileID](i)
		if err != nil {
			panic(fmt.Errorf("file id overflow: %w", err))
		}
		nameToID[path] = id
	}
	return FileIndex{NameToID: nameToID, IDToName: paths}
}

func (idx FileIndex) Names(ids []FileID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = idx.IDToName[int(id)]
	}
	return out
}
