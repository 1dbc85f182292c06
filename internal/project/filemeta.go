package project

import "candidc/internal/source"

// ImportMeta is one import statement of a file, already resolved.
type ImportMeta struct {
	Path string
	Span source.Span
}

// FileMeta describes a loaded .did file for graph building.
type FileMeta struct {
	Path        string // resolved absolute path, the graph key
	Name        string // display name
	File        source.FileID
	Imports     []ImportMeta
	ContentHash Digest
	ClosureHash Digest // content plus the closure hashes of its imports
}
