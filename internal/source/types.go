package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks content that starts with a UTF-8 byte order mark.
	// The mark stays in Content; BodyStart skips it.
	FileHadBOM
	// FileHasCRLF marks content with \r\n line endings. Content is kept as
	// read so byte offsets match the file on disk.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
// Path is the resolved absolute path used as the identity key,
// Name is what diagnostics show to the user.
type File struct {
	ID      FileID
	Path    string
	Name    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
