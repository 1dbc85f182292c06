package source

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"
)

var (
	// ErrFileMissing is returned by the query surface for unknown file ids.
	ErrFileMissing = errors.New("file missing")
	// ErrLineTooLarge is returned when a line index is past the end of a file.
	ErrLineTooLarge = errors.New("line index too large")
	// ErrNotUTF8 is returned by Load for files that are not valid UTF-8 text.
	ErrNotUTF8 = errors.New("stream did not contain valid UTF-8")
)

// FileSet owns the text and display name of every loaded file.
type FileSet struct {
	files   []File
	index   map[string]FileID // path -> id
	baseDir string            // base for relative display paths
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files:   make([]File, 0),
		index:   make(map[string]FileID),
		baseDir: "",
	}
}

// NewFileSetWithBase creates a FileSet whose relative paths are computed against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir sets the base directory for relative paths.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores content as given, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
// BOM and CRLF flags are detected here.
func (fileSet *FileSet) Add(path, name string, content []byte, flags FileFlags) FileID {
	flags |= detectFlags(content)
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)
	if name == "" {
		name = normalizedPath
	}

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Name:    name,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, rejects non UTF-8 content and calls Add.
// The bytes are stored unchanged so spans are offsets into the file on disk.
// No handle is kept open after Load returns.
func (fileSet *FileSet) Load(path, name string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if !utf8.Valid(content) {
		return 0, ErrNotUTF8
	}
	return fileSet.Add(path, name, content, 0), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, name, content, FileVirtual)
}

// Len returns the number of registered files.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Get returns the file metadata for the given ID. It panics on unknown ids.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Lookup is the non-panicking form of Get.
func (fileSet *FileSet) Lookup(id FileID) (*File, bool) {
	if int(id) >= len(fileSet.files) {
		return nil, false
	}
	return &fileSet.files[id], true
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// GetByPath returns the file registered under path.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Name returns the display name of file id.
func (fileSet *FileSet) Name(id FileID) (string, error) {
	f, ok := fileSet.Lookup(id)
	if !ok {
		return "", ErrFileMissing
	}
	return f.Name, nil
}

// Source returns the text of file id.
func (fileSet *FileSet) Source(id FileID) (string, error) {
	f, ok := fileSet.Lookup(id)
	if !ok {
		return "", ErrFileMissing
	}
	return string(f.Content), nil
}

// LineIndex returns the 0-based line that contains byteIndex.
func (fileSet *FileSet) LineIndex(id FileID, byteIndex uint32) (uint32, error) {
	f, ok := fileSet.Lookup(id)
	if !ok {
		return 0, ErrFileMissing
	}
	return toLineCol(f.LineIdx, f.BodyStart(), byteIndex).Line - 1, nil
}

// LineRange returns the byte range [start, end) of the 0-based line,
// excluding the line ending (\n or \r\n) and, on line 0, a byte order mark.
func (fileSet *FileSet) LineRange(id FileID, lineIndex uint32) (start, end uint32, err error) {
	f, ok := fileSet.Lookup(id)
	if !ok {
		return 0, 0, ErrFileMissing
	}
	start, end, ok = f.lineBounds(lineIndex)
	if !ok {
		return 0, 0, ErrLineTooLarge
	}
	return start, end, nil
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	first := f.BodyStart()
	return toLineCol(f.LineIdx, first, span.Start), toLineCol(f.LineIdx, first, span.End)
}

// GetLine returns the 1-based line lineNum without its line ending, or "" when out of range.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	start, end, ok := f.lineBounds(lineNum - 1)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

// BodyStart is the offset of the first byte after a byte order mark.
func (f *File) BodyStart() uint32 {
	if f.Flags&FileHadBOM != 0 && bytes.HasPrefix(f.Content, utf8BOM) {
		return uint32(len(utf8BOM))
	}
	return 0
}

// LineBounds returns the bounds of the line containing off, without its
// line ending.
func (f *File) LineBounds(off uint32) (start, end uint32) {
	line, _ := slices.BinarySearch(f.LineIdx, off)
	start, end, _ = f.lineBounds(uint32(line))
	return start, end
}

func (f *File) lineBounds(line uint32) (start, end uint32, ok bool) {
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	lines, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	if line > lines {
		return 0, 0, false
	}
	start = f.BodyStart()
	if line > 0 {
		start = f.LineIdx[line-1] + 1
	}
	end = lenContent
	if line < lines {
		end = f.LineIdx[line]
		if end > start && f.Content[end-1] == '\r' {
			end--
		}
	}
	return start, end, true
}

// FormatPath formats the file path for display.
// mode: "absolute", "relative", "basename", "display", "auto"
// baseDir is used only by "relative".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
		return f.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return BaseName(f.Path)

	case "auto":
		if f.Name != "" {
			return f.Name
		}
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return BaseName(f.Path)

	default:
		return f.Path
	}
}
