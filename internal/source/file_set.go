package source

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"fortio.org/safecast"
)

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// NoFileID marks the absence of a file.
const NoFileID FileID = 0

const (
	// FileVirtual indicates the file was added from memory (test, manifest).
	FileVirtual FileFlags = 1 << iota
)

// File captures metadata for a single source file. Module identity travels
// with the file: derivation legality compares the declaring file's module
// against the synthesis target's.
type File struct {
	ID     FileID
	Path   string
	Module string
	Hash   [32]byte
	Size   uint32
	Flags  FileFlags
}

// FileSet manages a collection of source files. FileID 0 is reserved so a
// zero Span never aliases a real file.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id (last version wins)
}

func NewFileSet() *FileSet {
	return &FileSet{
		files: []File{{}}, // slot 0 reserved for NoFileID
		index: make(map[string]FileID),
	}
}

// Add registers file content under path within module and returns a fresh
// FileID. A path may be re-added; the index tracks the latest version.
func (fs *FileSet) Add(path, module string, content []byte, flags FileFlags) FileID {
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{
		ID:     id,
		Path:   path,
		Module: module,
		Hash:   sha256.Sum256(content),
		Size:   size,
		Flags:  flags,
	})
	fs.index[path] = id
	return id
}

// AddVirtual registers an in-memory file (tests, manifest-declared types).
func (fs *FileSet) AddVirtual(path, module string) FileID {
	return fs.Add(path, module, nil, FileVirtual)
}

// Get returns the file for id, or (nil, false) for NoFileID and out-of-range IDs.
func (fs *FileSet) Get(id FileID) (*File, bool) {
	if id == NoFileID || int(id) >= len(fs.files) {
		return nil, false
	}
	return &fs.files[id], true
}

// Module returns the owning module of a file, or "" when unknown.
func (fs *FileSet) Module(id FileID) string {
	f, ok := fs.Get(id)
	if !ok {
		return ""
	}
	return f.Module
}

// Lookup resolves a path to its latest FileID.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.index[path]
	return id, ok
}

// Len counts registered files, the reserved slot excluded.
func (fs *FileSet) Len() int {
	return len(fs.files) - 1
}

// Paths returns every registered path in sorted order.
func (fs *FileSet) Paths() []string {
	out := make([]string, 0, len(fs.index))
	for p := range fs.index {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
