package blobfs

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"unicode/utf8"
)

// defaultMaxDepth bounds directory recursion so that a malformed or
// adversarial blob (e.g. a directory whose child table points back at an
// ancestor) cannot drive the loader into unbounded recursion.
const defaultMaxDepth = 1024

// Loader parses a blob and materializes entries (file bytes or directory
// maps) on demand from pointer offsets.
//
// Loader holds no mutable read cursor — every read takes an explicit
// pointer — so a *Loader is safe for concurrent use: two goroutines may
// walk disjoint (or overlapping) subtrees of the same Loader without
// coordination.
type Loader struct {
	blob     []byte
	maxDepth int
}

// LoaderOption configures a Loader returned by NewLoader.
type LoaderOption func(*Loader)

// WithMaxDepth overrides the default directory recursion limit (1024).
func WithMaxDepth(depth int) LoaderOption {
	return func(l *Loader) {
		l.maxDepth = depth
	}
}

// NewLoader wraps blob for reading. blob is retained, not copied; callers
// must not mutate it while the Loader is in use.
func NewLoader(blob []byte, opts ...LoaderOption) *Loader {
	l := &Loader{blob: blob, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses blob and materializes the root entry in one call — the
// eager counterpart to NewLoader(blob).Root().
func Load(blob []byte, opts ...LoaderOption) (Tree, error) {
	return NewLoader(blob, opts...).Root()
}

// Root materializes the tree rooted at offset 0.
func (l *Loader) Root() (Tree, error) {
	if len(l.blob) < EntrySize {
		return nil, fmt.Errorf("%w: blob shorter than one entry header", ErrTruncatedBlob)
	}
	return l.loadEntry(0, 0)
}

// slice returns the n bytes of the blob starting at ptr, bounds-checked
// against the blob length. Every fixed-length read goes through here;
// sliceUnbounded below is the only other, bounds-checked, accessor.
func (l *Loader) slice(ptr, n uint32) ([]byte, error) {
	if uint64(ptr)+uint64(n) > uint64(len(l.blob)) {
		return nil, fmt.Errorf("%w: offset %d length %d exceeds blob of %d bytes", ErrTruncatedBlob, ptr, n, len(l.blob))
	}
	return l.blob[ptr : ptr+n], nil
}

// loadName reads a NUL-terminated UTF-8 name starting at ptr.
func (l *Loader) loadName(ptr uint32) (string, error) {
	end := ptr
	for {
		b, err := l.slice(end, 1)
		if err != nil {
			return "", err
		}
		if b[0] == 0 {
			break
		}
		end++
	}

	raw, err := l.slice(ptr, end-ptr)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", ErrInvalidUTF8
	}
	return string(raw), nil
}

func (l *Loader) loadEntry(ptr uint32, depth int) (Tree, error) {
	header, err := l.slice(ptr, EntrySize)
	if err != nil {
		return nil, err
	}

	flags := Flags(header[0])
	if flags&^knownFlags != 0 {
		return nil, fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownFlags, flags, ptr)
	}
	size := binary.LittleEndian.Uint32(header[1 : 1+PtrSize])
	dataPtr := binary.LittleEndian.Uint32(header[1+PtrSize:])

	if flags.IsDir() {
		if depth >= l.maxDepth {
			return nil, fmt.Errorf("%w: exceeded %d levels", ErrDepthExceeded, l.maxDepth)
		}

		dir := make(Dir, size)
		for i := uint32(0); i < size; i++ {
			recPtr := dataPtr + i*DirEntrySize
			rec, err := l.slice(recPtr, PtrSize)
			if err != nil {
				return nil, err
			}
			namePtr := binary.LittleEndian.Uint32(rec)

			name, err := l.loadName(namePtr)
			if err != nil {
				return nil, err
			}

			child, err := l.loadEntry(recPtr+PtrSize, depth+1)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			dir[name] = child
		}
		return dir, nil
	}

	if flags.IsCompressed() {
		raw, err := l.sliceUnbounded(dataPtr)
		if err != nil {
			return nil, err
		}
		data, err := zlibDecompress(raw, size)
		if err != nil {
			return nil, err
		}
		return File(data), nil
	}

	data, err := l.slice(dataPtr, size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	copy(out, data)
	return File(out), nil
}

// sliceUnbounded returns everything from ptr to the end of the blob, for
// feeding to the zlib reader (which stops at the declared decompressed
// size regardless of how much compressed input trails the real stream).
func (l *Loader) sliceUnbounded(ptr uint32) ([]byte, error) {
	if uint64(ptr) > uint64(len(l.blob)) {
		return nil, fmt.Errorf("%w: offset %d exceeds blob of %d bytes", ErrTruncatedBlob, ptr, len(l.blob))
	}
	return l.blob[ptr:], nil
}

// --- io/fs.FS surface ---
//
// *Loader implements fs.FS (and fs.ReadDirFS), so a caller can read a
// single file or list a single directory without materializing the
// entire tree — the format supports this directly because every
// directory's pointer resolves in O(size) via linear scan over its
// already-sorted child table.

var (
	_ fs.FS        = (*Loader)(nil)
	_ fs.ReadDirFS = (*Loader)(nil)
)

// entryAt reads the entry header at ptr, returning its flags, size field
// and data/child-table pointer.
func (l *Loader) entryAt(ptr uint32) (Flags, uint32, uint32, error) {
	header, err := l.slice(ptr, EntrySize)
	if err != nil {
		return 0, 0, 0, err
	}
	flags := Flags(header[0])
	size := binary.LittleEndian.Uint32(header[1 : 1+PtrSize])
	dataPtr := binary.LittleEndian.Uint32(header[1+PtrSize:])
	return flags, size, dataPtr, nil
}

// resolve walks name (a slash-separated fs.FS path, "." for the root)
// from the root entry, returning the resolved entry's flags, size field
// and data/child-table pointer.
func (l *Loader) resolve(name string) (Flags, uint32, uint32, error) {
	if !fs.ValidPath(name) {
		return 0, 0, 0, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	flags, size, dataPtr, err := l.entryAt(0)
	if err != nil {
		return 0, 0, 0, err
	}
	if name == "." {
		return flags, size, dataPtr, nil
	}

	for _, part := range strings.Split(name, "/") {
		if !flags.IsDir() {
			return 0, 0, 0, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
		}

		found := false
		for i := uint32(0); i < size; i++ {
			recPtr := dataPtr + i*DirEntrySize
			rec, err := l.slice(recPtr, PtrSize)
			if err != nil {
				return 0, 0, 0, err
			}
			childName, err := l.loadName(binary.LittleEndian.Uint32(rec))
			if err != nil {
				return 0, 0, 0, err
			}
			if childName == part {
				flags, size, dataPtr, err = l.entryAt(recPtr + PtrSize)
				if err != nil {
					return 0, 0, 0, err
				}
				found = true
				break
			}
		}
		if !found {
			return 0, 0, 0, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
	}

	return flags, size, dataPtr, nil
}

// Open implements fs.FS.
func (l *Loader) Open(name string) (fs.File, error) {
	flags, size, dataPtr, err := l.resolve(name)
	if err != nil {
		return nil, err
	}

	base := path.Base(name)
	if flags.IsDir() {
		return &dirFile{l: l, name: base, tablePtr: dataPtr, count: size}, nil
	}
	return &leafFile{l: l, name: base, compressed: flags.IsCompressed(), size: size, dataPtr: dataPtr}, nil
}

// ReadDir implements fs.ReadDirFS.
func (l *Loader) ReadDir(name string) ([]fs.DirEntry, error) {
	f, err := l.Open(name)
	if err != nil {
		return nil, err
	}
	d, ok := f.(fs.ReadDirFile)
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: ErrInvalidEntry}
	}
	return d.ReadDir(-1)
}
