package blobfs

import (
	"encoding/binary"
	"io"
	"io/fs"
	"time"
)

// leafFile is a convenience object allowing a regular-file entry to be
// used as an fs.File. Its payload is decoded (decompressed, if needed)
// lazily on first Read or Seek.
type leafFile struct {
	l          *Loader
	name       string
	compressed bool
	size       uint32
	dataPtr    uint32

	data []byte
	off  int
}

// dirFile is a convenience object allowing a directory entry to be used
// as an fs.ReadDirFile.
type dirFile struct {
	l        *Loader
	name     string
	tablePtr uint32
	count    uint32

	next uint32 // index of the next unread child
}

// fileinfo doubles as fs.FileInfo (returned from Stat) and fs.DirEntry
// (returned from ReadDir) — the format carries no metadata beyond a
// name, a size and the directory bit, so one type serves both.
type fileinfo struct {
	name  string
	size  int64
	isDir bool
}

var (
	_ fs.File   = (*leafFile)(nil)
	_ io.Seeker = (*leafFile)(nil)

	_ fs.File        = (*dirFile)(nil)
	_ fs.ReadDirFile = (*dirFile)(nil)

	_ fs.FileInfo = (*fileinfo)(nil)
	_ fs.DirEntry = (*fileinfo)(nil)
)

// (leafFile)

func (f *leafFile) load() error {
	if f.data != nil {
		return nil
	}
	if f.compressed {
		raw, err := f.l.sliceUnbounded(f.dataPtr)
		if err != nil {
			return err
		}
		data, err := zlibDecompress(raw, f.size)
		if err != nil {
			return err
		}
		f.data = data
		return nil
	}

	raw, err := f.l.slice(f.dataPtr, f.size)
	if err != nil {
		return err
	}
	f.data = raw
	return nil
}

func (f *leafFile) Read(p []byte) (int, error) {
	if err := f.load(); err != nil {
		return 0, err
	}
	if f.off >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.off:])
	f.off += n
	return n, nil
}

// Seek implements io.Seeker so a *leafFile can back a caller that
// range-reads a file, such as http.FileServer.
func (f *leafFile) Seek(offset int64, whence int) (int64, error) {
	if err := f.load(); err != nil {
		return 0, err
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(f.off) + offset
	case io.SeekEnd:
		abs = int64(len(f.data)) + offset
	default:
		return 0, fs.ErrInvalid
	}
	if abs < 0 {
		return 0, fs.ErrInvalid
	}
	f.off = int(abs)
	return abs, nil
}

func (f *leafFile) Stat() (fs.FileInfo, error) {
	return &fileinfo{name: f.name, size: int64(f.size)}, nil
}

func (f *leafFile) Close() error {
	return nil
}

// (dirFile)

// Read on a directory is invalid and will always fail.
func (d *dirFile) Read(p []byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.name, Err: fs.ErrInvalid}
}

func (d *dirFile) Stat() (fs.FileInfo, error) {
	return &fileinfo{name: d.name, isDir: true}, nil
}

func (d *dirFile) Close() error {
	return nil
}

func (d *dirFile) ReadDir(n int) ([]fs.DirEntry, error) {
	var out []fs.DirEntry
	for ; d.next < d.count; d.next++ {
		if n > 0 && len(out) >= n {
			break
		}
		recPtr := d.tablePtr + d.next*DirEntrySize
		rec, err := d.l.slice(recPtr, PtrSize)
		if err != nil {
			return out, err
		}
		name, err := d.l.loadName(binary.LittleEndian.Uint32(rec))
		if err != nil {
			return out, err
		}
		flags, size, _, err := d.l.entryAt(recPtr + PtrSize)
		if err != nil {
			return out, err
		}
		fi := &fileinfo{name: name, isDir: flags.IsDir()}
		if !fi.isDir {
			fi.size = int64(size) // a directory's size field is its child count, not a byte length
		}
		out = append(out, fi)
	}
	if n > 0 && len(out) == 0 && d.next >= d.count {
		return out, io.EOF
	}
	return out, nil
}

// (fileinfo)

func (fi *fileinfo) Name() string { return fi.name }
func (fi *fileinfo) Size() int64  { return fi.size }
func (fi *fileinfo) IsDir() bool  { return fi.isDir }

func (fi *fileinfo) Mode() fs.FileMode {
	if fi.isDir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

// ModTime always returns the zero time: the format stores no timestamps.
func (fi *fileinfo) ModTime() time.Time { return time.Time{} }

func (fi *fileinfo) Sys() any { return nil }

func (fi *fileinfo) Type() fs.FileMode { return fi.Mode().Type() }

func (fi *fileinfo) Info() (fs.FileInfo, error) { return fi, nil }
