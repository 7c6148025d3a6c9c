package blobfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"unicode/utf8"
)

// Compiler serializes an in-memory Tree into a blob with deduped payloads
// and optional per-file compression.
//
// Compiler is not safe for concurrent use: a single Compiler builds one
// in-progress buffer and cache. Create a fresh Compiler (or call Compile,
// which does so internally) per blob.
type Compiler struct {
	buf   bytes.Buffer
	cache map[string]uint32 // content-address cache: exact bytes -> offset

	compress bool
}

// CompileOption configures a single Compile call.
type CompileOption func(*Compiler)

// WithCompression enables zlib compression of file payloads. A compressed
// form is only kept if it is strictly shorter than the raw form (see
// storeCompressed); ties favor the raw form.
func WithCompression(enabled bool) CompileOption {
	return func(c *Compiler) {
		c.compress = enabled
	}
}

// Compile serializes root into a self-contained blob. The same root and
// options always produce a byte-identical blob.
func Compile(root Tree, opts ...CompileOption) ([]byte, error) {
	c := &Compiler{cache: make(map[string]uint32)}
	for _, opt := range opts {
		opt(c)
	}
	return c.compile(root)
}

func (c *Compiler) compile(root Tree) ([]byte, error) {
	c.buf.Reset()
	c.cache = make(map[string]uint32)

	// Reserve space for the root entry at offset 0.
	c.buf.Write(make([]byte, EntrySize))

	rootEntry, err := c.encodeEntry(root)
	if err != nil {
		return nil, err
	}

	out := c.buf.Bytes()
	copy(out[:EntrySize], rootEntry[:])
	return out, nil
}

// store appends data to the blob unless an identical byte string was
// already stored, in which case the existing offset is reused. It never
// truncates or overwrites previously written bytes.
func (c *Compiler) store(data []byte) (uint32, error) {
	key := string(data)
	if off, ok := c.cache[key]; ok {
		return off, nil
	}

	off := c.buf.Len()
	if uint64(off)+uint64(len(data)) > 0xffffffff {
		return 0, ErrBlobTooLarge
	}

	c.buf.Write(data)
	c.cache[key] = uint32(off)
	return uint32(off), nil
}

// storeCompressed stores a file payload, compressing it first when
// c.compress is set. The compressed form is only used if it is strictly
// shorter than data; the comparison is strict so ties keep the raw form
// (no decode cost, no size benefit).
func (c *Compiler) storeCompressed(data []byte) (uint32, Flags, error) {
	if c.compress {
		zdata, err := zlibCompress(data)
		if err != nil {
			return 0, 0, err
		}
		if len(zdata) < len(data) {
			off, err := c.store(zdata)
			if err != nil {
				return 0, 0, err
			}
			return off, FlagCompressed, nil
		}
	}

	off, err := c.store(data)
	return off, 0, err
}

// encodeEntry produces the 9-byte entry header for t, recursively storing
// its payload (and, for directories, its children) along the way.
func (c *Compiler) encodeEntry(t Tree) ([EntrySize]byte, error) {
	var header [EntrySize]byte

	switch v := t.(type) {
	case Dir:
		names := make([]string, 0, len(v))
		for name := range v {
			if err := validateName(name); err != nil {
				return header, err
			}
			names = append(names, name)
		}
		sort.Strings(names)

		var table bytes.Buffer
		for _, name := range names {
			nameOff, err := c.store(append([]byte(name), 0))
			if err != nil {
				return header, err
			}

			childHeader, err := c.encodeEntry(v[name])
			if err != nil {
				return header, fmt.Errorf("%s: %w", name, err)
			}

			var ptrBuf [PtrSize]byte
			binary.LittleEndian.PutUint32(ptrBuf[:], nameOff)
			table.Write(ptrBuf[:])
			table.Write(childHeader[:])
		}

		ptr, err := c.store(table.Bytes())
		if err != nil {
			return header, err
		}
		if uint64(len(v)) > 0xffffffff {
			return header, ErrBlobTooLarge
		}
		packEntry(&header, FlagDir, uint32(len(v)), ptr)
		return header, nil

	case File:
		if uint64(len(v)) > 0xffffffff {
			return header, ErrBlobTooLarge
		}
		ptr, flags, err := c.storeCompressed([]byte(v))
		if err != nil {
			return header, err
		}
		packEntry(&header, flags, uint32(len(v)), ptr)
		return header, nil

	default:
		return header, ErrInvalidEntry
	}
}

func packEntry(header *[EntrySize]byte, flags Flags, size, ptr uint32) {
	header[0] = byte(flags)
	binary.LittleEndian.PutUint32(header[1:1+PtrSize], size)
	binary.LittleEndian.PutUint32(header[1+PtrSize:], ptr)
}

func validateName(name string) error {
	if name == "" {
		return nil
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for i := 0; i < len(name); i++ {
		if name[i] == 0 {
			return fmt.Errorf("%w: %q contains NUL", ErrInvalidName, name)
		}
	}
	return nil
}
