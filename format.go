package blobfs

import "strings"

// Pointer width and entry sizes for the blob format. These are the
// single source of truth referenced throughout the compiler and loader;
// a future format version with wider pointers would change these.
const (
	// PtrSize is the width, in bytes, of a pointer (an unsigned
	// little-endian byte offset into the blob).
	PtrSize = 4

	// EntrySize is the size, in bytes, of an entry header: 1 flags byte
	// plus two PtrSize-wide fields (size, ptr).
	EntrySize = 1 + 2*PtrSize

	// DirEntrySize is the size, in bytes, of a child-table record: a
	// PtrSize-wide name pointer followed by an inline EntrySize header.
	DirEntrySize = PtrSize + EntrySize
)

// Flags is the one-byte bitset carried by every entry header.
type Flags uint8

const (
	// FlagDir marks an entry as a directory; its ptr field then points
	// to a child table instead of a file payload.
	FlagDir Flags = 1 << iota

	// FlagCompressed marks a file entry's payload as zlib-compressed.
	// Meaningful only when FlagDir is clear.
	FlagCompressed

	// knownFlags is the set of flag bits this format version defines;
	// any other bit set in a loaded entry is a conformance violation.
	knownFlags = FlagDir | FlagCompressed
)

func (f Flags) String() string {
	var opt []string
	if f&FlagDir != 0 {
		opt = append(opt, "DIR")
	}
	if f&FlagCompressed != 0 {
		opt = append(opt, "COMPRESSED")
	}
	if f&^knownFlags != 0 {
		opt = append(opt, "UNKNOWN")
	}
	return strings.Join(opt, "|")
}

// IsDir reports whether FlagDir is set.
func (f Flags) IsDir() bool { return f&FlagDir != 0 }

// IsCompressed reports whether FlagCompressed is set.
func (f Flags) IsCompressed() bool { return f&FlagCompressed != 0 }
