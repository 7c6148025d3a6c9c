// Package blobfs implements a content-addressed, deduplicating,
// single-blob filesystem packer and loader, intended for embedding a
// filesystem tree into another artifact (a binary, an image, a wire
// message) as one contiguous byte slice.
//
// A conforming blob satisfies all of the following:
//
//   - The root entry header starts at offset 0.
//   - Every pointer is a 4-byte little-endian unsigned offset from the
//     start of the blob (PtrSize, EntrySize, DirEntrySize).
//   - Every entry header is 9 bytes: 1 flags byte followed by two
//     4-byte little-endian fields (size, ptr).
//   - A directory's ptr field points to a child table of size
//     DirEntrySize-byte records, each a 4-byte name pointer immediately
//     followed by the inline 9-byte header of that child.
//   - A directory's children are sorted by byte-lexicographic name
//     order in the child table.
//   - Names are NUL-terminated UTF-8 strings; the NUL is not counted in
//     any size field.
//   - A file's payload is either stored raw, or zlib (RFC 1950)
//     compressed with FlagCompressed set — and only when the
//     compressed form is strictly shorter than the raw form.
//   - Identical byte strings (names, file payloads, child tables) are
//     stored once and referenced by every pointer that needs them.
//
// Compile builds a blob from an in-memory Tree; Load and NewLoader read
// one back, the latter resolving entries on demand instead of
// materializing the whole tree. *Loader also implements io/fs.FS and
// io/fs.ReadDirFS, so a blob can be mounted directly wherever an fs.FS
// is accepted.
package blobfs
