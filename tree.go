package blobfs

// Tree is the in-memory input accepted by Compile and returned by Root:
// either a Dir (a directory, mapping child name to child Tree) or a File
// (a leaf, holding raw uncompressed bytes). It is a closed, two-member
// tagged variant — the compiler dispatches on the concrete type.
type Tree interface {
	isTree()
}

// Dir models a directory: a mapping from child name to child subtree.
// Child iteration order at construction time does not matter; Compile
// always re-sorts by raw byte order before emitting the child table.
type Dir map[string]Tree

func (Dir) isTree() {}

// File models a regular file as its raw, uncompressed content.
type File []byte

func (File) isTree() {}
