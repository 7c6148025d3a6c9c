package blobfs_test

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/paulo-raca/blobfs"
)

func sampleTree() blobfs.Dir {
	return blobfs.Dir{
		"hello.txt": blobfs.File("hello world\n"),
		"empty.txt": blobfs.File(""),
		"sub": blobfs.Dir{
			"nested.txt": blobfs.File("nested content"),
			"dup.txt":    blobfs.File("hello world\n"), // same bytes as hello.txt
		},
	}
}

func TestCompileLoadRoundtrip(t *testing.T) {
	root := sampleTree()

	blob, err := blobfs.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	got, err := blobfs.Load(blob)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	gotDir, ok := got.(blobfs.Dir)
	if !ok {
		t.Fatalf("root loaded as %T, want blobfs.Dir", got)
	}

	if string(gotDir["hello.txt"].(blobfs.File)) != "hello world\n" {
		t.Errorf("hello.txt content mismatch")
	}
	if len(gotDir["empty.txt"].(blobfs.File)) != 0 {
		t.Errorf("empty.txt should be empty")
	}
	sub, ok := gotDir["sub"].(blobfs.Dir)
	if !ok {
		t.Fatalf("sub loaded as %T, want blobfs.Dir", gotDir["sub"])
	}
	if string(sub["nested.txt"].(blobfs.File)) != "nested content" {
		t.Errorf("sub/nested.txt content mismatch")
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	root := sampleTree()

	a, err := blobfs.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b, err := blobfs.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("Compile is not deterministic: got two different blobs for the same tree")
	}
}

func TestCompileDeduplicatesIdenticalPayloads(t *testing.T) {
	root := blobfs.Dir{
		"a.txt": blobfs.File("same content"),
		"b.txt": blobfs.File("same content"),
	}

	dupBlob, err := blobfs.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	unique := blobfs.Dir{
		"a.txt": blobfs.File("same content"),
		"b.txt": blobfs.File("different content, much longer than the other one"),
	}
	uniqueBlob, err := blobfs.Compile(unique)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if len(dupBlob) >= len(uniqueBlob) {
		t.Errorf("deduplicated blob (%d bytes) should be smaller than one with unique payloads (%d bytes)", len(dupBlob), len(uniqueBlob))
	}
}

func TestCompileWithCompression(t *testing.T) {
	payload := bytes.Repeat([]byte("compress me please "), 200)
	root := blobfs.Dir{"big.txt": blobfs.File(payload)}

	plain, err := blobfs.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	compressed, err := blobfs.Compile(root, blobfs.WithCompression(true))
	if err != nil {
		t.Fatalf("Compile(WithCompression): %v", err)
	}
	if len(compressed) >= len(plain) {
		t.Errorf("compressed blob (%d bytes) should be smaller than uncompressed (%d bytes)", len(compressed), len(plain))
	}

	loaded, err := blobfs.Load(compressed)
	if err != nil {
		t.Fatalf("Load(compressed): %v", err)
	}
	dir := loaded.(blobfs.Dir)
	if !bytes.Equal([]byte(dir["big.txt"].(blobfs.File)), payload) {
		t.Errorf("compressed payload did not round-trip correctly")
	}
}

func TestLoaderFSSurface(t *testing.T) {
	root := sampleTree()
	blob, err := blobfs.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	l := blobfs.NewLoader(blob)

	data, err := fs.ReadFile(l, "sub/nested.txt")
	if err != nil {
		t.Fatalf("fs.ReadFile: %v", err)
	}
	if string(data) != "nested content" {
		t.Errorf("fs.ReadFile returned %q", data)
	}

	entries, err := fs.ReadDir(l, ".")
	if err != nil {
		t.Fatalf("fs.ReadDir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("fs.ReadDir(.) returned %d entries, want 3", len(entries))
	}
	// Children must come back sorted by name.
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Name() >= entries[i].Name() {
			t.Errorf("ReadDir entries not sorted: %q before %q", entries[i-1].Name(), entries[i].Name())
		}
	}

	if _, err := fs.Stat(l, "does/not/exist"); err == nil {
		t.Errorf("Stat on missing path should fail")
	}
}

func TestLoaderFSTestSuite(t *testing.T) {
	root := sampleTree()
	blob, err := blobfs.Compile(root)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	l := blobfs.NewLoader(blob)
	if err := fstest.TestFS(l, "hello.txt", "empty.txt", "sub", "sub/nested.txt", "sub/dup.txt"); err != nil {
		t.Errorf("fstest.TestFS: %v", err)
	}
}

func TestLoadRejectsTruncatedBlob(t *testing.T) {
	_, err := blobfs.Load(nil)
	if err == nil {
		t.Fatal("Load(nil) should fail")
	}
}

func TestLoadRejectsDeepCycles(t *testing.T) {
	// Build a blob whose root directory's single child is a directory
	// whose data pointer is the root's own child table, forming a cycle,
	// and confirm the loader terminates via the depth limit instead of
	// recursing forever.
	var blob []byte
	blob = append(blob, make([]byte, blobfs.EntrySize)...) // root header, patched below

	nameOff := uint32(len(blob))
	blob = append(blob, 'a', 0)

	// child entry header: a directory whose data pointer is the child
	// table appended right after it (the root's own table).
	childOff := uint32(len(blob))
	child := make([]byte, blobfs.EntrySize)
	child[0] = byte(blobfs.FlagDir)
	putU32(child[1:5], 1)
	putU32(child[5:9], childOff+blobfs.EntrySize)
	blob = append(blob, child...)

	table := make([]byte, blobfs.DirEntrySize)
	putU32(table[0:4], nameOff)
	copy(table[4:], blob[childOff:childOff+blobfs.EntrySize])
	tableOff := uint32(len(blob))
	blob = append(blob, table...)

	root := make([]byte, blobfs.EntrySize)
	root[0] = byte(blobfs.FlagDir)
	putU32(root[1:5], 1)
	putU32(root[5:9], tableOff)
	copy(blob[0:blobfs.EntrySize], root)

	_, err := blobfs.Load(blob, blobfs.WithMaxDepth(8))
	if !errors.Is(err, blobfs.ErrDepthExceeded) {
		t.Fatalf("Load on a cyclic blob: got %v, want ErrDepthExceeded", err)
	}
}

func putU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
