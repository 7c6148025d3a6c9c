package blobfs_test

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/paulo-raca/blobfs"
)

func TestFromPathBuildsTreeFromFS(t *testing.T) {
	mem := fstest.MapFS{
		"a.txt":         {Data: []byte("a")},
		"dir/b.txt":     {Data: []byte("b")},
		"dir/sub/c.txt": {Data: []byte("c")},
	}

	tree, err := blobfs.FromPath(mem, ".")
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}

	root, ok := tree.(blobfs.Dir)
	if !ok {
		t.Fatalf("root is %T, want blobfs.Dir", tree)
	}
	if string(root["a.txt"].(blobfs.File)) != "a" {
		t.Errorf("a.txt mismatch")
	}
	dir, ok := root["dir"].(blobfs.Dir)
	if !ok {
		t.Fatalf("dir is %T, want blobfs.Dir", root["dir"])
	}
	if string(dir["b.txt"].(blobfs.File)) != "b" {
		t.Errorf("dir/b.txt mismatch")
	}
	sub, ok := dir["sub"].(blobfs.Dir)
	if !ok {
		t.Fatalf("dir/sub is %T, want blobfs.Dir", dir["sub"])
	}
	if string(sub["c.txt"].(blobfs.File)) != "c" {
		t.Errorf("dir/sub/c.txt mismatch")
	}
}

func TestFromPathThenCompileRoundtrips(t *testing.T) {
	mem := fstest.MapFS{
		"index.html":  {Data: []byte("<html></html>")},
		"css/app.css": {Data: []byte("body{}")},
	}

	tree, err := blobfs.FromPath(mem, ".")
	if err != nil {
		t.Fatalf("FromPath: %v", err)
	}

	blob, err := blobfs.Compile(tree)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	data, err := blobfs.Load(blob)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := data.(blobfs.Dir); !ok {
		t.Fatalf("root is %T, want blobfs.Dir", data)
	}
}

func TestFromPathRejectsSymlinkLikeEntries(t *testing.T) {
	mem := fstest.MapFS{
		"link": {Data: []byte("target"), Mode: 0o777 | fs.ModeSymlink},
	}

	_, err := blobfs.FromPath(mem, ".")
	if !errors.Is(err, blobfs.ErrUnsupportedFileType) {
		t.Errorf("FromPath on a symlink entry: got %v, want ErrUnsupportedFileType", err)
	}
}
