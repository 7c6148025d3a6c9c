package blobfs_test

import (
	"errors"
	"testing"

	"github.com/paulo-raca/blobfs"
)

func TestLoadRejectsUnknownFlags(t *testing.T) {
	header := make([]byte, blobfs.EntrySize)
	header[0] = 1 << 7 // reserved bit, never set by Compile

	_, err := blobfs.Load(header)
	if !errors.Is(err, blobfs.ErrUnknownFlags) {
		t.Errorf("Load with reserved flag bit set: got %v, want ErrUnknownFlags", err)
	}
}

func TestLoadRejectsTruncatedHeader(t *testing.T) {
	_, err := blobfs.Load(make([]byte, blobfs.EntrySize-1))
	if !errors.Is(err, blobfs.ErrTruncatedBlob) {
		t.Errorf("Load with a short header: got %v, want ErrTruncatedBlob", err)
	}
}

func TestLoaderOpenRejectsInvalidPath(t *testing.T) {
	blob, err := blobfs.Compile(blobfs.Dir{"a.txt": blobfs.File("x")})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	l := blobfs.NewLoader(blob)
	if _, err := l.Open("../escape"); err == nil {
		t.Error("Open with a path escaping the root should fail")
	}
	if _, err := l.Open("/absolute"); err == nil {
		t.Error("Open with an absolute path should fail")
	}
}

func TestLoaderOpenOnFileIsNotReadDirFile(t *testing.T) {
	blob, err := blobfs.Compile(blobfs.Dir{"a.txt": blobfs.File("x")})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	l := blobfs.NewLoader(blob)
	if _, err := l.ReadDir("a.txt"); err == nil {
		t.Error("ReadDir on a regular file should fail")
	}
}
