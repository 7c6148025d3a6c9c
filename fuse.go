//go:build fuse

package blobfs

import (
	"context"
	"io/fs"
	"syscall"

	gofs "github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Mount exposes the tree loaded by l over FUSE at mountpoint, blocking
// until the filesystem is unmounted. It consumes only *Loader's public
// fs.FS / fs.ReadDirFS surface — the mount has no access to blob
// offsets or pointers.
func Mount(l *Loader, mountpoint string, opts *gofs.Options) error {
	root := &node{l: l, path: "."}
	server, err := gofs.Mount(mountpoint, root, opts)
	if err != nil {
		return err
	}
	server.Wait()
	return nil
}

// node adapts a path within a *Loader's fs.FS surface to a go-fuse
// Inode, covering the teacher's inode_fuse.go feature set (lookup, open,
// directory listing, reads, attributes) through go-fuse's Lookup/Readdir/
// Open/Read/Getattr node methods, keyed by fs.FS path instead of
// squashfs inode refs.
type node struct {
	gofs.Inode
	l    *Loader
	path string
}

var (
	_ gofs.InodeEmbedder = (*node)(nil)
	_ gofs.NodeLookuper  = (*node)(nil)
	_ gofs.NodeReaddirer = (*node)(nil)
	_ gofs.NodeOpener    = (*node)(nil)
	_ gofs.NodeReader    = (*node)(nil)
	_ gofs.NodeGetattrer = (*node)(nil)
)

func (n *node) childPath(name string) string {
	if n.path == "." {
		return name
	}
	return n.path + "/" + name
}

func (n *node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*gofs.Inode, syscall.Errno) {
	childPath := n.childPath(name)
	info, err := fs.Stat(n.l, childPath)
	if err != nil {
		return nil, syscall.ENOENT
	}

	child := &node{l: n.l, path: childPath}
	fillAttr(info, &out.Attr)

	mode := uint32(fuse.S_IFREG)
	if info.IsDir() {
		mode = fuse.S_IFDIR
	}
	return n.NewInode(ctx, child, gofs.StableAttr{Mode: mode}), 0
}

func (n *node) Readdir(ctx context.Context) (gofs.DirStream, syscall.Errno) {
	entries, err := fs.ReadDir(n.l, n.path)
	if err != nil {
		return nil, syscall.EIO
	}

	out := make([]fuse.DirEntry, 0, len(entries))
	for _, e := range entries {
		mode := uint32(fuse.S_IFREG)
		if e.IsDir() {
			mode = fuse.S_IFDIR
		}
		out = append(out, fuse.DirEntry{Name: e.Name(), Mode: mode})
	}
	return gofs.NewListDirStream(out), 0
}

func (n *node) Open(ctx context.Context, flags uint32) (gofs.FileHandle, uint32, syscall.Errno) {
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *node) Read(ctx context.Context, f gofs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	data, err := fs.ReadFile(n.l, n.path)
	if err != nil {
		return nil, syscall.EIO
	}
	if off >= int64(len(data)) {
		return fuse.ReadResultData(nil), 0
	}
	end := off + int64(len(dest))
	if end > int64(len(data)) {
		end = int64(len(data))
	}
	return fuse.ReadResultData(data[off:end]), 0
}

func (n *node) Getattr(ctx context.Context, f gofs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	info, err := fs.Stat(n.l, n.path)
	if err != nil {
		return syscall.ENOENT
	}
	fillAttr(info, &out.Attr)
	return 0
}

func fillAttr(info fs.FileInfo, attr *fuse.Attr) {
	attr.Size = uint64(info.Size())
	attr.Mode = uint32(info.Mode().Perm())
	if info.IsDir() {
		attr.Mode |= fuse.S_IFDIR
	} else {
		attr.Mode |= fuse.S_IFREG
	}
}
